// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"carsales-service/internal/domain/event"
	wstypes "carsales-service/internal/domain/websocket"

	"go.uber.org/zap"
)

type Hub struct {
	// Registered clients by user ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	done       chan struct{}

	logger *zap.Logger
}

// BroadcastMessage targets UserIDs (everyone when nil). An empty Channel
// bypasses subscriptions; Disconnect ends the targeted sessions after
// the message is flushed.
type BroadcastMessage struct {
	UserIDs    []int64
	Channel    wstypes.ChannelType
	Message    *wstypes.WSMessage
	Disconnect bool
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info("websocket client connected",
		zap.Int64("user_id", client.userID),
		zap.String("role", string(client.role)),
		zap.Int("total", h.totalClients()))

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"user_id":  client.userID,
		"role":     client.role,
		"channels": client.Subscriptions(),
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(client)
	client.Close()
}

// remove drops client from the registry; callers hold h.mu
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Info("websocket client disconnected",
		zap.Int64("user_id", client.userID),
		zap.Int("total", h.totalClients()))
}

func (h *Hub) deliver(msg *BroadcastMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var targets []*Client
	if msg.UserIDs == nil {
		for _, clients := range h.clients {
			for client := range clients {
				targets = append(targets, client)
			}
		}
	} else {
		for _, userID := range msg.UserIDs {
			for client := range h.clients[userID] {
				targets = append(targets, client)
			}
		}
	}

	for _, client := range targets {
		if msg.Channel != "" && !client.IsSubscribed(msg.Channel) {
			continue
		}
		if !client.SendMessage(msg.Message) {
			h.logger.Warn("websocket client too slow, dropping", zap.Int64("user_id", client.userID))
			h.remove(client)
			client.Close()
			continue
		}
		if msg.Disconnect {
			h.remove(client)
			client.finish()
		}
	}
}

// Publish forwards a domain event to clients subscribed to its topic
func (h *Hub) Publish(ctx context.Context, e event.Event) error {
	return h.enqueue(ctx, &BroadcastMessage{
		Channel: wstypes.ChannelType(e.Name.Topic()),
		Message: wstypes.NewMessage(wstypes.EventTypeDomain, e),
	})
}

// ForceLogout tells every connection of userID that its session ended,
// then closes them.
func (h *Hub) ForceLogout(userID int64, reason string) {
	err := h.enqueue(context.Background(), &BroadcastMessage{
		UserIDs: []int64{userID},
		Message: wstypes.NewMessage(wstypes.EventTypeForceLogout, wstypes.ForceLogoutData{
			Reason:  reason,
			Message: "You have been logged out",
		}),
		Disconnect: true,
	})
	if err != nil {
		h.logger.Warn("force logout not delivered", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (h *Hub) enqueue(ctx context.Context, msg *BroadcastMessage) error {
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case h.broadcast <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrHubBusy
	}
}

func (h *Hub) ConnectedClients(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
		delete(h.clients, userID)
	}
}
