// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing        EventType = "ping"
	EventTypePong        EventType = "pong"
	EventTypeConnected   EventType = "connected"
	EventTypeError       EventType = "error"
	EventTypeSubscribe   EventType = "subscribe"
	EventTypeUnsubscribe EventType = "unsubscribe"
	EventTypeForceLogout EventType = "session:force_logout"

	// Domain events (server -> client)
	EventTypeDomain EventType = "event"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	ID        string      `json:"id,omitempty"`
}

// ChannelType is a subscription channel; domain events go to the channel
// named after their topic
type ChannelType string

const (
	ChannelSales    ChannelType = "sale"
	ChannelVehicles ChannelType = "vehicle"
	ChannelMessages ChannelType = "message"
)

var AllChannels = []ChannelType{ChannelSales, ChannelVehicles, ChannelMessages}

func (c ChannelType) Valid() bool {
	for _, known := range AllChannels {
		if c == known {
			return true
		}
	}
	return false
}

type SubscribeRequest struct {
	Channels []ChannelType `json:"channels"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ForceLogoutData struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        ulid.Make().String(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
