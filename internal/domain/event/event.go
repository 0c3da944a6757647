// internal/domain/event/event.go
package event

import (
	"context"
	"strings"
	"time"
)

type Name string

const (
	SaleCreated           Name = "sale.created"
	SaleStatusChanged     Name = "sale.status_changed"
	VehicleCascadeFailed  Name = "vehicle.cascade_failed"
	MessageReceived       Name = "message.received"
	MessageServiceStarted Name = "message.service_started"
)

// Topic is the part of the name before the dot ("sale", "vehicle", "message")
func (n Name) Topic() string {
	topic, _, _ := strings.Cut(string(n), ".")
	return topic
}

type Event struct {
	Name       Name        `json:"name"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func New(name Name, payload interface{}) Event {
	return Event{Name: name, Payload: payload, OccurredAt: time.Now().UTC()}
}

// Publisher delivers domain events. Publishing is a side effect: callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// CascadeFailure is the payload of VehicleCascadeFailed
type CascadeFailure struct {
	SaleID    int64  `json:"sale_id"`
	VehicleID int64  `json:"vehicle_id"`
	Reason    string `json:"reason"`
}

// SaleStatus is the payload of SaleStatusChanged
type SaleStatus struct {
	SaleID    int64  `json:"sale_id"`
	VehicleID int64  `json:"vehicle_id"`
	Status    string `json:"status"`
}
