// Package eventstest provides an in-memory event.Publisher for tests.
package eventstest

import (
	"context"
	"sync"

	"carsales-service/internal/domain/event"
)

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *Recorder) Publish(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns the recorded events called name
func (r *Recorder) Named(name event.Name) []event.Event {
	var out []event.Event
	for _, e := range r.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
