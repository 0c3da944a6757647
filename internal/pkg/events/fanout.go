// internal/pkg/events/fanout.go
package events

import (
	"context"
	"errors"

	"carsales-service/internal/domain/event"

	"go.uber.org/zap"
)

// Fanout delivers each event to every sink and joins their errors.
type Fanout struct {
	sinks []event.Publisher
}

func NewFanout(sinks ...event.Publisher) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, e event.Event) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logged wraps a publisher so failures are logged and swallowed.
type Logged struct {
	next   event.Publisher
	logger *zap.Logger
}

func NewLogged(next event.Publisher, logger *zap.Logger) *Logged {
	return &Logged{next: next, logger: logger}
}

func (l *Logged) Publish(ctx context.Context, e event.Event) error {
	if err := l.next.Publish(ctx, e); err != nil {
		l.logger.Warn("event publish failed", zap.String("event", string(e.Name)), zap.Error(err))
	}
	return nil
}
