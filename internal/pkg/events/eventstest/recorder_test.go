package eventstest

import (
	"context"
	"testing"

	"carsales-service/internal/domain/event"
)

func TestRecorderNamed(t *testing.T) {
	r := &Recorder{}
	ctx := context.Background()
	_ = r.Publish(ctx, event.New(event.SaleCreated, nil))
	_ = r.Publish(ctx, event.New(event.VehicleCascadeFailed, nil))
	_ = r.Publish(ctx, event.New(event.SaleCreated, nil))

	if n := len(r.Named(event.SaleCreated)); n != 2 {
		t.Fatalf("expected 2 sale.created, got %d", n)
	}
	if event.VehicleCascadeFailed.Topic() != "vehicle" {
		t.Fatalf("unexpected topic %q", event.VehicleCascadeFailed.Topic())
	}
}
