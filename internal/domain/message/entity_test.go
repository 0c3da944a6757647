package message

import (
	"testing"
	"time"
)

func TestStartServiceGuard(t *testing.T) {
	m := &Message{Status: StatusPending}
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	if !m.StartService(4, now) {
		t.Fatal("first start should succeed")
	}
	if m.Status != StatusContactInitiated || *m.ResponsibleID != 4 || !m.ServiceStartTime.Equal(now) {
		t.Fatalf("unexpected message state %+v", m)
	}

	if m.StartService(5, now.Add(time.Hour)) {
		t.Fatal("second start should be refused")
	}
	if *m.ResponsibleID != 4 {
		t.Fatalf("responsible changed to %d", *m.ResponsibleID)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusContactInitiated, StatusFinished, StatusCancelled} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if Status("Archived").Valid() {
		t.Fatal("unknown status accepted")
	}
}
