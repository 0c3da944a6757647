package gormrepo

import (
	"testing"
	"time"

	"carsales-service/internal/domain/message"
)

func TestMessageRepositoryStartServiceIsGuarded(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewMessageRepository(gdb)
	ctx := testCtx(t)

	m := &message.Message{Name: "Lia", Email: "lia@example.com", Message: "Is the Civic available?", Status: message.StatusPending}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create: %v", err)
	}

	first := *m
	first.StartService(7, time.Now())
	ok, err := repo.StartService(ctx, &first)
	if err != nil || !ok {
		t.Fatalf("first start: ok=%v err=%v", ok, err)
	}

	second := *m
	second.StartService(8, time.Now())
	ok, err = repo.StartService(ctx, &second)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if ok {
		t.Fatal("second start should lose the race")
	}

	got, _ := repo.FindByID(ctx, m.ID)
	if got.ResponsibleID == nil || *got.ResponsibleID != 7 || got.Status != message.StatusContactInitiated {
		t.Fatalf("unexpected stored message %+v", got)
	}
}

func TestMessageRepositoryListPaging(t *testing.T) {
	gdb := openTestDB(t)
	repo := NewMessageRepository(gdb)
	ctx := testCtx(t)

	for i := 0; i < 5; i++ {
		status := message.StatusPending
		if i%2 == 1 {
			status = message.StatusFinished
		}
		m := &message.Message{Name: "n", Email: "n@example.com", Message: "hi", Status: status}
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, total, err := repo.List(ctx, &message.ListFilters{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 || len(list) != 2 {
		t.Fatalf("expected 2 of 5, got %d of %d", len(list), total)
	}

	pending := message.StatusPending
	list, total, err = repo.List(ctx, &message.ListFilters{Status: &pending, Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if total != 3 || len(list) != 1 {
		t.Fatalf("expected last page with 1 of 3, got %d of %d", len(list), total)
	}
}
