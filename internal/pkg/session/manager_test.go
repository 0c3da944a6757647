package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"carsales-service/internal/domain/auth"
	xerrors "carsales-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type memTokens struct {
	mu   sync.Mutex
	rows map[string]auth.BlacklistedToken
}

func newMemTokens() *memTokens {
	return &memTokens{rows: map[string]auth.BlacklistedToken{}}
}

func (m *memTokens) Add(_ context.Context, t *auth.BlacklistedToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[t.JTI]; ok {
		return xerrors.ErrConflict
	}
	m.rows[t.JTI] = *t
	return nil
}

func (m *memTokens) Exists(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[jti]
	return ok, nil
}

func (m *memTokens) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, v := range m.rows {
		if v.ExpiresAt.Before(now) {
			delete(m.rows, k)
			n++
		}
	}
	return n, nil
}

func TestRevokeAndLookupWithoutRedis(t *testing.T) {
	tokens := newMemTokens()
	m := NewManager(nil, tokens, zap.NewNop())
	ctx := context.Background()
	exp := time.Now().Add(30 * time.Minute)

	if revoked, _ := m.IsRevoked(ctx, "abc", exp); revoked {
		t.Fatal("fresh token reported revoked")
	}
	if err := m.Revoke(ctx, "abc", 1, exp); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if revoked, _ := m.IsRevoked(ctx, "abc", exp); !revoked {
		t.Fatal("revoked token accepted")
	}
	// logging out twice is not an error
	if err := m.Revoke(ctx, "abc", 1, exp); err != nil {
		t.Fatalf("second revoke: %v", err)
	}
}

func TestRevokeExpiredIsNoop(t *testing.T) {
	tokens := newMemTokens()
	m := NewManager(nil, tokens, zap.NewNop())

	if err := m.Revoke(context.Background(), "old", 1, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if len(tokens.rows) != 0 {
		t.Fatal("expired token was stored")
	}
}

func TestCleanup(t *testing.T) {
	tokens := newMemTokens()
	m := NewManager(nil, tokens, zap.NewNop())
	ctx := context.Background()

	if err := m.Revoke(ctx, "a", 1, time.Now().Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if err := m.Revoke(ctx, "b", 1, time.Now().Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	m.now = func() time.Time { return time.Now().Add(10 * time.Minute) }

	n, err := m.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Fatalf("cleanup removed %d err=%v", n, err)
	}
	if ok, _ := tokens.Exists(ctx, "b"); !ok {
		t.Fatal("unexpired row removed")
	}
}
