// internal/pkg/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carsales-service/internal/domain/auth"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "blacklist:"

// Manager keeps the token revocation list. The database is the source of
// truth; redis, when configured, answers the hot path.
type Manager struct {
	client redis.UniversalClient
	tokens auth.TokenRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(client redis.UniversalClient, tokens auth.TokenRepository, logger *zap.Logger) *Manager {
	return &Manager{
		client: client,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

func (m *Manager) key(jti string) string {
	return keyPrefix + jti
}

// Revoke records jti until expiresAt. Revoking an already expired token is a no-op.
func (m *Manager) Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error {
	ttl := expiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}

	err := m.tokens.Add(ctx, &auth.BlacklistedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
	})
	if err != nil && !isConflict(err) {
		return fmt.Errorf("failed to persist revoked token: %w", err)
	}

	if m.client != nil {
		if err := m.client.Set(ctx, m.key(jti), userID, ttl).Err(); err != nil {
			m.logger.Warn("failed to cache revoked token", zap.String("jti", jti), zap.Error(err))
		}
	}
	return nil
}

// IsRevoked checks redis first and falls back to the database, restoring
// the cache entry on a database hit.
func (m *Manager) IsRevoked(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	if m.client != nil {
		n, err := m.client.Exists(ctx, m.key(jti)).Result()
		switch {
		case err == nil && n > 0:
			return true, nil
		case err != nil && !errors.Is(err, redis.Nil):
			m.logger.Warn("redis lookup failed, falling back to database", zap.Error(err))
		}
	}

	revoked, err := m.tokens.Exists(ctx, jti)
	if err != nil {
		return false, fmt.Errorf("failed to check revocation list: %w", err)
	}

	if revoked && m.client != nil {
		if ttl := expiresAt.Sub(m.now()); ttl > 0 {
			if err := m.client.Set(ctx, m.key(jti), 1, ttl).Err(); err != nil {
				m.logger.Debug("failed to restore revocation cache", zap.Error(err))
			}
		}
	}
	return revoked, nil
}

// Cleanup drops database rows whose tokens have expired anyway. Redis
// entries expire on their own.
func (m *Manager) Cleanup(ctx context.Context) (int64, error) {
	n, err := m.tokens.DeleteExpired(ctx, m.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to clean revoked tokens: %w", err)
	}
	return n, nil
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (m *Manager) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Cleanup(ctx)
			if err != nil {
				m.logger.Error("revoked token cleanup failed", zap.Error(err))
				continue
			}
			if n > 0 {
				m.logger.Info("revoked token cleanup", zap.Int64("removed", n))
			}
		}
	}
}
