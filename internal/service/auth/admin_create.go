// internal/service/auth/admin_create.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"carsales-service/internal/domain/auth"
	xerrors "carsales-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// EnsureDefaultAdmin creates the bootstrap administrator when no user with
// that email exists (called on startup).
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		s.logger.Info("default admin not configured, skipping")
		return nil
	}
	email = normalizeEmail(email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.logger.Info("default admin already exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, xerrors.ErrNotFound) {
		return fmt.Errorf("failed to check default admin: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := &auth.User{
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdministrator,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			return nil
		}
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	s.logger.Info("default admin created", zap.Int64("user_id", admin.ID), zap.String("email", email))
	return nil
}
