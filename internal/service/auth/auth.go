// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carsales-service/internal/domain/auth"
	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Revocations is the token blacklist
type Revocations interface {
	Revoke(ctx context.Context, jti string, userID int64, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string, expiresAt time.Time) (bool, error)
	Cleanup(ctx context.Context) (int64, error)
}

// SessionNotifier tells connected clients of a user that their session ended
type SessionNotifier interface {
	ForceLogout(userID int64, reason string)
}

type AuthService struct {
	users       auth.UserRepository
	jwtManager  *jwt.Manager
	revocations Revocations
	notifier    SessionNotifier
	logger      *zap.Logger
}

func NewAuthService(
	users auth.UserRepository,
	jwtManager *jwt.Manager,
	revocations Revocations,
	notifier SessionNotifier,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		jwtManager:  jwtManager,
		revocations: revocations,
		notifier:    notifier,
		logger:      logger,
	}
}

var errBadCredentials = fmt.Errorf("%w: invalid email or password", xerrors.ErrUnauthorized)

// ========== Login / Logout ==========

func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, xerrors.ErrNotFound) {
		s.logger.Info("login failed: unknown email", zap.String("email", email))
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("login failed: wrong password", zap.Int64("user_id", user.ID))
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", xerrors.ErrUnauthorized)
	}

	token, _, expiresAt, err := s.jwtManager.Generator.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return &auth.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(time.Until(expiresAt).Seconds()),
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Authenticate validates the token signature and claims, then checks the
// revocation list and that the account is still active.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	claims, err := s.jwtManager.Verifier.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}

	id := &auth.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      auth.Role(claims.Role),
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	revoked, err := s.revocations.IsRevoked(ctx, id.JTI, id.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, xerrors.ErrTokenRevoked
	}

	user, err := s.users.FindByID(ctx, id.UserID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", xerrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", xerrors.ErrUnauthorized)
	}
	id.Role = user.Role
	return id, nil
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, id *auth.Identity) error {
	if err := s.revocations.Revoke(ctx, id.JTI, id.UserID, id.ExpiresAt); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.Int64("user_id", id.UserID), zap.String("jti", id.JTI))
	return nil
}

func (s *AuthService) CleanupTokens(ctx context.Context) (int64, error) {
	n, err := s.revocations.Cleanup(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("expired revoked tokens removed", zap.Int64("removed", n))
	return n, nil
}

// ========== Users ==========

func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.User, error) {
	if !req.Role.Valid() {
		return nil, xerrors.Invalid("role must be %q or %q", auth.RoleAdministrator, auth.RoleVendor)
	}
	email := normalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s is already registered", xerrors.ErrConflict, email)
	} else if !errors.Is(err, xerrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &auth.User{
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		EmployeeID:   req.EmployeeID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*auth.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *auth.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", xerrors.ErrUnauthorized)
	}
	if req.CurrentPassword == req.NewPassword {
		return xerrors.Invalid("new password must differ from the current one")
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.logger.Info("password changed", zap.Int64("user_id", userID))
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, filters *auth.UserListFilters) ([]auth.User, error) {
	if filters.Role != nil && !filters.Role.Valid() {
		return nil, xerrors.Invalid("role %q does not exist", *filters.Role)
	}
	list, err := s.users.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return list, nil
}

// SetActive enables or disables an account. Disabling also drops the
// user's websocket sessions; their tokens stop working on the next request.
func (s *AuthService) SetActive(ctx context.Context, userID int64, active bool) (*auth.User, error) {
	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return nil, err
	}
	if !active && s.notifier != nil {
		s.notifier.ForceLogout(userID, "account disabled")
	}
	s.logger.Info("user activation changed", zap.Int64("user_id", userID), zap.Bool("active", active))
	return s.users.FindByID(ctx, userID)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", xerrors.Invalid("password is too long")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
