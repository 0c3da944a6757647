package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"carsales-service/internal/db"
	"carsales-service/internal/db/dbtest"
	"carsales-service/internal/domain/auth"
	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/pkg/jwt"
	"carsales-service/internal/pkg/session"
	"carsales-service/internal/repository/gormrepo"

	"go.uber.org/zap"
)

type recordingNotifier struct {
	loggedOut []int64
}

func (n *recordingNotifier) ForceLogout(userID int64, _ string) {
	n.loggedOut = append(n.loggedOut, userID)
}

func newService(t *testing.T) (*AuthService, *recordingNotifier) {
	t.Helper()
	gdb, err := dbtest.OpenMemory(t.Name())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	log := zap.NewNop()
	revocations := session.NewManager(nil, gormrepo.NewTokenRepository(gdb), log)
	manager := jwt.NewHMACManager([]byte("test-secret"), "carsales", "backoffice", 30*time.Minute)
	n := &recordingNotifier{}
	return NewAuthService(gormrepo.NewUserRepository(gdb), manager, revocations, n, log), n
}

func register(t *testing.T, s *AuthService, email string, role auth.Role) *auth.User {
	t.Helper()
	u, err := s.Register(context.Background(), &auth.RegisterRequest{Email: email, Password: "s3cret-pass", Role: role})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestLoginLogoutRevokes(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	register(t, s, "vendor@example.com", auth.RoleVendor)

	res, err := s.Login(ctx, &auth.LoginRequest{Email: "Vendor@Example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.TokenType != "bearer" || res.ExpiresIn < 29*60 || res.ExpiresIn > 30*60 {
		t.Fatalf("unexpected login response %+v", res)
	}

	id, err := s.Authenticate(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if id.Role != auth.RoleVendor || id.JTI == "" {
		t.Fatalf("unexpected identity %+v", id)
	}

	if err := s.Logout(ctx, id); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.Authenticate(ctx, res.AccessToken); !errors.Is(err, xerrors.ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	u := register(t, s, "a@example.com", auth.RoleVendor)

	if _, err := s.Login(ctx, &auth.LoginRequest{Email: "a@example.com", Password: "wrong-pass"}); !errors.Is(err, xerrors.ErrUnauthorized) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := s.Login(ctx, &auth.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"}); !errors.Is(err, xerrors.ErrUnauthorized) {
		t.Fatalf("unknown email: %v", err)
	}

	if _, err := s.SetActive(ctx, u.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := s.Login(ctx, &auth.LoginRequest{Email: "a@example.com", Password: "s3cret-pass"}); !errors.Is(err, xerrors.ErrUnauthorized) {
		t.Fatalf("inactive user: %v", err)
	}
}

func TestDeactivationEndsSessions(t *testing.T) {
	s, n := newService(t)
	ctx := context.Background()
	u := register(t, s, "b@example.com", auth.RoleVendor)

	res, err := s.Login(ctx, &auth.LoginRequest{Email: "b@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := s.SetActive(ctx, u.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if len(n.loggedOut) != 1 || n.loggedOut[0] != u.ID {
		t.Fatalf("notifier not called: %v", n.loggedOut)
	}
	if _, err := s.Authenticate(ctx, res.AccessToken); !errors.Is(err, xerrors.ErrUnauthorized) {
		t.Fatalf("token of disabled user accepted: %v", err)
	}
}

func TestRegisterRules(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	register(t, s, "dup@example.com", auth.RoleAdministrator)

	if _, err := s.Register(ctx, &auth.RegisterRequest{Email: "DUP@example.com", Password: "s3cret-pass", Role: auth.RoleVendor}); !errors.Is(err, xerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := s.Register(ctx, &auth.RegisterRequest{Email: "x@example.com", Password: "s3cret-pass", Role: "Manager"}); !errors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	u := register(t, s, "c@example.com", auth.RoleVendor)

	err := s.ChangePassword(ctx, u.ID, &auth.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "another-pass"})
	if !errors.Is(err, xerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := s.ChangePassword(ctx, u.ID, &auth.ChangePasswordRequest{CurrentPassword: "s3cret-pass", NewPassword: "another-pass"}); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, err := s.Login(ctx, &auth.LoginRequest{Email: "c@example.com", Password: "another-pass"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.EnsureDefaultAdmin(ctx, "root@example.com", "bootstrap-pass"); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	users, err := s.ListUsers(ctx, &auth.UserListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].Role != auth.RoleAdministrator {
		t.Fatalf("unexpected users %+v", users)
	}
}
