package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"carsales-service/internal/domain/auth"
	xerrors "carsales-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeAuthenticator map[string]*auth.Identity

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*auth.Identity, error) {
	if token == "revoked" {
		return nil, xerrors.ErrTokenRevoked
	}
	id, ok := f[token]
	if !ok {
		return nil, fmt.Errorf("%w: bad token", xerrors.ErrUnauthorized)
	}
	return id, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() *gin.Engine {
	m := NewAuthMiddleware(fakeAuthenticator{
		"admin":  {UserID: 1, Role: auth.RoleAdministrator, JTI: "j1"},
		"vendor": {UserID: 2, Role: auth.RoleVendor, JTI: "j2"},
	})

	r := gin.New()
	r.Use(RecoveryMiddleware(zap.NewNop()))
	authed := r.Group("/", m.Auth())
	authed.GET("/any", m.AdminOrVendor(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": MustGetIdentity(c).UserID})
	})
	authed.GET("/admin", m.AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	authed.GET("/vendor", m.VendorOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestAuthAndRoleGates(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing token", "/any", "", http.StatusUnauthorized},
		{"bad scheme", "/any", "Basic admin", http.StatusUnauthorized},
		{"unknown token", "/any", "Bearer nope", http.StatusUnauthorized},
		{"revoked token", "/any", "Bearer revoked", http.StatusUnauthorized},
		{"vendor on shared route", "/any", "Bearer vendor", http.StatusOK},
		{"admin on shared route", "/any", "Bearer admin", http.StatusOK},
		{"vendor on admin route", "/admin", "Bearer vendor", http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer admin", http.StatusOK},
		{"admin on vendor route", "/vendor", "Bearer admin", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestTokenFromQuery(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/any?token=vendor", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	store, err := NewLimiterStore(nil, "test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	limit, err := RateLimit("2-M", store, zap.NewNop())
	if err != nil {
		t.Fatalf("rate limit: %v", err)
	}

	r := gin.New()
	r.POST("/login", limit, func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}

	if _, err := RateLimit("lots", store, zap.NewNop()); err == nil {
		t.Fatal("expected error for malformed rate")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://dash.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Fatalf("unexpected allow-origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("origin should not be allowed")
	}
}
