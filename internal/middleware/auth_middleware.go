// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"carsales-service/internal/domain/auth"
	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxIdentity = "identity"
	ctxUserID   = "user_id"
	ctxRole     = "role"
	ctxJTI      = "jti"
)

// Authenticator resolves a bearer token to the identity behind it
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
}

func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Auth validates the bearer token and stores the identity in the context
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "missing authorization token")
			return
		}

		id, err := m.authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, "invalid or expired token", err)
			return
		}

		c.Set(ctxIdentity, id)
		c.Set(ctxUserID, id.UserID)
		c.Set(ctxRole, id.Role)
		c.Set(ctxJTI, id.JTI)
		c.Next()
	}
}

// RequireRole lets the request through when the caller has one of roles.
// MUST be used after Auth().
func (m *AuthMiddleware) RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		err := fmt.Errorf("%w: role %s may not access this resource", xerrors.ErrForbidden, role)
		response.Error(c, http.StatusForbidden, "insufficient permissions", err, map[string]interface{}{
			"required_roles": roles,
		})
	}
}

func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return m.RequireRole(auth.RoleAdministrator)
}

func (m *AuthMiddleware) VendorOnly() gin.HandlerFunc {
	return m.RequireRole(auth.RoleVendor)
}

func (m *AuthMiddleware) AdminOrVendor() gin.HandlerFunc {
	return m.RequireRole(auth.RoleAdministrator, auth.RoleVendor)
}

// extractToken reads the Authorization header, falling back to the token
// query parameter browsers use for websocket upgrades.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return c.Query("token")
}
