// internal/middleware/helpers.go
package middleware

import (
	"carsales-service/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

// GetIdentity returns the identity set by Auth()
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(ctxIdentity)
	if !exists {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok
}

// MustGetIdentity gets the identity from context or panics
func MustGetIdentity(c *gin.Context) *auth.Identity {
	id, ok := GetIdentity(c)
	if !ok {
		panic("identity not found in context")
	}
	return id
}

func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func GetRole(c *gin.Context) (auth.Role, bool) {
	v, exists := c.Get(ctxRole)
	if !exists {
		return "", false
	}
	role, ok := v.(auth.Role)
	return role, ok
}
