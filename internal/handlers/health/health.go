// internal/handlers/health/health.go
package health

import (
	"context"
	"net/http"
	"time"

	"carsales-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis redis.UniversalClient
}

// NewHealthHandler reports on the database and, when configured, redis
func NewHealthHandler(db *gorm.DB, redisClient redis.UniversalClient) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok"}
	healthy := true

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		checks["database"] = "unavailable"
		healthy = false
	}
	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			// revocation falls back to the database, so redis is not fatal
			checks["redis"] = "degraded"
		}
	}

	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "service unhealthy", nil, checks)
		return
	}
	response.Success(c, http.StatusOK, "healthy", checks)
}
