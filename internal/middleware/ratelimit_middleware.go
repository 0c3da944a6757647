// internal/middleware/ratelimit_middleware.go
package middleware

import (
	"fmt"
	"net/http"

	xerrors "carsales-service/internal/pkg/errors"
	"carsales-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

// NewLimiterStore keeps counters in redis when a client is configured so
// limits hold across instances, and in memory otherwise.
func NewLimiterStore(client redis.UniversalClient, prefix string) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix}), nil
	}
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
}

// RateLimit limits requests per client IP. rate uses the "<limit>-<period>"
// format, e.g. "5-M".
func RateLimit(rate string, store limiter.Store, logger *zap.Logger) (gin.HandlerFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	return mgin.NewMiddleware(limiter.New(store, r),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Warn("rate limit reached",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path))
			response.Error(c, http.StatusTooManyRequests, "too many requests, try again later", xerrors.ErrRateLimited)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// a broken store must not lock everyone out
			logger.Error("rate limiter store failed", zap.Error(err))
			c.Next()
		}),
	), nil
}
