package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
}

// RateLimiter applies one token bucket across all callers. Booking traffic
// is studio staff and a front desk, not the open internet; per-client
// buckets are not worth the bookkeeping at that volume.
type RateLimiter struct {
	bucket *rate.Limiter
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(config.Rate, config.Burst),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.bucket.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "too many requests",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}
