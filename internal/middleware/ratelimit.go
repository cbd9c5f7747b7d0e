package middleware

import (
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	pkgResponse "assessment-planner/pkg/response"
)

const limiterCacheSize = 1024

// RateLimit returns a per-client token-bucket limiter allowing perMin
// requests per minute. Clients are keyed by the authenticated user when
// present, otherwise by IP. Limiter state lives in an LRU so the table
// cannot grow without bound.
func (m Middleware) RateLimit(perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters, _ := lru.New[string, *rate.Limiter](limiterCacheSize)

	return func(c *gin.Context) {
		key := c.GetHeader("X-User-ID")
		if key == "" {
			key = c.ClientIP()
		}

		limiter, ok := limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(float64(perMin)/60.0), perMin)
			limiters.Add(key, limiter)
		}

		if !limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for %s", key)
			pkgResponse.TooManyRequests(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
