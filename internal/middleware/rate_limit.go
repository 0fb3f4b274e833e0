package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"scheduling-assistant/pkg/response"
)

// RateLimit applies a per-client token bucket keyed by client IP. Zero or
// negative requests-per-minute disables limiting.
func (m Middleware) RateLimit() gin.HandlerFunc {
	rpm := m.config.RateLimit.RequestsPerMin
	burst := m.config.RateLimit.Burst
	if rpm <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = rpm
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[key]
		if !ok {
			lim = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
			limiters[key] = lim
		}
		return lim
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded for %s", c.ClientIP())
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
