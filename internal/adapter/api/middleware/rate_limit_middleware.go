package middleware

import (
	"math"
	"time"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/infrastructure/ratelimit"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/response"
)

const requestAction = "request"

// RateLimiter throttles requests per client IP.
type RateLimiter struct {
	limiter *ratelimit.RateLimiter
}

// NewRateLimiter allows rps requests per second per IP with a burst of
// twice that. A non-positive rps disables the limit.
func NewRateLimiter(rps float64) *RateLimiter {
	if rps <= 0 {
		return &RateLimiter{limiter: ratelimit.Unlimited()}
	}

	policy := ratelimit.Policy{
		Burst: int(math.Max(1, math.Ceil(rps*2))),
		Every: time.Duration(float64(time.Second) / rps),
	}
	return &RateLimiter{
		limiter: ratelimit.NewRateLimiter(map[string]ratelimit.Policy{requestAction: policy}, policy),
	}
}

// StartCleanup drops idle visitors every interval until stop is closed.
func (rl *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	rl.limiter.StartCleanupRoutine(interval, stop)
}

func (rl *RateLimiter) RateLimitMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := rl.limiter.Allow(ip, requestAction)
			if !allowed {
				logger.Warn("RATE LIMIT: Blocked request from IP %s (retry in %v)", ip, wait)
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded", wait))
			}

			return next(c)
		}
	}
}
