package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for the rate limiter middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate (tokens added per second).
	RequestsPerSecond float64
	// Burst is the maximum number of requests allowed in a burst.
	Burst int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-IP token bucket and answers 429 with a
// Retry-After header when it is exhausted. Idle entries are dropped lazily.
func RateLimiter(cfg RateLimitConfig) echo.MiddlewareFunc {
	var (
		mu        sync.Mutex
		clients   = map[string]*clientLimiter{}
		lastSweep = time.Now()
	)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(lastSweep) > 5*time.Minute {
			for k, cl := range clients {
				if now.Sub(cl.lastSeen) > 10*time.Minute {
					delete(clients, k)
				}
			}
			lastSweep = now
		}

		cl, ok := clients[ip]
		if !ok {
			cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)}
			clients[ip] = cl
		}
		cl.lastSeen = now
		return cl.limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limiter := limiterFor(c.RealIP())

			reservation := limiter.Reserve()
			if !reservation.OK() {
				return tooManyRequests(c, 0)
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				return tooManyRequests(c, int(delay.Seconds())+1)
			}
			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context, retryAfterSecs int) error {
	if retryAfterSecs > 0 {
		c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSecs))
	}
	return c.JSON(http.StatusTooManyRequests, map[string]string{"detail": "Rate limit exceeded"})
}
