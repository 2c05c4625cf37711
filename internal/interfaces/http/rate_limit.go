package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const limiterIdle = 10 * time.Minute

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

type userLimiters struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	lastSweep time.Time
}

func (u *userLimiters) get(key string, now time.Time) *rate.Limiter {
	u.mu.Lock()
	defer u.mu.Unlock()
	if now.Sub(u.lastSweep) > time.Minute {
		for k, e := range u.entries {
			if now.Sub(e.seen) > limiterIdle {
				delete(u.entries, k)
			}
		}
		u.lastSweep = now
	}
	e, ok := u.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(u.rps, u.burst)}
		u.entries[key] = e
	}
	e.seen = now
	return e.lim
}

// RateLimitPerUser keeps one token bucket per authenticated user (client IP when anonymous)
// and answers 429 RATE_LIMITED when it is empty. rps <= 0 disables the limit.
func RateLimitPerUser(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	limiters := &userLimiters{entries: map[string]*limiterEntry{}, rps: rate.Limit(rps), burst: burst}
	return func(c *fiber.Ctx) error {
		key := GetUserID(c)
		if key == "" {
			key = "ip:" + c.IP()
		}
		if !limiters.get(key, time.Now()).Allow() {
			c.Set(fiber.HeaderRetryAfter, "1")
			return writeError(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, slow down")
		}
		return c.Next()
	}
}
