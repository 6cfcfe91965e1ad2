package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/familycare/clinic-api/internal/config"
	apperrors "github.com/familycare/clinic-api/pkg/util/errorutil"
)

const limiterIdleTTL = 10 * time.Minute

// ipLimiter is a token bucket per client IP.
type ipLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newIPLimiter(cfg config.RateLimitConfig) *ipLimiter {
	burst := cfg.LoginBurst
	if burst <= 0 {
		burst = 1
	}
	return &ipLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(float64(cfg.LoginPerMinute) / 60),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for key, b := range l.buckets {
			if now.Sub(b.seen) > limiterIdleTTL {
				delete(l.buckets, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// LoginRateLimit rejects clients that exceed the configured login rate.
// A non-positive rate disables limiting.
func LoginRateLimit(cfg config.RateLimitConfig) fiber.Handler {
	if cfg.LoginPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := newIPLimiter(cfg)
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			ip = "unknown"
		}
		if !limiter.allow(ip) {
			return apperrors.NewTooManyRequests("too many login attempts, try again later")
		}
		return c.Next()
	}
}
