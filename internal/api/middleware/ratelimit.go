package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

// RateLimitConfig bounds how often one caller may hit the routes the limiter guards.
// A non-positive RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL is how long an unused per-caller limiter is kept
	IdleTTL time.Duration
}

type callerLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type keyedLimiter struct {
	mu        sync.Mutex
	cfg       RateLimitConfig
	limiters  map[string]*callerLimiter
	lastSweep time.Time
	now       func() time.Time
}

func newKeyedLimiter(cfg RateLimitConfig, now func() time.Time) *keyedLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &keyedLimiter{
		cfg:       cfg,
		limiters:  make(map[string]*callerLimiter),
		lastSweep: now(),
		now:       now,
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) > k.cfg.IdleTTL {
		for id, l := range k.limiters {
			if now.Sub(l.lastSeen) > k.cfg.IdleTTL {
				delete(k.limiters, id)
			}
		}
		k.lastSweep = now
	}

	l, ok := k.limiters[key]
	if !ok {
		l = &callerLimiter{limiter: rate.NewLimiter(rate.Limit(k.cfg.RequestsPerSecond), k.cfg.Burst)}
		k.limiters[key] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

// RateLimit returns a gin middleware that throttles each caller independently.
// Authenticated requests are keyed by caller identity, anonymous ones by client IP.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newKeyedLimiter(cfg, time.Now)
	return func(c *gin.Context) {
		key := c.ClientIP()
		if caller, ok := CallerFromContext(c); ok {
			key = caller.Hex()
		}

		if !limiter.allow(key) {
			logger.DebugCtx(c.Request.Context(), "Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierrors.NewRateLimitedError())
			return
		}

		c.Next()
	}
}
