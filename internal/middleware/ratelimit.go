package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-client-IP token bucket. Each bucket holds up to rate
// tokens and refills continuously at rate tokens per interval.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64
	interval  time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter allows rate requests per interval per client, e.g. 10 per minute.
func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     float64(max(rate, 1)),
		interval: interval,
		now:      time.Now,
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := rl.take(c.ClientIP())
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// take spends one token for key. When none is left it reports how long until
// the next one.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.rate, seen: now}
		rl.buckets[key] = b
	}

	perToken := rl.interval / time.Duration(rl.rate)
	b.tokens = math.Min(rl.rate, b.tokens+float64(now.Sub(b.seen))/float64(perToken))
	b.seen = now

	if b.tokens < 1 {
		return false, time.Duration((1 - b.tokens) * float64(perToken))
	}
	b.tokens--
	return true, 0
}

// sweep drops buckets that have been full for a while. It runs at most once
// per interval, piggybacking on requests instead of a background goroutine.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	rl.lastSweep = now
	for key, b := range rl.buckets {
		if now.Sub(b.seen) > 2*rl.interval {
			delete(rl.buckets, key)
		}
	}
}
