package middleware

import (
	"api/metrics"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a token bucket per client IP. Buckets refill rate tokens
// per minute up to the burst capacity.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int
	burst    int
	interval time.Duration
}

type bucket struct {
	tokens      int
	lastUpdated time.Time
}

func NewRateLimiter(rate int, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
	go rl.evictStale()
	return rl
}

// Allow takes one token from the client's bucket, refilling first based on
// elapsed time.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.visitors[ip]
	if !exists {
		b = &bucket{tokens: rl.burst, lastUpdated: time.Now()}
		rl.visitors[ip] = b
	}

	now := time.Now()
	refill := int(now.Sub(b.lastUpdated)/rl.interval) * rl.rate
	if refill > 0 {
		b.tokens += refill
		if b.tokens > rl.burst {
			b.tokens = rl.burst
		}
		b.lastUpdated = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// evictStale drops buckets idle long enough to be full again, keeping the
// visitors map from growing with one entry per IP ever seen.
func (rl *RateLimiter) evictStale() {
	for {
		time.Sleep(10 * time.Minute)
		cutoff := time.Now().Add(-2 * rl.interval)
		rl.mu.Lock()
		for ip, b := range rl.visitors {
			if b.lastUpdated.Before(cutoff) {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func RateLimiterMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.Allow(ip) {
			metrics.RateLimiterRejections.WithLabelValues(ip).Inc()

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
