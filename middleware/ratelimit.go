package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type rateWindow struct {
	count   int
	resetAt time.Time
}

// rateLimiter is a fixed-window per-client counter. Expired windows are
// swept on access so the client map does not grow without bound.
type rateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*rateWindow
	max       int
	window    time.Duration
	nextSweep time.Time
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*rateWindow),
		max:     maxRequests,
		window:  window,
	}
}

// allow records one request for key and reports whether it is within the
// window limit.
func (rl *rateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.After(rl.nextSweep) {
		for k, w := range rl.clients {
			if now.After(w.resetAt) {
				delete(rl.clients, k)
			}
		}
		rl.nextSweep = now.Add(rl.window)
	}

	entry, ok := rl.clients[key]
	if !ok || now.After(entry.resetAt) {
		entry = &rateWindow{resetAt: now.Add(rl.window)}
		rl.clients[key] = entry
	}
	entry.count++
	return entry.count <= rl.max
}

func (rl *rateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// RateLimitMiddleware is a fixed-window per-IP limiter for the public
// submission endpoints. State is in-process only.
func RateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newRateLimiter(maxRequests, window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}
