package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter allows limit requests per client within a sliding window.
type RateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (rl *RateLimiter) IsAllowed(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	times := rl.recent(client, now)
	if len(times) >= rl.limit {
		rl.requests[client] = times
		return false
	}

	rl.requests[client] = append(times, now)
	return true
}

func (rl *RateLimiter) Remaining(client string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return max(rl.limit-len(rl.recent(client, rl.now())), 0)
}

// recent returns the requests of client that are still inside the window. Callers hold mu.
func (rl *RateLimiter) recent(client string, now time.Time) []time.Time {
	windowStart := now.Add(-rl.window)
	var valid []time.Time
	for _, t := range rl.requests[client] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	return valid
}

// sweep drops idle clients at most once per window. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now

	for client := range rl.requests {
		if valid := rl.recent(client, now); len(valid) == 0 {
			delete(rl.requests, client)
		} else {
			rl.requests[client] = valid
		}
	}
}

// RateLimitMiddleware rejects clients over the limit with 429.
func RateLimitMiddleware(rl *RateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !rl.IsAllowed(clientIP) {
			logger.Warn("Rate limit exceeded", zap.String("client", clientIP), zap.String("path", c.FullPath()))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts, please try again later",
			})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining(clientIP)))
		c.Next()
	}
}
