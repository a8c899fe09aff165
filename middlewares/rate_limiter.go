package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateLimit counts requests per client IP and forgets all counts every resetTime.
type rateLimit struct {
	mu        sync.Mutex
	visitors  map[string]int
	limit     int
	resetTime time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewRateLimiter(limit int, resetTime time.Duration) *rateLimit {
	r1 := &rateLimit{
		visitors:  make(map[string]int),
		limit:     limit,
		resetTime: resetTime,
		stop:      make(chan struct{}),
	}
	go r1.resetTimelimit()
	return r1
}

func (r1 *rateLimit) resetTimelimit() {
	ticker := time.NewTicker(r1.resetTime)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r1.mu.Lock()
			r1.visitors = make(map[string]int)
			r1.mu.Unlock()
		case <-r1.stop:
			return
		}
	}
}

func (r1 *rateLimit) Stop() {
	r1.stopOnce.Do(func() { close(r1.stop) })
}

// Middleware rejects a client once it went over the limit in the current window.
// A limit of zero disables the check.
func (r1 *rateLimit) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r1.limit <= 0 {
			c.Next()
			return
		}

		r1.mu.Lock()
		visitorIP := c.ClientIP()
		r1.visitors[visitorIP]++
		over := r1.visitors[visitorIP] > r1.limit
		r1.mu.Unlock()

		if over {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many uploads, please try again in a minute"})
			return
		}
		c.Next()
	}
}
