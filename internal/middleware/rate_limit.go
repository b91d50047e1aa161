package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"skillswap/internal/utils"

	"github.com/gin-gonic/gin"
)

// RateLimiter stores rate limiting information per client key
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int
	burst    int
	cleanup  time.Duration
}

type visitor struct {
	bucket   *tokenBucket
	lastSeen time.Time
}

// tokenBucket implements the token bucket algorithm
type tokenBucket struct {
	tokens   int
	capacity int
	rate     int
	lastTime time.Time
	mu       sync.Mutex
}

// NewRateLimiter creates a limiter refilling rate tokens per second
// with the given burst capacity.
func NewRateLimiter(rate, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
		cleanup:  time.Minute * 3,
	}

	go rl.cleanupVisitors()

	return rl
}

// Allow checks if a request from the key is within limits.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{
			bucket: &tokenBucket{
				tokens:   rl.burst,
				capacity: rl.burst,
				rate:     rl.rate,
				lastTime: time.Now(),
			},
		}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	return v.bucket.allow()
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastTime)
	tb.lastTime = now

	tokensToAdd := int(elapsed.Seconds()) * tb.rate
	if tokensToAdd > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}

	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(rl.cleanup)

		rl.mu.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > rl.cleanup {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

var (
	// General API rate limiter
	apiLimiter = NewRateLimiter(100, 20)

	// Login and registration limiter, deliberately strict
	authLimiter = NewRateLimiter(5, 3)

	// WebSocket connection limiter
	streamLimiter = NewRateLimiter(10, 5)
)

// RateLimit applies the general API limit keyed by client IP.
func RateLimit() gin.HandlerFunc {
	return limitWith(apiLimiter, "Rate limit exceeded")
}

// AuthRateLimit applies the strict limit for credential endpoints.
func AuthRateLimit() gin.HandlerFunc {
	return limitWith(authLimiter, "Too many authentication attempts")
}

// StreamRateLimit applies the WebSocket connection limit.
func StreamRateLimit() gin.HandlerFunc {
	return limitWith(streamLimiter, "Too many connection attempts")
}

func limitWith(limiter *RateLimiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Logger middleware with a compact access log line
func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	})
}
