package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/slotpilot/bot-dashboard-backend/pkg/metrics"
)

// RateLimiter throttles requests per client IP inside a fixed window.
// It fronts the whole API; the login lockout in the services layer is a
// separate, per-username control.
type RateLimiter struct {
	clients map[string]*clientRateLimit
	mu      sync.RWMutex
	logger  *logrus.Logger
	metrics *metrics.Metrics
	limit   int
	window  time.Duration
}

type clientRateLimit struct {
	count     int
	lastReset time.Time
	mu        sync.Mutex
}

// NewRateLimiter creates a new rate limiter.
// limit: maximum requests per window.
func NewRateLimiter(limit int, window time.Duration, m *metrics.Metrics, logger *logrus.Logger) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientRateLimit),
		logger:  logger,
		metrics: m,
		limit:   limit,
		window:  window,
	}

	go rl.cleanup()

	return rl
}

// Middleware returns a gin middleware handler
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed := rl.allowRequest(clientIP)
		rl.metrics.RecordRateLimit(clientIP, allowed)

		if !allowed {
			rl.logger.WithFields(logrus.Fields{
				"client_ip":  clientIP,
				"request_id": GetRequestID(c),
				"path":       c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     "Too many requests. Please try again later.",
				"retry_after": rl.window.Seconds(),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allowRequest(clientIP string) bool {
	rl.mu.Lock()
	client, exists := rl.clients[clientIP]
	if !exists {
		client = &clientRateLimit{lastReset: time.Now()}
		rl.clients[clientIP] = client
	}
	rl.mu.Unlock()

	client.mu.Lock()
	defer client.mu.Unlock()

	if time.Since(client.lastReset) > rl.window {
		client.count = 0
		client.lastReset = time.Now()
	}

	if client.count >= rl.limit {
		return false
	}

	client.count++
	return true
}

// cleanup periodically removes stale client entries.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, client := range rl.clients {
			client.mu.Lock()
			if now.Sub(client.lastReset) > rl.window*2 {
				delete(rl.clients, ip)
			}
			client.mu.Unlock()
		}
		rl.mu.Unlock()
	}
}
