package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	pkgredis "github.com/ayushMishra464/EventManagement/pkg/redis"
	"github.com/ayushMishra464/EventManagement/pkg/response"
)

// RateLimitConfig holds rate limiting configuration for booking endpoints.
// Requests are counted per authenticated user; unauthenticated requests
// fall back to the client IP.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	// UseRedis enables distributed limiting across instances
	UseRedis    bool
	RedisClient *pkgredis.Client
	KeyPrefix   string
	// Entry TTL for the local limiter map
	EntryTTL time.Duration
}

// DefaultRateLimitConfig returns sensible defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		UseRedis:          false,
		KeyPrefix:         "ratelimit:",
		EntryTTL:          5 * time.Minute,
	}
}

// bucket tracks token state for one caller
type bucket struct {
	tokens     float64
	lastUpdate time.Time
	mu         sync.Mutex
}

// LocalRateLimiter implements an in-memory token bucket keyed by caller
type LocalRateLimiter struct {
	cfg     RateLimitConfig
	buckets sync.Map
	stop    chan struct{}
	once    sync.Once
}

// NewLocalRateLimiter creates a local limiter and starts its cleanup loop
func NewLocalRateLimiter(cfg RateLimitConfig) *LocalRateLimiter {
	rl := &LocalRateLimiter{
		cfg:  cfg,
		stop: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow reports whether the caller may proceed
func (rl *LocalRateLimiter) Allow(key string) bool {
	now := time.Now()

	entry, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:     float64(rl.cfg.RequestsPerWindow),
		lastUpdate: now,
	})
	b := entry.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	// Refill proportionally to elapsed time
	refillRate := float64(rl.cfg.RequestsPerWindow) / rl.cfg.Window.Seconds()
	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.tokens = minFloat(float64(rl.cfg.RequestsPerWindow), b.tokens+elapsed*refillRate)
	b.lastUpdate = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (rl *LocalRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cfg.EntryTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.cfg.EntryTTL)
			rl.buckets.Range(func(key, value interface{}) bool {
				b := value.(*bucket)
				b.mu.Lock()
				if b.lastUpdate.Before(cutoff) {
					rl.buckets.Delete(key)
				}
				b.mu.Unlock()
				return true
			})
		case <-rl.stop:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *LocalRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// RedisRateLimiter implements distributed token bucket limiting via a Lua
// script, so the check and decrement are atomic across instances.
type RedisRateLimiter struct {
	cfg    RateLimitConfig
	script string
}

// NewRedisRateLimiter creates a Redis-backed limiter
func NewRedisRateLimiter(cfg RateLimitConfig) *RedisRateLimiter {
	script := `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local data = redis.call("HMGET", key, "tokens", "last_update")
local tokens = tonumber(data[1]) or burst
local last_update = tonumber(data[2]) or now

local elapsed = now - last_update
tokens = math.min(burst, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
    tokens = tokens - 1
    allowed = 1
end
redis.call("HMSET", key, "tokens", tokens, "last_update", now)
redis.call("EXPIRE", key, math.ceil(burst / rate) * 2)
return allowed
`
	return &RedisRateLimiter{cfg: cfg, script: script}
}

// Allow reports whether the caller may proceed
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := float64(time.Now().UnixNano()) / 1e9
	refillRate := float64(rl.cfg.RequestsPerWindow) / rl.cfg.Window.Seconds()

	result := rl.cfg.RedisClient.Eval(ctx, rl.script,
		[]string{rl.cfg.KeyPrefix + key},
		refillRate,
		float64(rl.cfg.RequestsPerWindow),
		now,
	)
	if result.Err() != nil {
		return false, result.Err()
	}

	allowed, err := result.Int64()
	if err != nil {
		return false, fmt.Errorf("unexpected rate limit script result: %w", err)
	}
	return allowed == 1, nil
}

// RateLimiter creates a rate limiting middleware. It must run after the JWT
// middleware so the per-user key is available.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	var localLimiter *LocalRateLimiter
	var redisLimiter *RedisRateLimiter

	if cfg.UseRedis && cfg.RedisClient != nil {
		redisLimiter = NewRedisRateLimiter(cfg)
	} else {
		localLimiter = NewLocalRateLimiter(cfg)
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, ok := GetUserID(c); ok && userID != "" {
			key = userID
		}

		var allowed bool
		if redisLimiter != nil {
			var err error
			allowed, err = redisLimiter.Allow(c.Request.Context(), key)
			if err != nil {
				// Fail open on Redis errors rather than blocking bookings
				allowed = true
			}
		} else {
			allowed = localLimiter.Allow(key)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))

		if !allowed {
			retryAfter := int(cfg.Window.Seconds() / float64(cfg.RequestsPerWindow))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.TooManyRequests(""))
			return
		}

		c.Next()
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
