package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupRateLimitRouter(cfg RateLimitConfig) *gin.Engine {
	router := gin.New()
	router.POST("/bookings", RateLimiter(cfg), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return router
}

func TestLocalRateLimiter_Allow(t *testing.T) {
	rl := NewLocalRateLimiter(RateLimitConfig{
		RequestsPerWindow: 3,
		Window:            time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("user-a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("user-a") {
		t.Error("request over quota should be rejected")
	}

	// Different keys have independent quotas
	if !rl.Allow("user-b") {
		t.Error("different key should have its own quota")
	}
}

func TestLocalRateLimiter_Refill(t *testing.T) {
	// 100 requests per 100ms window: refill is fast enough to observe
	rl := NewLocalRateLimiter(RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            100 * time.Millisecond,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	for i := 0; i < 100; i++ {
		rl.Allow("user-a")
	}
	if rl.Allow("user-a") {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.Allow("user-a") {
		t.Error("bucket should refill over time")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		EntryTTL:          time.Minute,
	}
	router := setupRateLimitRouter(cfg)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: expected status %d, got %d", i+1, http.StatusCreated, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

func TestRateLimiter_KeyedByUser(t *testing.T) {
	cfg := RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		EntryTTL:          time.Minute,
	}

	router := gin.New()
	// Simulate the JWT middleware setting the user before the limiter runs.
	router.POST("/bookings", func(c *gin.Context) {
		c.Set(ContextKeyUserID, c.GetHeader("X-Test-User"))
	}, RateLimiter(cfg), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("user-a"); code != http.StatusCreated {
		t.Fatalf("first request for user-a: got %d", code)
	}
	if code := send("user-a"); code != http.StatusTooManyRequests {
		t.Errorf("second request for user-a should be limited, got %d", code)
	}
	// Same IP, different user: independent quota.
	if code := send("user-b"); code != http.StatusCreated {
		t.Errorf("first request for user-b should pass, got %d", code)
	}
}
