package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type failingLimiter struct{}

func (f *failingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, errors.New("limiter backend unavailable")
}

func TestInMemoryRateLimiter_Allow(t *testing.T) {
	limiter := NewInMemoryRateLimiter(rate.Every(time.Hour), 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "key")
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}

	allowed, _ := limiter.Allow(ctx, "key")
	if allowed {
		t.Error("Expected request over burst to be denied")
	}

	// Another key has its own bucket
	allowed, _ = limiter.Allow(ctx, "other")
	if !allowed {
		t.Error("Expected a different key to be allowed")
	}
}

func TestInMemoryRateLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewInMemoryRateLimiter(rate.Every(time.Hour), 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	var allowedCount int64

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := "key-" + string(rune('a'+n%5))
			allowed, err := limiter.Allow(ctx, key)
			if err != nil {
				t.Errorf("Allow failed: %v", err)
			}
			if allowed {
				atomic.AddInt64(&allowedCount, 1)
			}
		}(i)
	}
	wg.Wait()

	// 5 keys with burst 10 each admit everything
	if allowedCount != 50 {
		t.Errorf("Expected all 50 requests allowed across 5 keys, got %d", allowedCount)
	}
}

func TestRateLimitWithConfig_TooManyRequests(t *testing.T) {
	router := setupTestRouter()

	limiter := NewInMemoryRateLimiter(rate.Every(time.Hour), 1)
	config := &RateLimitConfig{
		Requests: 1,
		Window:   time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return "test"
		},
	}

	router.GET("/limited", RateLimitWithConfig(limiter, config), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/limited", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected first request to pass, got %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/limited", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header to be set")
	}
}

func TestRateLimitWithConfig_FailOpen(t *testing.T) {
	router := setupTestRouter()

	config := &RateLimitConfig{
		Requests: 1,
		Window:   time.Minute,
		KeyFunc: func(c *gin.Context) string {
			return "test"
		},
	}

	router.GET("/limited", RateLimitWithConfig(&failingLimiter{}, config), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Requests pass through when the limiter backend errors
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/limited", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected request %d to pass when limiter fails, got %d", i+1, w.Code)
		}
	}
}
