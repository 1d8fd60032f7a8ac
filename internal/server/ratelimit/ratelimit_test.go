package ratelimit

import (
	"testing"
	"time"
)

func newTestLimiter(limit, burst int, window time.Duration) *Limiter {
	return NewLimiter(&Config{
		Enabled: true,
		Limit:   limit,
		Window:  window,
		Burst:   burst,
	})
}

func TestLimiterAllowsWithinBurst(t *testing.T) {
	limiter := newTestLimiter(10, 3, time.Hour)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("client-a")
		if !allowed {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}

	allowed, info := limiter.Allow("client-a")
	if allowed {
		t.Fatal("request beyond burst should be rejected")
	}
	if info.RetryAfter <= 0 {
		t.Errorf("rejected request should carry RetryAfter, got %v", info.RetryAfter)
	}
	if info.Limit != 10 {
		t.Errorf("Info.Limit = %d, want 10", info.Limit)
	}
}

func TestLimiterIsolatesClients(t *testing.T) {
	limiter := newTestLimiter(10, 1, time.Hour)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("client-a"); !allowed {
		t.Fatal("first request from client-a should be allowed")
	}
	if allowed, _ := limiter.Allow("client-a"); allowed {
		t.Fatal("second request from client-a should be rejected")
	}
	if allowed, _ := limiter.Allow("client-b"); !allowed {
		t.Fatal("client-b has its own bucket and should be allowed")
	}
}

func TestLimiterRefills(t *testing.T) {
	// 100 per second, so a drained bucket recovers almost immediately
	limiter := newTestLimiter(100, 1, time.Second)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("client-a"); !allowed {
		t.Fatal("first request should be allowed")
	}

	time.Sleep(50 * time.Millisecond)

	if allowed, _ := limiter.Allow("client-a"); !allowed {
		t.Fatal("bucket should have refilled")
	}
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("client-a"); !allowed {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_LIMIT", "")

	cfg := LoadConfig()
	if !cfg.Enabled {
		t.Fatal("rate limiting should default to enabled")
	}
	if cfg.Limit != 10 {
		t.Errorf("default limit = %d, want 10", cfg.Limit)
	}
	if cfg.Window != time.Hour {
		t.Errorf("default window = %v, want 1h", cfg.Window)
	}
}

func TestLoadConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	if cfg.Enabled {
		t.Fatal("RATE_LIMIT_ENABLED=false should disable rate limiting")
	}
}
