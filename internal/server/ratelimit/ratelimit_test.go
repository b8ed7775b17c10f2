package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestBucket_Take(t *testing.T) {
	b := newBucket(10, 1.0) // 10 tokens, 1 token per second

	for i := 0; i < 10; i++ {
		if !b.take() {
			t.Errorf("expected request %d to be allowed", i+1)
		}
	}
	if b.take() {
		t.Error("expected 11th request to be denied")
	}
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(10, 1.0)
	for i := 0; i < 10; i++ {
		b.take()
	}

	time.Sleep(1100 * time.Millisecond)

	if !b.take() {
		t.Error("expected request to be allowed after refill")
	}
	if b.take() {
		t.Error("expected request to be denied after consuming refilled token")
	}
}

func TestBucket_Status(t *testing.T) {
	b := newBucket(10, 1.0)
	for i := 0; i < 5; i++ {
		b.take()
	}

	remaining, resetTime := b.status()
	if remaining != 5 {
		t.Errorf("remaining = %d, want 5", remaining)
	}
	if resetTime.Before(time.Now()) {
		t.Error("reset time should be in the future")
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/rankings", "GET")
		if !allowed {
			t.Errorf("expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Limit = %d, want 10", info.Limit)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/rankings", "GET")
	if allowed {
		t.Error("expected 11th request to be denied")
	}
	if info.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", info.Remaining)
	}
	if info.RetryAfter <= 0 {
		t.Error("expected positive retry-after")
	}
}

func TestLimiter_ScoringTier(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	// Scoring endpoint allows only its burst immediately
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/analyses", "POST")
		if !allowed {
			t.Errorf("expected scoring request %d to be allowed", i+1)
		}
		if info.Limit != 30 {
			t.Errorf("Limit = %d, want 30", info.Limit)
		}
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/analyses", "POST"); allowed {
		t.Error("expected scoring request beyond burst to be denied")
	}

	// Reads of the same resource fall through to the default limit
	allowed, info := limiter.Allow("127.0.0.1", "/analyses/abc", "GET")
	if !allowed {
		t.Error("expected read request to be allowed")
	}
	if info.Limit != 1000 {
		t.Errorf("Limit = %d, want default 1000", info.Limit)
	}

	// Health checks are unlimited
	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatal("expected health check to be unlimited")
		}
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/rankings", "GET"); !allowed {
			t.Fatalf("expected whitelisted request %d to be allowed", i+1)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("192.168.1.1", "/rankings", "GET"); allowed {
		t.Error("expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/analyses", "POST"); !allowed {
			t.Fatalf("expected request %d to be allowed when disabled", i+1)
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/rankings", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("allowed %d concurrent requests, want exactly 100", allowedCount)
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/rankings", "GET")
	if !allowed {
		t.Error("expected request to be allowed with default config")
	}
	if info.Limit != 1000 {
		t.Errorf("Limit = %d, want default 1000", info.Limit)
	}
}
