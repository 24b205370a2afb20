package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/sessions/abc", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 10, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/sessions/abc", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.1", "/templates", "GET")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1", "/templates", "GET")
	assert.False(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.2", "/templates", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	cfg.Whitelist = map[string]bool{"127.0.0.1": true}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/templates", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist = map[string]bool{"6.6.6.6": true}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("6.6.6.6", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/sessions", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	cfg := testConfig()
	cfg.EndpointConfigs = []EndpointConfig{
		{Pattern: "/sessions/{id}/publish", Method: "POST", Limit: 2, Window: time.Minute},
	}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	// the bucket is shared across sessions for one client
	allowed, _ := limiter.Allow("127.0.0.1", "/sessions/a/publish", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("127.0.0.1", "/sessions/b/publish", "POST")
	assert.True(t, allowed)
	allowed, info := limiter.Allow("127.0.0.1", "/sessions/c/publish", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, _ = limiter.Allow("127.0.0.1", "/sessions/a/save", "POST")
	assert.True(t, allowed, "other routes use the default limit")
}

func TestLimiter_Burst(t *testing.T) {
	cfg := testConfig()
	cfg.EndpointConfigs = []EndpointConfig{
		{Pattern: "/sessions", Method: "POST", Limit: 100, Window: time.Minute, Burst: 3},
	}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/sessions", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow("127.0.0.1", "/sessions", "POST")
	assert.False(t, allowed, "burst caps immediate requests")
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 50
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "/templates", "GET"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, allowed, 50)
	assert.LessOrEqual(t, allowed, 51, "at most one token refills during the test")
}

func TestLimiter_Cleanup(t *testing.T) {
	cfg := testConfig()
	cfg.IdleTTL = time.Minute
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/templates", "GET")
	}
	require.Equal(t, 3, limiter.size())

	limiter.cleanupBuckets(time.Now())
	assert.Equal(t, 3, limiter.size(), "recent buckets survive")

	limiter.cleanupBuckets(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, limiter.size())
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second, CleanupInterval: time.Millisecond})
	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("127.0.0.1", "/templates", "GET")
	assert.True(t, allowed)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path    string
		method  string
		pattern string
	}{
		{"/sessions", "POST", "/sessions"},
		{"/sessions/abc/save", "POST", "/sessions/{id}/save"},
		{"/sessions/abc/export", "GET", "/sessions/{id}/export"},
		{"/health", "GET", "/health"},
		{"/sessions/abc", "PATCH", ""},
		{"/sessions//save", "POST", ""},
		{"/sessions/abc/save", "GET", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.pattern == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.pattern, got.Pattern)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2,")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, map[string]bool{"1.1.1.1": true, "2.2.2.2": true}, cfg.Whitelist)
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
