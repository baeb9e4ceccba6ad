package security

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(rate, window)
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_AllowsUpToRate(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("session-a"), "request %d", i+1)
	}
	assert.False(t, rl.Allow("session-a"))
	assert.True(t, rl.Allow("session-b"), "keys are independent")
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	rl, clock := newTestLimiter(t, 1, time.Minute)

	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))

	clock.Advance(59 * time.Second)
	assert.False(t, rl.Allow("k"))

	clock.Advance(time.Second)
	assert.True(t, rl.Allow("k"))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, clock := newTestLimiter(t, 1, time.Minute)

	rl.Allow("old")
	clock.Advance(3 * time.Minute)
	rl.Allow("fresh")
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.visitors, "old")
	assert.Contains(t, rl.visitors, "fresh")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1:5555", GetClientIP(r))

	r.Header.Set("X-Real-IP", "192.168.1.9")
	assert.Equal(t, "192.168.1.9", GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	assert.Equal(t, "203.0.113.7", GetClientIP(r))
}
