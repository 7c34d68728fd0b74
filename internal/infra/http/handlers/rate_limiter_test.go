package handlers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterWindow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, 2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	now = now.Add(61 * time.Second)
	assert.True(t, rl.Allow("a"), "a new window starts after the old one expires")

	now = now.Add(3 * time.Minute)
	rl.forgetIdle()
	assert.Empty(t, rl.visitors)
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := &RateLimiter{visitors: map[string]*visitor{}, now: time.Now}
	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("a"))
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/leads", nil)
	r.RemoteAddr = "10.1.1.1:5555"
	assert.Equal(t, "10.1.1.1", clientIP(r))

	r.Header.Set("X-Real-IP", "2.2.2.2")
	r.Header.Set("X-Forwarded-For", " 3.3.3.3 , 10.0.0.1")
	assert.Equal(t, "10.1.1.1", clientIP(r), "forwarding headers are client controlled")

	r.RemoteAddr = "10.2.2.2"
	assert.Equal(t, "10.2.2.2", clientIP(r))
}
