package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiterEnforcesLimit(t *testing.T) {
	rl := NewIPRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other IPs keep their own window.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestIPRateLimiterWindowExpiry(t *testing.T) {
	rl := NewIPRateLimiter(2, 50*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(60 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestTokenBucketPerIP(t *testing.T) {
	l := newTokenBucketLimiter(1, 2)

	assert.True(t, l.limiter("1.2.3.4").Allow())
	assert.True(t, l.limiter("1.2.3.4").Allow())
	assert.False(t, l.limiter("1.2.3.4").Allow())

	assert.True(t, l.limiter("5.6.7.8").Allow())
}
