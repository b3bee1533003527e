package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowRequestEnforcesLimit(t *testing.T) {
	rl := NewRateLimiter(3, true)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowRequest("agent-1"), "request %d should pass", i+1)
	}
	assert.False(t, rl.AllowRequest("agent-1"))

	// Other keys have their own window
	assert.True(t, rl.AllowRequest("agent-2"))
}

func TestRemaining(t *testing.T) {
	rl := NewRateLimiter(3, true)

	assert.Equal(t, 3, rl.Remaining("agent-1"))
	rl.AllowRequest("agent-1")
	assert.Equal(t, 2, rl.Remaining("agent-1"))

	rl.AllowRequest("agent-1")
	rl.AllowRequest("agent-1")
	rl.AllowRequest("agent-1")
	assert.Equal(t, 0, rl.Remaining("agent-1"))
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(1, false)

	for i := 0; i < 10; i++ {
		assert.True(t, rl.AllowRequest("agent-1"))
	}
	assert.Equal(t, -1, rl.Remaining("agent-1"))
}

func TestZeroLimitAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(0, true)
	assert.True(t, rl.AllowRequest("agent-1"))
}
