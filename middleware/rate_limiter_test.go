package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("10.0.0.1"))
	}
	require.False(t, rl.Allow("10.0.0.1"))

	// Another client has its own bucket
	require.True(t, rl.Allow("10.0.0.2"))
}
