package predictor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterGrantsUpToCapacity(t *testing.T) {
	rl := newRateLimiter(5)
	defer rl.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, rl.wait(ctx))
	}
	assert.False(t, rl.tryAcquire(), "bucket should be empty after capacity acquisitions")
}

func TestRateLimiterWaitHonorsContext(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Close()

	require.NoError(t, rl.wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := rl.wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiterDefaultsInvalidRate(t *testing.T) {
	rl := newRateLimiter(0)
	defer rl.Close()

	assert.True(t, rl.tryAcquire())
}
