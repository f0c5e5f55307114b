package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerAcquireRelease(t *testing.T) {
	c := NewController(Config{MaxConcurrentReductions: 2})

	require.NoError(t, c.AcquireReduction(context.Background()))
	require.NoError(t, c.AcquireReduction(context.Background()))
	assert.Equal(t, int64(2), c.InFlight())

	// Limit reached.
	assert.False(t, c.TryAcquireReduction())

	c.ReleaseReduction()
	assert.Equal(t, int64(1), c.InFlight())
	assert.True(t, c.TryAcquireReduction())

	c.ReleaseReduction()
	c.ReleaseReduction()
	assert.Equal(t, int64(0), c.InFlight())
}

func TestControllerAcquireBlocksUntilRelease(t *testing.T) {
	c := NewController(Config{MaxConcurrentReductions: 1})
	require.NoError(t, c.AcquireReduction(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- c.AcquireReduction(context.Background())
	}()

	select {
	case <-done:
		t.Fatal("acquire should block while the slot is held")
	case <-time.After(20 * time.Millisecond):
	}

	c.ReleaseReduction()
	require.NoError(t, <-done)
	c.ReleaseReduction()
}

func TestControllerAcquireCancelled(t *testing.T) {
	c := NewController(Config{MaxConcurrentReductions: 1})
	require.NoError(t, c.AcquireReduction(context.Background()))
	defer c.ReleaseReduction()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.AcquireReduction(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(1), c.InFlight())
}

func TestControllerDefaultsToOneSlot(t *testing.T) {
	c := NewController(Config{})

	assert.True(t, c.TryAcquireReduction())
	assert.False(t, c.TryAcquireReduction())
	c.ReleaseReduction()
}

func TestNilController(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireReduction(context.Background()))
	assert.True(t, c.TryAcquireReduction())
	assert.NotPanics(t, c.ReleaseReduction)
	assert.Equal(t, int64(0), c.InFlight())
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<20))
}

func TestControllerAcquireIOUnlimited(t *testing.T) {
	c := NewController(Config{MaxConcurrentReductions: 1})

	// No IO limit configured: never blocks.
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<30))
}

func TestControllerAcquireIOSplitsLargeRequests(t *testing.T) {
	c := NewController(Config{
		MaxConcurrentReductions: 1,
		IOLimitBytesPerSec:      1 << 20,
	})

	// Larger than the burst size: must be split, not rejected.
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<20+512))
}

func TestControllerAcquireIOCancelled(t *testing.T) {
	c := NewController(Config{
		MaxConcurrentReductions: 1,
		IOLimitBytesPerSec:      1024,
	})

	// Drain the burst allowance.
	require.NoError(t, c.AcquireIO(context.Background(), 1024))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := c.AcquireIO(ctx, 1024)
	assert.Error(t, err)
}
