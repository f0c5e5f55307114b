package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentReductions is the maximum number of reductions running
	// at once. If 0, defaults to 1.
	MaxConcurrentReductions int64

	// IOLimitBytesPerSec is the maximum throughput for snapshot IO.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller bounds the concurrency of reductions and the IO rate of
// snapshot writes. A nil *Controller is valid and enforces nothing.
type Controller struct {
	cfg Config

	reduceSem *semaphore.Weighted
	inFlight  atomic.Int64

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentReductions <= 0 {
		cfg.MaxConcurrentReductions = 1
	}

	c := &Controller{
		cfg:       cfg,
		reduceSem: semaphore.NewWeighted(cfg.MaxConcurrentReductions),
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireReduction reserves a reduction slot, blocking until one is
// available or ctx is cancelled.
func (c *Controller) AcquireReduction(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.reduceSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireReduction reserves a reduction slot without blocking.
func (c *Controller) TryAcquireReduction() bool {
	if c == nil {
		return true
	}
	if !c.reduceSem.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseReduction releases a reduction slot.
func (c *Controller) ReleaseReduction() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	c.reduceSem.Release(1)
}

// InFlight returns the number of reductions currently holding a slot.
func (c *Controller) InFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	// WaitN rejects requests above the burst size, so large writes are
	// split.
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := bytes
		if n > burst {
			n = burst
		}
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
