package engine

import (
	"context"
	"fmt"

	"github.com/hupe1980/minloc/reduce"
)

// Options contains configuration options for the executor.
type Options struct {
	// Workers is the number of pool goroutines. If <= 0, one per
	// available CPU.
	Workers int

	// MinChunk is the smallest per-chunk index range worth fanning out.
	// Ranges below Workers*MinChunk run as a single sequential fold.
	MinChunk int
}

// DefaultOptions contains the default configuration options for the executor.
var DefaultOptions = Options{
	Workers:  0,
	MinChunk: 2048,
}

// Executor runs fold functions over an index range, partitioned into
// contiguous chunks that execute on a fixed worker pool. Partial candidates
// merge through reduce.Combine in arrival order; the merged distance is
// independent of the partitioning, the winning index of an exact tie is not.
type Executor struct {
	pool     *WorkerPool
	minChunk int
}

// New creates a new executor and starts its worker pool.
func New(optFns ...func(o *Options)) *Executor {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MinChunk <= 0 {
		opts.MinChunk = DefaultOptions.MinChunk
	}

	return &Executor{
		pool:     NewWorkerPool(opts.Workers),
		minChunk: opts.MinChunk,
	}
}

// FoldFunc folds the index range [lo, hi) into a partial candidate,
// starting from the identity element. It must be a pure function of the
// range: the executor calls it from multiple goroutines.
type FoldFunc func(lo, hi int) (reduce.Candidate, error)

type partial struct {
	cand reduce.Candidate
	err  error
}

// Reduce folds [0, n) through fold and returns the fully merged candidate.
// n <= 0 yields the identity element. Each call starts from fresh
// identities; no state is carried between calls.
func (e *Executor) Reduce(ctx context.Context, n int, fold FoldFunc) (reduce.Candidate, error) {
	if n <= 0 {
		return reduce.Identity(), nil
	}
	if err := ctx.Err(); err != nil {
		return reduce.Identity(), err
	}

	chunks := e.pool.NumWorkers()
	if maxChunks := (n + e.minChunk - 1) / e.minChunk; chunks > maxChunks {
		chunks = maxChunks
	}
	if chunks <= 1 {
		return fold(0, n)
	}

	chunkSize := (n + chunks - 1) / chunks

	// Buffer sized to the chunk count so worker sends never block, even
	// when the collector bails out early.
	results := make(chan partial, chunks)

	submitted := 0
	for lo := 0; lo < n; lo += chunkSize {
		lo, hi := lo, min(lo+chunkSize, n)
		if err := e.pool.Submit(ctx, func() {
			cand, err := fold(lo, hi)
			results <- partial{cand: cand, err: err}
		}); err != nil {
			return reduce.Identity(), fmt.Errorf("submit chunk [%d, %d): %w", lo, hi, err)
		}
		submitted++
	}

	acc := reduce.Identity()
	var firstErr error
	for i := 0; i < submitted; i++ {
		select {
		case p := <-results:
			if p.err != nil {
				if firstErr == nil {
					firstErr = p.err
				}
				continue
			}
			acc = reduce.Combine(acc, p.cand)
		case <-ctx.Done():
			return reduce.Identity(), ctx.Err()
		}
	}
	if firstErr != nil {
		return reduce.Identity(), firstErr
	}
	return acc, nil
}

// Close shuts down the worker pool. The executor must not be used after
// Close.
func (e *Executor) Close() {
	e.pool.Close()
}
