package minloc

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/minloc/engine"
	"github.com/hupe1980/minloc/point"
	"github.com/hupe1980/minloc/reduce"
	"github.com/hupe1980/minloc/resource"
)

// Result is the outcome of one reduction pass. When Found is false the
// store held no points and the other fields are zero.
type Result struct {
	// DistanceSquared is the smallest squared distance to the query.
	DistanceSquared float64

	// Index identifies the point achieving DistanceSquared. If several
	// points tie exactly, any one of their indices may be reported.
	Index int

	// Found is false for an empty store.
	Found bool
}

// Reducer computes minimum-with-index reductions over point stores.
// A Reducer is stateless between calls apart from its worker pool and is
// safe for concurrent use.
type Reducer struct {
	exec        *engine.Executor
	ownExecutor bool
	controller  *resource.Controller
	logger      *Logger
}

// New creates a new Reducer.
func New(optFns ...Option) *Reducer {
	opts := applyOptions(optFns)

	return &Reducer{
		exec:        opts.executor,
		ownExecutor: opts.ownExecutor,
		controller:  opts.controller,
		logger:      opts.logger,
	}
}

// Reduce returns the point of store nearest to query. The store is only
// read; repeated calls against the same store are independent. An empty
// store yields Result{Found: false} and no error.
func (r *Reducer) Reduce(ctx context.Context, store *point.Store, query point.Point) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !query.Finite() {
		return Result{}, fmt.Errorf("%w: query (%g, %g, %g)", ErrInvalidCoordinate, query.X, query.Y, query.Z)
	}

	n := store.Size()
	if n == 0 {
		return Result{}, nil
	}

	if r.controller != nil {
		if err := r.controller.AcquireReduction(ctx); err != nil {
			return Result{}, err
		}
		defer r.controller.ReleaseReduction()
	}

	start := time.Now()
	cand, err := r.exec.Reduce(ctx, n, func(lo, hi int) (reduce.Candidate, error) {
		return reduce.FoldRange(store, query, lo, hi, reduce.Identity())
	})
	if err != nil {
		err = translateError(err)
		r.logger.LogReduce(ctx, n, Result{}, time.Since(start), err)
		return Result{}, err
	}

	res := Result{
		DistanceSquared: cand.Dist,
		Index:           cand.Index,
		Found:           cand.Index != reduce.NoIndex,
	}
	r.logger.LogReduce(ctx, n, res, time.Since(start), nil)
	return res, nil
}

// Close releases the worker pool. Reducers built around an external
// executor (WithExecutor) leave it running.
func (r *Reducer) Close() {
	if r.ownExecutor {
		r.exec.Close()
	}
}

// Nearest is a one-shot convenience around New and Reduce.
func Nearest(ctx context.Context, store *point.Store, query point.Point, optFns ...Option) (Result, error) {
	r := New(optFns...)
	defer r.Close()

	return r.Reduce(ctx, store, query)
}
