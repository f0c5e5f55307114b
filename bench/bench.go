package bench

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/minloc"
	"github.com/hupe1980/minloc/point"
)

// Options contains configuration options for a benchmark run.
type Options struct {
	// Repeats is the number of reductions each worker performs over the
	// same store. Defaults to 10.
	Repeats int

	// Concurrency is the number of workers reducing in parallel.
	// Defaults to 1, matching a plain repeat loop.
	Concurrency int

	// Logger receives per-iteration debug output.
	Logger *minloc.Logger
}

// DefaultOptions contains the default configuration options for a
// benchmark run.
var DefaultOptions = Options{
	Repeats:     10,
	Concurrency: 1,
}

// Report aggregates one benchmark run. Bytes processed per iteration are
// NumPoints x 3 coordinates x 8 bytes.
type Report struct {
	NumPoints   int
	Repeats     int
	Concurrency int
	Elapsed     time.Duration
	Result      minloc.Result
}

// Iterations returns the total number of reductions performed.
func (r Report) Iterations() int {
	return r.Repeats * r.Concurrency
}

// TimePerIteration returns the mean wall time of one reduction.
func (r Report) TimePerIteration() time.Duration {
	iters := r.Iterations()
	if iters == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(iters)
}

// ProblemSizeMB returns the dataset size in megabytes.
func (r Report) ProblemSizeMB() float64 {
	return 1.0e-6 * float64(r.NumPoints) * 3 * 8
}

// BandwidthGBps returns the achieved scan bandwidth in gigabytes per second.
func (r Report) BandwidthGBps() float64 {
	secs := r.Elapsed.Seconds()
	if secs == 0 {
		return 0
	}
	return 1.0e-9 * float64(r.NumPoints) * 3 * 8 * float64(r.Iterations()) / secs
}

// String renders the report as one header line and one data line.
func (r Report) String() string {
	return fmt.Sprintf(
		"#NumPoints Time(s) TimePerIter(s) ProblemSize(MB) Bandwidth(GB/s)\n%d %f %e %f %f\n",
		r.NumPoints,
		r.Elapsed.Seconds(),
		r.TimePerIteration().Seconds(),
		r.ProblemSizeMB(),
		r.BandwidthGBps(),
	)
}

// Run performs Repeats reductions per worker over the same store and query
// and reports aggregate throughput. The store is shared read-only by all
// workers; every iteration must produce the same minimum distance.
func Run(ctx context.Context, r *minloc.Reducer, store *point.Store, query point.Point, optFns ...func(o *Options)) (Report, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Repeats <= 0 {
		opts.Repeats = DefaultOptions.Repeats
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultOptions.Concurrency
	}
	if opts.Logger == nil {
		opts.Logger = minloc.NoopLogger()
	}

	results := make([]minloc.Result, opts.Concurrency)

	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()

	for w := 0; w < opts.Concurrency; w++ {
		w := w
		g.Go(func() error {
			var last minloc.Result
			for i := 0; i < opts.Repeats; i++ {
				res, err := r.Reduce(gctx, store, query)
				if err != nil {
					return fmt.Errorf("iteration %d: %w", i, err)
				}
				opts.Logger.DebugContext(gctx, "benchmark iteration",
					"iteration", i,
					"index", res.Index,
					"dist2", res.DistanceSquared,
				)
				last = res
			}
			results[w] = last
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	elapsed := time.Since(start)

	return Report{
		NumPoints:   store.Size(),
		Repeats:     opts.Repeats,
		Concurrency: opts.Concurrency,
		Elapsed:     elapsed,
		Result:      results[0],
	}, nil
}
