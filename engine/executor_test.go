package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/minloc/point"
	"github.com/hupe1980/minloc/reduce"
	"github.com/hupe1980/minloc/testutil"
)

func TestExecutorReduceEmpty(t *testing.T) {
	e := New()
	defer e.Close()

	got, err := e.Reduce(context.Background(), 0, func(lo, hi int) (reduce.Candidate, error) {
		t.Fatal("fold must not be called for n == 0")
		return reduce.Identity(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, reduce.Identity(), got)
}

func TestExecutorReduceMatchesSequential(t *testing.T) {
	rng := testutil.NewRNG(42)
	store := point.NewStore(rng.GridPoints(10_000))
	query := rng.GridPoint()

	want, err := reduce.FoldRange(store, query, 0, store.Size(), reduce.Identity())
	require.NoError(t, err)

	fold := func(lo, hi int) (reduce.Candidate, error) {
		return reduce.FoldRange(store, query, lo, hi, reduce.Identity())
	}

	tests := []struct {
		name     string
		workers  int
		minChunk int
	}{
		{"SingleWorker", 1, 1},
		{"TwoWorkers", 2, 1},
		{"ManyWorkers", 16, 1},
		{"DefaultChunking", 0, 2048},
		{"ChunkLargerThanInput", 4, 1 << 20},
		{"TinyChunks", 8, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(func(o *Options) {
				o.Workers = tt.workers
				o.MinChunk = tt.minChunk
			})
			defer e.Close()

			got, err := e.Reduce(context.Background(), store.Size(), fold)
			require.NoError(t, err)
			assert.Equal(t, want.Dist, got.Dist)
			assert.Equal(t, want.Index, got.Index)
		})
	}
}

func TestExecutorReduceRepeatable(t *testing.T) {
	rng := testutil.NewRNG(7)
	store := point.NewStore(rng.GridPoints(50_000))
	query := rng.GridPoint()

	e := New(func(o *Options) {
		o.Workers = 8
		o.MinChunk = 128
	})
	defer e.Close()

	fold := func(lo, hi int) (reduce.Candidate, error) {
		return reduce.FoldRange(store, query, lo, hi, reduce.Identity())
	}

	first, err := e.Reduce(context.Background(), store.Size(), fold)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		got, err := e.Reduce(context.Background(), store.Size(), fold)
		require.NoError(t, err)
		assert.Equal(t, first.Dist, got.Dist)
	}
}

func TestExecutorReduceCoversAllIndices(t *testing.T) {
	const n = 12_345

	e := New(func(o *Options) {
		o.Workers = 4
		o.MinChunk = 100
	})
	defer e.Close()

	var covered atomic.Int64
	_, err := e.Reduce(context.Background(), n, func(lo, hi int) (reduce.Candidate, error) {
		covered.Add(int64(hi - lo))
		return reduce.Identity(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(n), covered.Load())
}

func TestExecutorReduceError(t *testing.T) {
	e := New(func(o *Options) {
		o.Workers = 4
		o.MinChunk = 1
	})
	defer e.Close()

	boom := errors.New("boom")

	got, err := e.Reduce(context.Background(), 1000, func(lo, hi int) (reduce.Candidate, error) {
		if lo == 0 {
			return reduce.Identity(), boom
		}
		return reduce.Candidate{Dist: 1, Index: lo}, nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, reduce.Identity(), got)
}

func TestExecutorReduceCancelledContext(t *testing.T) {
	e := New()
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Reduce(ctx, 100, func(lo, hi int) (reduce.Candidate, error) {
		return reduce.Identity(), nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutorReduceAfterClose(t *testing.T) {
	e := New(func(o *Options) {
		o.Workers = 2
		o.MinChunk = 1
	})
	e.Close()

	_, err := e.Reduce(context.Background(), 1000, func(lo, hi int) (reduce.Candidate, error) {
		return reduce.Identity(), nil
	})
	assert.ErrorIs(t, err, ErrPoolClosed)
}
