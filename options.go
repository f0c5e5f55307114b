package minloc

import (
	"log/slog"

	"github.com/hupe1980/minloc/engine"
	"github.com/hupe1980/minloc/resource"
)

type options struct {
	executor    *engine.Executor
	engineOpts  []func(o *engine.Options)
	controller  *resource.Controller
	logger      *Logger
	ownExecutor bool
}

// Option configures Reducer construction.
type Option func(*options)

// WithWorkers configures the number of pool workers used to partition the
// index range. If n <= 0, one worker per available CPU is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, func(eo *engine.Options) {
			eo.Workers = n
		})
	}
}

// WithMinChunk configures the smallest per-chunk index range worth fanning
// out. Stores smaller than workers*minChunk are folded sequentially.
func WithMinChunk(n int) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, func(eo *engine.Options) {
			eo.MinChunk = n
		})
	}
}

// WithExecutor configures an externally owned executor. The reducer will
// not close it.
func WithExecutor(e *engine.Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// WithResourceController configures a controller bounding concurrent
// reductions. Pass nil to disable (the default).
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithLogger configures structured logging for operations.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.executor == nil {
		o.executor = engine.New(o.engineOpts...)
		o.ownExecutor = true
	}
	return o
}
