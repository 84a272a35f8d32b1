package walker

import (
	"context"

	"github.com/bethropolis/dirliner/internal/utils"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger     utils.Logger
	Concurrent bool
	MaxWorkers int
	Context    context.Context
	ProgressFn ProgressCallback
	Collisions CollisionPolicy
}

// ProgressCallback receives a snapshot after every copied file.
// Calls are serialized, also in concurrent mode.
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	Stats
	CurrentFilePath string // source path of the file just copied, relative to the root
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:     utils.NoopLogger{},
		Concurrent: false,
		MaxWorkers: 10,
		Context:    context.Background(),
		Collisions: CollisionOverwrite,
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithConcurrency copies files on a worker pool. Traversal and ignore
// decisions stay on the calling goroutine.
func WithConcurrency(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.Concurrent = enabled
	}
}

// WithMaxWorkers sets the maximum number of concurrent copies
func WithMaxWorkers(workers int) Option {
	return func(opts *WalkOptions) {
		if workers > 0 {
			opts.MaxWorkers = workers
		}
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}

// WithCollisionPolicy sets how name collisions between sources are handled.
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(o *WalkOptions) {
		if policy != "" {
			o.Collisions = policy
		}
	}
}
