// Package setup provides initialization and configuration functions
package setup

import (
	"context"

	"github.com/bethropolis/dirliner/internal/ignore"
	"github.com/bethropolis/dirliner/internal/utils"
	"github.com/bethropolis/dirliner/internal/walker"
	"gitlab.com/tozd/go/errors"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a flattening walk
type WalkerConfig struct {
	SourceDir   string
	Patterns    []string
	IgnoreFile  string
	GitIgnore   bool
	Concurrent  bool
	MaxWorkers  int
	OnCollision string
	Progress    walker.ProgressCallback
	Context     context.Context

	// Logger receives the core's verbose output; nil keeps it silent.
	Logger utils.Logger
}

// ConfigureWalker builds the pattern set, the ignore matcher and the walker
// options described by cfg.
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (
	*ignore.IgnoreMatcher,
	[]walker.Option,
	error,
) {
	logger := cfg.Logger
	if logger == nil {
		logger = utils.NoopLogger{}
	}
	if infoLog == nil {
		infoLog = func(string, ...interface{}) {}
	}

	// --- Build the pattern set ---
	patterns, err := ignore.BuildPatternSet(cfg.Patterns, cfg.IgnoreFile)
	if err != nil {
		return nil, nil, err
	}
	if patterns.Len() > 0 {
		infoLog("Using %d ignore pattern(s): %v", patterns.Len(), patterns.Patterns())
	} else {
		infoLog("No ignore patterns configured.")
	}

	policy, err := walker.ParseCollisionPolicy(cfg.OnCollision)
	if err != nil {
		return nil, nil, err
	}

	// --- Initialize ignore matcher ---
	matcher, err := ignore.NewFromConfig(ignore.Config{
		RootDir:   cfg.SourceDir,
		Patterns:  patterns.Patterns(),
		GitIgnore: cfg.GitIgnore,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, errors.Errorf("error initializing ignore rules: %w", err)
	}
	if cfg.GitIgnore {
		infoLog("Honouring .gitignore files below %s.", matcher.RootDir())
	}

	// --- Set up walk options ---
	walkOptions := []walker.Option{
		walker.WithLogger(logger),
		walker.WithConcurrency(cfg.Concurrent),
		walker.WithMaxWorkers(cfg.MaxWorkers),
		walker.WithCollisionPolicy(policy),
	}
	if cfg.Concurrent {
		infoLog("Using concurrent copying with %d workers.", cfg.MaxWorkers)
	}
	if cfg.Progress != nil {
		walkOptions = append(walkOptions, walker.WithProgress(cfg.Progress))
	}
	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return matcher, walkOptions, nil
}
