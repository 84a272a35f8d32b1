package ignore

import "github.com/bethropolis/dirliner/internal/utils"

// Option functions for configuration
type Option func(*IgnoreMatcher)

// WithGitIgnore makes the matcher honour .gitignore files found in the source tree.
func WithGitIgnore(enabled bool) Option {
	return func(m *IgnoreMatcher) {
		m.useGitIgnore = enabled
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *IgnoreMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDisabled turns the matcher into one that ignores nothing.
func WithDisabled(disabled bool) Option {
	return func(m *IgnoreMatcher) {
		m.disabled = disabled
	}
}
