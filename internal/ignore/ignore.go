// Package ignore provides file/directory pattern matching for exclusion
//
// Patterns come from an ignore file (default .dirlinerignore) and from the
// command line. They are normalized into a PatternSet and compiled into an
// IgnoreMatcher, whose ShouldIgnore predicate the walker consults for every
// entry. Matching is glob based (doublestar), case-insensitive, matches dot
// files, and lets separator-free patterns match a bare file name at any depth.
// Optionally the .gitignore files of the source tree are honoured as well.
package ignore

// NewFromConfig creates an IgnoreMatcher from a Config struct
func NewFromConfig(cfg Config) (*IgnoreMatcher, error) {
	options := []Option{
		WithGitIgnore(cfg.GitIgnore),
		WithDisabled(cfg.Disabled),
	}

	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}

	return New(cfg.RootDir, cfg.Patterns, options...)
}
