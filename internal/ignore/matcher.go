package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bethropolis/dirliner/internal/utils"
	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
	"gitlab.com/tozd/go/errors"
)

// New creates an IgnoreMatcher for paths under rootDir. Patterns are
// expected to be normalized already (see Normalize); invalid globs are
// logged and dropped.
func New(rootDir string, patterns []string, opts ...Option) (*IgnoreMatcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, errors.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &IgnoreMatcher{
		rootDir: absRootDir,
		logger:  utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(matcher)
	}

	if err := matcher.init(patterns); err != nil {
		return nil, err
	}

	return matcher, nil
}

func (m *IgnoreMatcher) init(patterns []string) error {
	m.logger.Debug("ignore.New: Initializing for root: %s", m.rootDir)

	if m.disabled {
		m.logger.Debug("ignore.New: Matcher is disabled, no rules loaded")
		return nil
	}

	for _, p := range patterns {
		cp, ok := compile(p)
		if !ok {
			m.logger.Warn("Skipping invalid ignore pattern %q", p)
			continue
		}
		m.patterns = append(m.patterns, cp)
	}
	m.logger.Debug("ignore.New: %d pattern(s) compiled", len(m.patterns))

	if !m.useGitIgnore {
		return nil
	}

	repoMatcher, repoErr := gitignore.NewRepository(m.rootDir)
	if repoErr != nil {
		if repoMatcher == nil {
			m.logger.Warn("ignore.New: No .gitignore rules loaded for '%s': %v", m.rootDir, repoErr)
			return nil
		}
		return errors.Errorf("ignore: failed to load repository ignores: %w", repoErr)
	}
	m.repoIgnore = repoMatcher
	m.logger.Debug("ignore.New: Loaded .gitignore rules below %s", m.rootDir)

	return nil
}

func compile(pattern string) (compiledPattern, bool) {
	if pattern == "" {
		return compiledPattern{}, false
	}

	glob := strings.ToLower(pattern)
	if !doublestar.ValidatePattern(glob) {
		return compiledPattern{}, false
	}

	cp := compiledPattern{
		raw:  pattern,
		glob: glob,
		base: !strings.Contains(glob, "/"),
	}
	if dir, ok := strings.CutSuffix(glob, "/**"); ok && dir != "" {
		cp.tree = dir
	}
	return cp, true
}

// Patterns returns the compiled patterns in their original spelling.
func (m *IgnoreMatcher) Patterns() []string {
	out := make([]string, 0, len(m.patterns))
	for _, p := range m.patterns {
		out = append(out, p.raw)
	}
	return out
}

// RootDir returns the absolute directory paths are matched relative to.
func (m *IgnoreMatcher) RootDir() string {
	return m.rootDir
}

// Predicate exposes ShouldIgnore as a plain function.
func (m *IgnoreMatcher) Predicate() func(path string) bool {
	return m.ShouldIgnore
}
