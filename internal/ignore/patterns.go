package ignore

import (
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// DefaultIgnoreFile is the ignore file looked up when none is configured.
const DefaultIgnoreFile = ".dirlinerignore"

// PatternSet is an insertion-ordered set of normalized patterns.
type PatternSet struct {
	patterns []string
	seen     map[string]struct{}
}

// NewPatternSet returns an empty PatternSet.
func NewPatternSet() *PatternSet {
	return &PatternSet{seen: make(map[string]struct{})}
}

// Add inserts p unless it is empty or already present. It reports whether p was added.
func (s *PatternSet) Add(p string) bool {
	if p == "" {
		return false
	}
	if _, ok := s.seen[p]; ok {
		return false
	}
	s.seen[p] = struct{}{}
	s.patterns = append(s.patterns, p)
	return true
}

// Contains reports whether p is in the set.
func (s *PatternSet) Contains(p string) bool {
	_, ok := s.seen[p]
	return ok
}

// Len returns the number of patterns.
func (s *PatternSet) Len() int {
	return len(s.patterns)
}

// Patterns returns the patterns in insertion order.
func (s *PatternSet) Patterns() []string {
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Normalize prepares a raw pattern for matching. It returns "" for blank
// lines, comments and negations, which never become patterns. A trailing
// "/" is expanded to "/**" so the pattern covers everything under the
// directory as well as the directory itself.
func Normalize(pattern string) string {
	normalized := strings.TrimSpace(pattern)

	if normalized == "" || strings.HasPrefix(normalized, "#") {
		return ""
	}

	// negations cannot re-include a path
	if strings.HasPrefix(normalized, "!") {
		return ""
	}

	if strings.HasSuffix(normalized, "/") {
		normalized += "**"
	}

	return normalized
}

// BuildPatternSet combines the patterns of ignoreFile (first) with the
// explicit patterns. A missing ignore file contributes nothing; one that
// exists but cannot be read is an error.
func BuildPatternSet(explicit []string, ignoreFile string) (*PatternSet, error) {
	set := NewPatternSet()

	if ignoreFile != "" {
		lines, err := readIgnoreFile(ignoreFile)
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			set.Add(Normalize(line))
		}
	}

	for _, p := range explicit {
		set.Add(Normalize(p))
	}

	return set, nil
}

func readIgnoreFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Errorf("reading ignore file %q: %w", path, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n"), nil
}
