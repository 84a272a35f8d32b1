package ignore

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ShouldIgnore reports whether path, a file or directory inside the root,
// matches an ignore rule. Directories are also ignored when one of their
// ancestors relative to the root matches. Paths that no longer exist are
// never ignored.
func (m *IgnoreMatcher) ShouldIgnore(candidate string) bool {
	if m == nil || m.disabled {
		return false
	}

	absPath, rel, ok := m.relative(candidate)
	if !ok {
		return false
	}

	if p, hit := m.match(rel); hit {
		m.logger.Debug("ignore.ShouldIgnore: %q matched pattern %q", rel, p)
		return true
	}

	info, err := os.Stat(absPath)
	if err != nil {
		m.logger.Debug("ignore.ShouldIgnore: cannot stat %q, not ignoring: %v", rel, err)
		return false
	}

	if m.gitIgnored(rel, info.IsDir()) {
		m.logger.Debug("ignore.ShouldIgnore: %q ignored by .gitignore rules", rel)
		return true
	}

	if !info.IsDir() {
		return false
	}

	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		if p, hit := m.match(prefix); hit {
			m.logger.Debug("ignore.ShouldIgnore: %q ignored, ancestor %q matched %q", rel, prefix, p)
			return true
		}
	}

	return false
}

// relative resolves candidate against the root. The root itself and paths
// outside it are reported as not ok.
func (m *IgnoreMatcher) relative(candidate string) (string, string, bool) {
	absPath, err := filepath.Abs(candidate)
	if err != nil {
		return "", "", false
	}
	rel, err := filepath.Rel(m.rootDir, absPath)
	if err != nil {
		return "", "", false
	}

	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", "", false
	}
	return absPath, rel, true
}

// match tests a slash-separated relative path against every pattern and
// returns the first pattern that matched.
func (m *IgnoreMatcher) match(rel string) (string, bool) {
	name := strings.ToLower(rel)
	base := path.Base(name)

	for _, p := range m.patterns {
		if doublestar.MatchUnvalidated(p.glob, name) {
			return p.raw, true
		}
		if p.base && doublestar.MatchUnvalidated(p.glob, base) {
			return p.raw, true
		}
		if p.tree != "" && doublestar.MatchUnvalidated(p.tree, name) {
			return p.raw, true
		}
	}
	return "", false
}

func (m *IgnoreMatcher) gitIgnored(rel string, isDir bool) (ignored bool) {
	if m.repoIgnore == nil {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("PANIC recovered in gitignore library for path %q: %v", rel, r)
			ignored = false
		}
	}()

	match := m.repoIgnore.Relative(rel, isDir)
	return match != nil && match.Ignore()
}
