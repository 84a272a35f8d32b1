package ignore

import (
	"github.com/bethropolis/dirliner/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// IgnoreMatcher determines whether a file or directory should be ignored.
// It holds no mutable state after New returns and is safe for concurrent use.
type IgnoreMatcher struct {
	// .gitignore rules of the source tree, nil unless enabled
	repoIgnore gitignore.GitIgnore

	rootDir      string
	patterns     []compiledPattern
	useGitIgnore bool
	logger       utils.Logger
	disabled     bool
}

// compiledPattern is a normalized pattern prepared for matching
type compiledPattern struct {
	raw  string // as supplied, used in log messages
	glob string // lower-cased for case-insensitive matching
	base bool   // no separator: may match the last path segment alone
	tree string // for "dir/**" patterns, the glob for "dir" itself
}

// Config holds configuration options for the ignore matcher
type Config struct {
	RootDir   string
	Patterns  []string
	GitIgnore bool
	Logger    utils.Logger
	Disabled  bool
}
