package walker

import (
	"path/filepath"
	"strings"
)

// FlattenName turns a path relative to the source root into a single file
// name: "./a/b/c.txt" and "a/b/c.txt" both become "a-b-c.txt".
// The mapping is lossy; "a/x.txt" and a top-level "a-x.txt" share a name.
func FlattenName(relativePath string) string {
	clean := strings.TrimPrefix(filepath.ToSlash(relativePath), "./")
	return strings.ReplaceAll(clean, "/", "-")
}
