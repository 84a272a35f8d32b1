// Package walker handles directory traversal and file flattening
package walker

import (
	"strings"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// Ignorer decides whether a path is excluded from the walk.
type Ignorer interface {
	ShouldIgnore(path string) bool
}

// ProcessedFile maps a copied source file to the flattened file written for it.
type ProcessedFile struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Stats counts what a walk did. TotalSize is the number of bytes copied.
type Stats struct {
	FilesProcessed       int64 `json:"filesProcessed"`
	DirectoriesProcessed int64 `json:"directoriesProcessed"`
	FilesIgnored         int64 `json:"filesIgnored"`
	DirectoriesIgnored   int64 `json:"directoriesIgnored"`
	TotalSize            int64 `json:"totalSize"`
	Collisions           int64 `json:"collisions"`
}

// Report is everything a walk produced, also when it stopped early.
type Report struct {
	Processed []ProcessedFile
	Stats     Stats
	Skipped   []SkippedItem
}

// CollisionPolicy decides what happens when two sources flatten to the same name.
type CollisionPolicy string

const (
	// CollisionOverwrite lets the file visited last win.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionError aborts the walk.
	CollisionError CollisionPolicy = "error"
)

// ParseCollisionPolicy converts a policy name; "" selects CollisionOverwrite.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionError:
		return CollisionError, nil
	default:
		return "", errors.Errorf("unknown collision policy %q (want %q or %q)", s, CollisionOverwrite, CollisionError)
	}
}

// SkippedReason clarifies why a file/directory was not processed.
type SkippedReason string

const (
	ReasonIgnoredRule       SkippedReason = "Ignored (Pattern Rule)"
	ReasonSkippedNotRegular SkippedReason = "Skipped (Not a Regular File)"
	ReasonSkippedTargetDir  SkippedReason = "Skipped (Target Directory)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker is a struct to track skipped items
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	out := make([]SkippedItem, len(st.items))
	copy(out, st.items)
	return out
}
