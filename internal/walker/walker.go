package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bethropolis/dirliner/internal/utils"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// Walk flattens the tree under sourceRoot into targetRoot. Every entry is
// checked against matcher; ignored directories are never opened and ignored
// files never read. Each remaining regular file is copied to
// targetRoot/FlattenName(rel).
//
// The first filesystem error aborts the walk. The returned Report holds
// whatever was done up to that point.
func Walk(sourceRoot, targetRoot string, matcher Ignorer, opts ...Option) (Report, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absSource, err := filepath.Abs(sourceRoot)
	if err != nil {
		return Report{}, errors.Errorf("walker: failed to get absolute path for '%s': %w", sourceRoot, err)
	}
	absTarget, err := filepath.Abs(targetRoot)
	if err != nil {
		return Report{}, errors.Errorf("walker: failed to get absolute path for '%s': %w", targetRoot, err)
	}

	w := &walk{
		source:   absSource,
		target:   absTarget,
		matcher:  matcher,
		opts:     options,
		log:      options.Logger,
		ctx:      options.Context,
		tracker:  NewSkippedTracker(100),
		targets:  make(map[string]string),
		pending:  make(map[string]chan struct{}),
		madeDirs: make(map[string]struct{}),
	}

	w.log.Debug("walker.Walk started. Source: %s, Target: %s, Concurrent: %v, Workers: %d",
		absSource, absTarget, options.Concurrent, options.MaxWorkers)

	err = w.run()
	return w.report(), err
}

// walk is the state of a single Walk call. Traversal fields are only
// touched by the walking goroutine; mu guards what copy workers share.
type walk struct {
	source  string
	target  string
	matcher Ignorer
	opts    WalkOptions
	log     utils.Logger
	ctx     context.Context
	group   *errgroup.Group
	tracker *SkippedTracker

	targets  map[string]string        // target -> source that claimed it
	pending  map[string]chan struct{} // target -> last queued copy
	madeDirs map[string]struct{}
	seq      int

	mu        sync.Mutex
	stats     Stats
	processed []sequencedFile
}

type sequencedFile struct {
	seq  int
	file ProcessedFile
}

// frame is one open directory on the traversal stack.
type frame struct {
	dir     string
	entries []os.DirEntry
	next    int
}

func (w *walk) run() error {
	info, err := os.Stat(w.source)
	if err != nil {
		return errors.Errorf("walker: cannot access source directory '%s': %w", w.source, err)
	}
	if !info.IsDir() {
		return errors.Errorf("walker: source '%s' is not a directory", w.source)
	}

	if w.ignored(w.source) {
		w.log.Warn("Ignoring directory: %s", w.source)
		w.count(func(s *Stats) { s.DirectoriesIgnored++ })
		return nil
	}

	if w.opts.Concurrent {
		g, gctx := errgroup.WithContext(w.ctx)
		g.SetLimit(w.opts.MaxWorkers)
		w.group, w.ctx = g, gctx
	}

	err = w.traverse()

	if w.group != nil {
		w.log.Debug("Walker: Waiting for copy workers to complete...")
		if gerr := w.group.Wait(); gerr != nil && (err == nil || errors.Is(err, context.Canceled)) {
			err = gerr
		}
	}
	return err
}

// traverse visits the tree depth-first with an explicit stack. A
// subdirectory is finished before its next sibling is looked at, so the
// visiting order is the same as plain recursion.
func (w *walk) traverse() error {
	var stack []*frame

	enter := func(dir string) error {
		w.count(func(s *Stats) { s.DirectoriesProcessed++ })
		w.log.Info("Processing directory: %s", dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			return errors.Errorf("walker: reading directory '%s': %w", dir, err)
		}
		stack = append(stack, &frame{dir: dir, entries: entries})
		return nil
	}

	if err := enter(w.source); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		if err := w.ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(top.dir, entry.Name())

		// the target may live inside the source, e.g. "./" -> "./output"
		if path == w.target {
			w.log.Debug("Walker: Skipping target directory %q", path)
			w.tracker.Track(w.rel(path), ReasonSkippedTargetDir, true)
			continue
		}

		if w.ignored(path) {
			w.skipIgnored(path, entry)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return errors.Errorf("walker: stat '%s': %w", path, err)
		}

		switch {
		case info.IsDir():
			if err := enter(path); err != nil {
				return err
			}
		case !info.Mode().IsRegular():
			w.log.Debug("Walker: Skipping %q: not a regular file", path)
			w.tracker.Track(w.rel(path), ReasonSkippedNotRegular, false)
		default:
			if err := w.processFile(path, info); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walk) ignored(path string) bool {
	return w.matcher != nil && w.matcher.ShouldIgnore(path)
}

// skipIgnored records an ignored entry. Symlinks are classified by their target.
func (w *walk) skipIgnored(path string, entry fs.DirEntry) {
	isDir := entry.IsDir()
	if entry.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil {
			isDir = info.IsDir()
		}
	}

	w.tracker.Track(w.rel(path), ReasonIgnoredRule, isDir)
	if isDir {
		w.log.Warn("Ignoring directory: %s", path)
		w.count(func(s *Stats) { s.DirectoriesIgnored++ })
		return
	}
	w.log.Warn("Ignoring file: %s", path)
	w.count(func(s *Stats) { s.FilesIgnored++ })
}

// processFile claims the flattened name for path and copies it, inline or
// on the worker pool.
func (w *walk) processFile(path string, info os.FileInfo) error {
	rel := w.rel(path)
	name := FlattenName(rel)
	target := filepath.Join(w.target, name)

	if prev, taken := w.targets[target]; taken {
		w.count(func(s *Stats) { s.Collisions++ })
		if w.opts.Collisions == CollisionError {
			return errors.Errorf("walker: '%s' and '%s' both flatten to '%s'", prev, path, name)
		}
		w.log.Warn("%s overwrites %s (both flatten to %s)", path, prev, name)
	}
	w.targets[target] = path

	if err := w.ensureDir(filepath.Dir(target)); err != nil {
		return err
	}

	job := copyJob{
		seq:    w.seq,
		rel:    rel,
		source: path,
		target: target,
		mode:   info.Mode().Perm(),
	}
	w.seq++

	if w.group == nil {
		return w.copy(job)
	}
	w.dispatch(job)
	return nil
}

func (w *walk) ensureDir(dir string) error {
	if _, ok := w.madeDirs[dir]; ok {
		return nil
	}

	_, statErr := os.Stat(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("walker: creating directory '%s': %w", dir, err)
	}
	if errors.Is(statErr, fs.ErrNotExist) {
		w.log.Info("Created directory: %s", dir)
	}

	w.madeDirs[dir] = struct{}{}
	return nil
}

func (w *walk) rel(path string) string {
	rel, err := filepath.Rel(w.source, path)
	if err != nil {
		return path
	}
	return rel
}

func (w *walk) count(update func(*Stats)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	update(&w.stats)
}

func (w *walk) report() Report {
	w.mu.Lock()
	defer w.mu.Unlock()

	sort.SliceStable(w.processed, func(i, j int) bool {
		return w.processed[i].seq < w.processed[j].seq
	})
	processed := make([]ProcessedFile, 0, len(w.processed))
	for _, p := range w.processed {
		processed = append(processed, p.file)
	}

	return Report{
		Processed: processed,
		Stats:     w.stats,
		Skipped:   w.tracker.Items(),
	}
}
