package walker

import (
	"io"
	"os"

	"github.com/bethropolis/dirliner/internal/utils"
	"gitlab.com/tozd/go/errors"
)

// copyJob is one file scheduled for copying. seq is its position in
// traversal order.
type copyJob struct {
	seq    int
	rel    string
	source string
	target string
	mode   os.FileMode
}

// copy performs job and records it as processed.
func (w *walk) copy(job copyJob) error {
	size, err := copyFile(job.source, job.target, job.mode)
	if err != nil {
		return errors.Errorf("walker: copying '%s' to '%s': %w", job.source, job.target, err)
	}

	w.mu.Lock()
	w.stats.FilesProcessed++
	w.stats.TotalSize += size
	w.processed = append(w.processed, sequencedFile{
		seq:  job.seq,
		file: ProcessedFile{Source: job.source, Target: job.target},
	})
	if w.opts.ProgressFn != nil {
		w.opts.ProgressFn(ProgressStats{Stats: w.stats, CurrentFilePath: job.rel})
	}
	w.mu.Unlock()

	w.log.Success("Copied %s → %s (%s)", job.source, job.target, utils.FormatSize(size))
	return nil
}

// dispatch queues job on the worker pool. A job whose target was claimed
// by an earlier job waits for it, so the later source still wins.
func (w *walk) dispatch(job copyJob) {
	prev := w.pending[job.target]
	done := make(chan struct{})
	w.pending[job.target] = done

	w.log.Debug("Walker Queueing: File [%s]", job.rel)
	w.group.Go(func() error {
		defer close(done)

		if prev != nil {
			select {
			case <-prev:
			case <-w.ctx.Done():
				return w.ctx.Err()
			}
		}
		if err := w.ctx.Err(); err != nil {
			return err
		}
		return w.copy(job)
	})
}

// copyFile writes the contents of src to dst, replacing dst if it exists.
// It returns the number of bytes written.
func copyFile(src, dst string, mode os.FileMode) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, errors.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	// owner-writable so a later run can overwrite the copy
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode|0o200)
	if err != nil {
		return 0, errors.Errorf("failed to create destination: %w", err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return n, errors.Errorf("failed to copy file contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return n, errors.Errorf("failed to close destination: %w", err)
	}
	return n, nil
}
