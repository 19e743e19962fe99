// Package tagger runs the per-file pipeline: snapshot, suggest, validate,
// mutate. Failures are captured per file and never abort sibling work.
package tagger

import (
	"context"
	"errors"
	"time"

	"github.com/sage-dev/sage/internal/fileutil"
	"github.com/sage-dev/sage/internal/mutate"
	"github.com/sage-dev/sage/internal/snapshot"
	"github.com/sage-dev/sage/internal/suggest"
	"github.com/sage-dev/sage/internal/tags"
)

type Options struct {
	Workers int
	Timeout time.Duration
	Force   bool

	TimeoutRetries int
	ErrorRetries   int
	RetryBackoff   time.Duration

	// IgnoreTags do not count toward the already-tagged skip check.
	IgnoreTags []string

	// OnResult, when set, is invoked once per completed task. Calls are
	// serialized.
	OnResult func(FileTask)
}

type Tagger struct {
	suggester suggest.Suggester
	opts      Options
	ignore    map[string]bool

	// apply is swapped in tests to induce mutation failures.
	apply func(*snapshot.Snapshot, []string) error
}

func New(suggester suggest.Suggester, opts Options) *Tagger {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 2 * time.Second
	}

	mutator := mutate.New()
	return &Tagger{
		suggester: suggester,
		opts:      opts,
		ignore:    fileutil.ToSet(opts.IgnoreTags),
		apply:     mutator.Append,
	}
}

// Process runs the full pipeline for one file and returns its terminal task.
func (t *Tagger) Process(ctx context.Context, path string) FileTask {
	start := time.Now()
	task := FileTask{Path: path, Status: StatusPending}

	snap, err := snapshot.Take(path)
	if err != nil {
		return t.fail(task, ReasonIntegrity, err, start)
	}

	existing := tags.Existing(snap.Content)
	task.Existing = existing
	if !t.opts.Force && t.hasRealTags(existing) {
		task.Status = StatusSkipped
		task.Elapsed = time.Since(start)
		return task
	}

	proposal, err := t.suggestWithRetry(ctx, snap.Content)
	if err != nil {
		return t.fail(task, suggestionReason(err), err, start)
	}

	kept, dropped := tags.Filter(proposal, existing)
	task.Dropped = len(dropped)
	if len(kept) == 0 {
		// Nothing new to add; the file is untouched but the run succeeded.
		task.Status = StatusTagged
		task.Elapsed = time.Since(start)
		return task
	}

	// The suggestion call can take a while; catch external edits that
	// happened in the meantime before writing anything.
	if err := snap.Verify(); err != nil {
		return t.fail(task, ReasonIntegrity, err, start)
	}

	if err := t.apply(snap, kept); err != nil {
		task = t.fail(task, ReasonRollback, err, start)
		var rollbackErr *mutate.RollbackError
		if errors.As(err, &rollbackErr) && !rollbackErr.Restored {
			task.RestoreFailed = true
		}
		return task
	}

	task.Status = StatusTagged
	task.Tags = kept
	task.Elapsed = time.Since(start)
	return task
}

// hasRealTags reports whether the file carries any tag outside the
// configured ignore list.
func (t *Tagger) hasRealTags(existing []string) bool {
	for _, tag := range existing {
		if !t.ignore[tag] {
			return true
		}
	}
	return false
}

func (t *Tagger) suggestWithRetry(ctx context.Context, content []byte) ([]string, error) {
	timeoutLeft := t.opts.TimeoutRetries
	errorLeft := t.opts.ErrorRetries

	for {
		callCtx, cancel := context.WithTimeout(ctx, t.opts.Timeout)
		proposal, err := t.suggester.Suggest(callCtx, content)
		cancel()
		if err == nil {
			return proposal, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var validationErr *tags.ValidationError
		if errors.As(err, &validationErr) {
			// A structurally malformed proposal will not get better on
			// retry.
			return nil, err
		}

		if errors.Is(err, context.DeadlineExceeded) {
			if timeoutLeft == 0 {
				return nil, err
			}
			timeoutLeft--
		} else {
			if errorLeft == 0 {
				return nil, err
			}
			errorLeft--
		}

		select {
		case <-time.After(t.opts.RetryBackoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (t *Tagger) fail(task FileTask, reason Reason, err error, start time.Time) FileTask {
	task.Status = StatusFailed
	task.Reason = reason
	task.Err = err
	task.Elapsed = time.Since(start)
	return task
}

func suggestionReason(err error) Reason {
	var validationErr *tags.ValidationError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &validationErr):
		return ReasonValidation
	default:
		return ReasonSuggestion
	}
}
