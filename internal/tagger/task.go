package tagger

import "time"

type Status string

const (
	StatusPending Status = "pending"
	StatusSkipped Status = "skipped"
	StatusTagged  Status = "tagged"
	StatusFailed  Status = "failed"
)

// Reason classifies a terminal failure.
type Reason string

const (
	ReasonSuggestion Reason = "suggestion-error"
	ReasonValidation Reason = "validation-error"
	ReasonIntegrity  Reason = "integrity-error"
	ReasonRollback   Reason = "rollback-error"
	ReasonTimeout    Reason = "timeout"
)

// FileTask is the per-file unit of work. It is created when a run starts,
// moves through the pipeline, and is discarded when the run completes.
type FileTask struct {
	Path     string
	Status   Status
	Reason   Reason
	Err      error
	Tags     []string
	Existing []string
	Dropped  int
	Elapsed  time.Duration

	// RestoreFailed marks the one case where the rollback guarantee could
	// not be upheld and the file may be corrupted.
	RestoreFailed bool
}

// RunResult aggregates the outcome of one batch invocation. Tasks keep the
// input order of their paths.
type RunResult struct {
	Tasks    []FileTask
	Tagged   int
	Skipped  int
	Failed   int
	Duration time.Duration
}

func summarize(tasks []FileTask, duration time.Duration) RunResult {
	result := RunResult{Tasks: tasks, Duration: duration}
	for _, task := range tasks {
		switch task.Status {
		case StatusTagged:
			result.Tagged++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	return result
}
