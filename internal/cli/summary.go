package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sage-dev/sage/internal/fileutil"
	"github.com/sage-dev/sage/internal/tagger"
)

const maxDisplayedErrors = 5

type FileReport struct {
	File          string   `json:"file"`
	Status        string   `json:"status"`
	Reason        string   `json:"reason,omitempty"`
	Error         string   `json:"error,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	ExistingTags  []string `json:"existing_tags,omitempty"`
	Dropped       int      `json:"dropped,omitempty"`
	RestoreFailed bool     `json:"restore_failed,omitempty"`
	DurationMS    int64    `json:"duration_ms"`
}

type RunReport struct {
	Mode       string       `json:"mode"`
	Directory  string       `json:"directory,omitempty"`
	Recursive  bool         `json:"recursive,omitempty"`
	TotalFiles int          `json:"total_files"`
	Tagged     int          `json:"tagged"`
	Skipped    int          `json:"skipped"`
	Failed     int          `json:"failed"`
	DurationMS int64        `json:"duration_ms"`
	Files      []FileReport `json:"files"`
}

func newFileReport(task tagger.FileTask) FileReport {
	report := FileReport{
		File:          task.Path,
		Status:        string(task.Status),
		Reason:        string(task.Reason),
		Tags:          task.Tags,
		ExistingTags:  task.Existing,
		Dropped:       task.Dropped,
		RestoreFailed: task.RestoreFailed,
		DurationMS:    task.Elapsed.Milliseconds(),
	}
	if task.Err != nil {
		report.Error = task.Err.Error()
	}
	return report
}

func newRunReport(mode, directory string, recursive bool, result tagger.RunResult) RunReport {
	report := RunReport{
		Mode:       mode,
		Directory:  directory,
		Recursive:  recursive,
		TotalFiles: len(result.Tasks),
		Tagged:     result.Tagged,
		Skipped:    result.Skipped,
		Failed:     result.Failed,
		DurationMS: result.Duration.Milliseconds(),
		Files:      make([]FileReport, 0, len(result.Tasks)),
	}
	for _, task := range result.Tasks {
		report.Files = append(report.Files, newFileReport(task))
	}
	return report
}

// printResult emits one progress line per completed task.
func printResult(task tagger.FileTask) {
	name := filepath.Base(task.Path)
	switch task.Status {
	case tagger.StatusTagged:
		if len(task.Tags) > 0 {
			printSuccess(fmt.Sprintf("Tagged %s with: %s", name, strings.Join(task.Tags, ", ")))
		} else {
			printInfo(fmt.Sprintf("No new tags added to %s", name))
		}
	case tagger.StatusSkipped:
		printInfo(fmt.Sprintf("Skipped %s (already tagged: %s)", name, strings.Join(task.Existing, ", ")))
	case tagger.StatusFailed:
		printError(fmt.Sprintf("Failed %s: %v", name, task.Err))
	}
}

// printRunOutcome reports the batch result and returns a non-nil error when
// any file failed, so the process exits non-zero.
func printRunOutcome(mode, directory string, recursive bool, result tagger.RunResult, flags runFlags) error {
	report := newRunReport(mode, directory, recursive, result)

	if flags.asJSON {
		if err := fileutil.PrintJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		printTextSummary(report, result)
	}

	// Restore failures mean the safety guarantee could not be upheld;
	// always surface them, regardless of output mode.
	for _, task := range result.Tasks {
		if task.RestoreFailed {
			printWarning(fmt.Sprintf("restore failed for %s; the file may be corrupted: %v", task.Path, task.Err))
		}
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", result.Failed, len(result.Tasks))
	}
	return nil
}

func printTextSummary(report RunReport, result tagger.RunResult) {
	printInfo(fmt.Sprintf("Processed %d files in %.2fs", report.TotalFiles, result.Duration.Seconds()))
	printSuccess(fmt.Sprintf("Tagged: %d", report.Tagged))
	if report.Skipped > 0 {
		printInfo(fmt.Sprintf("Skipped: %d", report.Skipped))
	}
	if report.Failed == 0 {
		return
	}

	printError(fmt.Sprintf("Failed: %d", report.Failed))
	shown := 0
	for _, task := range result.Tasks {
		if task.Status != tagger.StatusFailed {
			continue
		}
		if shown == maxDisplayedErrors {
			printError(fmt.Sprintf("  ... and %d more errors", report.Failed-shown))
			break
		}
		printError(fmt.Sprintf("  %s: %s", filepath.Base(task.Path), fileutil.TruncateText(fmt.Sprint(task.Err), 60)))
		shown++
	}
}
