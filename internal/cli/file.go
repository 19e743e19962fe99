package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sage-dev/sage/internal/fileutil"
	"github.com/sage-dev/sage/internal/scan"
	"github.com/sage-dev/sage/internal/tagger"
)

func RunFile(cmd *cobra.Command, args []string) error {
	flags, err := resolveRun(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if !scan.IsMarkdown(path) {
		return fmt.Errorf("file must be a markdown file (.md): %s", path)
	}

	task := buildTagger(flags, nil).Process(cmd.Context(), path)

	if flags.asJSON {
		if err := fileutil.PrintJSON(os.Stdout, newFileReport(task)); err != nil {
			return err
		}
	} else if !flags.quiet || task.Status == tagger.StatusFailed {
		printResult(task)
	}
	if task.RestoreFailed {
		printWarning(fmt.Sprintf("restore failed for %s; the file may be corrupted: %v", task.Path, task.Err))
	}

	if task.Status == tagger.StatusFailed {
		return fmt.Errorf("failed to tag %s: %w", path, task.Err)
	}
	return nil
}
