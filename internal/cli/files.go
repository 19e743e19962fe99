package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sage-dev/sage/internal/scan"
)

func RunFiles(cmd *cobra.Command, args []string) error {
	flags, err := resolveRun(cmd)
	if err != nil {
		return err
	}

	markdown := make([]string, 0, len(args))
	for _, path := range args {
		if scan.IsMarkdown(path) {
			markdown = append(markdown, path)
		}
	}
	if len(markdown) == 0 {
		return fmt.Errorf("no markdown files found in the provided paths")
	}
	if skipped := len(args) - len(markdown); skipped > 0 && !flags.quiet && !flags.asJSON {
		printWarning(fmt.Sprintf("Skipped %d non-markdown files", skipped))
	}

	result := buildTagger(flags, progressPrinter(flags)).ProcessFiles(cmd.Context(), markdown)
	return printRunOutcome("files", "", false, result, flags)
}
