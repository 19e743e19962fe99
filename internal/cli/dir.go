package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RunDir(cmd *cobra.Command, args []string) error {
	flags, err := resolveRun(cmd)
	if err != nil {
		return err
	}
	recursive, err := cmd.Flags().GetBool("recursive")
	if err != nil {
		return fmt.Errorf("failed to read --recursive flag: %w", err)
	}

	directory := args[0]
	result, err := buildTagger(flags, progressPrinter(flags)).ProcessDirectory(cmd.Context(), directory, recursive)
	if err != nil {
		return err
	}

	if len(result.Tasks) == 0 && !flags.asJSON {
		printInfo(fmt.Sprintf("No markdown files found in %s", directory))
		return nil
	}
	return printRunOutcome("dir", directory, recursive, result, flags)
}
