package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sage",
		Short: "Intelligent semantic tagging for markdown files",
		Long: `Sage analyzes markdown content with an external AI agent and appends
relevant [[tag]] lines to each file. Every write is verified against a
pre-run snapshot and rolled back on any mismatch, so a file is never
left half-tagged.`,
		SilenceUsage: true,
	}

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Tag a single markdown file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunFile,
	}
	addCommonFlags(fileCmd)

	filesCmd := &cobra.Command{
		Use:   "files <path>...",
		Short: "Tag multiple markdown files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  RunFiles,
	}
	addCommonFlags(filesCmd)
	addBatchFlags(filesCmd)

	dirCmd := &cobra.Command{
		Use:   "dir <directory>",
		Short: "Tag all markdown files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE:  RunDir,
	}
	addCommonFlags(dirCmd)
	addBatchFlags(dirCmd)
	dirCmd.Flags().BoolP("recursive", "r", false, "Process subdirectories recursively")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sage %s\n", version)
		},
	}

	rootCmd.AddCommand(fileCmd, filesCmd, dirCmd, versionCmd)

	return rootCmd
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Force retag even if already tagged")
	cmd.Flags().Bool("quiet", false, "Suppress per-file progress lines")
	cmd.Flags().Bool("json", false, "Output results as JSON")
	cmd.Flags().Int("timeout", 0, "Timeout in seconds for suggestion calls")
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("concurrent", true, "Process files concurrently")
	cmd.Flags().Int("workers", 0, "Number of concurrent workers")
}
