package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sage-dev/sage/internal/config"
	"github.com/sage-dev/sage/internal/suggest"
	"github.com/sage-dev/sage/internal/tagger"
)

// newSuggester builds the production suggestion client; tests swap it for a
// stub with fixed responses.
var newSuggester = func(cfg config.Config) suggest.Suggester {
	return suggest.NewCLIClient(cfg.Command, cfg.Args)
}

type runFlags struct {
	cfg    config.Config
	force  bool
	quiet  bool
	asJSON bool
}

// resolveRun loads .sage.yaml from the working directory and applies flag
// overrides on top.
func resolveRun(cmd *cobra.Command) (runFlags, error) {
	wd, err := os.Getwd()
	if err != nil {
		return runFlags{}, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return runFlags{}, err
	}

	if cmd.Flags().Changed("timeout") {
		seconds, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return runFlags{}, fmt.Errorf("failed to read --timeout flag: %w", err)
		}
		cfg.TimeoutSeconds = seconds
	}
	if cmd.Flags().Changed("workers") {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return runFlags{}, fmt.Errorf("failed to read --workers flag: %w", err)
		}
		cfg.Workers = workers
	}
	if cmd.Flags().Lookup("concurrent") != nil {
		concurrent, err := cmd.Flags().GetBool("concurrent")
		if err != nil {
			return runFlags{}, fmt.Errorf("failed to read --concurrent flag: %w", err)
		}
		if !concurrent {
			cfg.Workers = 1
		}
	}

	if err := cfg.Validate(); err != nil {
		return runFlags{}, fmt.Errorf("invalid configuration: %w", err)
	}

	flags := runFlags{cfg: cfg}
	if flags.force, err = cmd.Flags().GetBool("force"); err != nil {
		return runFlags{}, fmt.Errorf("failed to read --force flag: %w", err)
	}
	if flags.quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return runFlags{}, fmt.Errorf("failed to read --quiet flag: %w", err)
	}
	if flags.asJSON, err = cmd.Flags().GetBool("json"); err != nil {
		return runFlags{}, fmt.Errorf("failed to read --json flag: %w", err)
	}
	return flags, nil
}

func buildTagger(flags runFlags, onResult func(tagger.FileTask)) *tagger.Tagger {
	opts := tagger.Options{
		Workers:        flags.cfg.Workers,
		Timeout:        flags.cfg.Timeout(),
		Force:          flags.force,
		TimeoutRetries: flags.cfg.TimeoutRetries,
		ErrorRetries:   flags.cfg.ErrorRetries,
		IgnoreTags:     flags.cfg.IgnoreTags,
		OnResult:       onResult,
	}
	return tagger.New(newSuggester(flags.cfg), opts)
}

// progressPrinter returns the per-file callback, or nil when progress lines
// are suppressed.
func progressPrinter(flags runFlags) func(tagger.FileTask) {
	if flags.quiet || flags.asJSON {
		return nil
	}
	return printResult
}
