package tagger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sage-dev/sage/internal/ignore"
	"github.com/sage-dev/sage/internal/scan"
)

// ProcessFiles fans the pipeline out across a bounded worker pool. Each
// task owns its result slot, so accumulation needs no locking; only the
// OnResult callback is serialized. Results keep input order.
func (t *Tagger) ProcessFiles(ctx context.Context, paths []string) RunResult {
	start := time.Now()
	results := make([]FileTask, len(paths))

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(t.opts.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			task := t.Process(ctx, path)
			results[i] = task
			if t.opts.OnResult != nil {
				mu.Lock()
				t.opts.OnResult(task)
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; failures live in their task slots.
	_ = g.Wait()

	return summarize(results, time.Since(start))
}

// ProcessDirectory scans dir for markdown files (honoring .sageignore) and
// processes them.
func (t *Tagger) ProcessDirectory(ctx context.Context, dir string, recursive bool) (RunResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return RunResult{}, fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return RunResult{}, fmt.Errorf("path is not a directory: %s", dir)
	}

	rules, err := ignore.LoadRules(dir)
	if err != nil {
		return RunResult{}, err
	}
	paths, err := scan.Markdown(dir, recursive, rules)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return t.ProcessFiles(ctx, paths), nil
}
