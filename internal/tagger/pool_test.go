package tagger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func writeNotes(t *testing.T, root string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("# "+name+"\n\nbody\n"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestProcessFilesRespectsWorkerBound(t *testing.T) {
	paths := writeNotes(t, t.TempDir(), "a.md", "b.md", "c.md", "d.md", "e.md", "f.md")
	stub := &stubSuggester{response: []string{"notes"}, delay: 20 * time.Millisecond}

	result := New(stub, Options{Workers: 2}).ProcessFiles(context.Background(), paths)
	if result.Tagged != len(paths) {
		t.Fatalf("expected all tagged, got %+v", result)
	}
	if stub.maxInFlight > 2 {
		t.Fatalf("expected at most 2 suggestions in flight, saw %d", stub.maxInFlight)
	}
}

func TestProcessFilesPreservesInputOrder(t *testing.T) {
	paths := writeNotes(t, t.TempDir(), "z.md", "a.md", "m.md")
	stub := &stubSuggester{response: []string{"notes"}}

	result := New(stub, Options{Workers: 3}).ProcessFiles(context.Background(), paths)
	if len(result.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(result.Tasks))
	}
	for i, task := range result.Tasks {
		if task.Path != paths[i] {
			t.Fatalf("expected result %d for %s, got %s", i, paths[i], task.Path)
		}
	}
}

func TestProcessFilesIsolatesFailures(t *testing.T) {
	paths := writeNotes(t, t.TempDir(), "good.md", "bad.md", "fine.md")
	failing := suggesterFunc(func(ctx context.Context, content []byte) ([]string, error) {
		if strings.Contains(string(content), "bad.md") {
			return nil, fmt.Errorf("service exploded")
		}
		return []string{"notes"}, nil
	})

	result := New(failing, Options{Workers: 2, RetryBackoff: time.Millisecond}).ProcessFiles(context.Background(), paths)
	if result.Tagged != 2 || result.Failed != 1 {
		t.Fatalf("expected 2 tagged and 1 failed, got %+v", result)
	}
	if result.Tasks[1].Status != StatusFailed {
		t.Fatalf("expected bad.md task failed, got %s", result.Tasks[1].Status)
	}
}

func TestProcessFilesOnResultSerialized(t *testing.T) {
	paths := writeNotes(t, t.TempDir(), "a.md", "b.md", "c.md", "d.md")
	stub := &stubSuggester{response: []string{"notes"}}

	var mu sync.Mutex
	seen := make(map[string]bool)
	opts := Options{
		Workers: 4,
		OnResult: func(task FileTask) {
			mu.Lock()
			seen[task.Path] = true
			mu.Unlock()
		},
	}

	New(stub, opts).ProcessFiles(context.Background(), paths)
	if len(seen) != len(paths) {
		t.Fatalf("expected callback for every task, got %d", len(seen))
	}
}

func TestProcessDirectory(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "nested/b.md")
	if err := os.WriteFile(filepath.Join(root, "skip.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write txt file: %v", err)
	}
	stub := &stubSuggester{response: []string{"notes"}}

	tg := New(stub, Options{})

	flat, err := tg.ProcessDirectory(context.Background(), root, false)
	if err != nil {
		t.Fatalf("ProcessDirectory failed: %v", err)
	}
	if len(flat.Tasks) != 1 {
		t.Fatalf("expected 1 file without recursion, got %d", len(flat.Tasks))
	}
}

func TestProcessDirectoryRecursive(t *testing.T) {
	root := t.TempDir()
	writeNotes(t, root, "a.md", "nested/b.md")
	stub := &stubSuggester{response: []string{"notes"}}

	result, err := New(stub, Options{}).ProcessDirectory(context.Background(), root, true)
	if err != nil {
		t.Fatalf("ProcessDirectory failed: %v", err)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("expected 2 files with recursion, got %d", len(result.Tasks))
	}
}

func TestProcessDirectoryErrors(t *testing.T) {
	stub := &stubSuggester{}
	tg := New(stub, Options{})

	if _, err := tg.ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "absent"), false); err == nil {
		t.Fatalf("expected error for missing directory")
	}

	file := writeNotes(t, t.TempDir(), "a.md")[0]
	if _, err := tg.ProcessDirectory(context.Background(), file, false); err == nil {
		t.Fatalf("expected error for non-directory path")
	}
}

func TestProcessDirectoryEmpty(t *testing.T) {
	stub := &stubSuggester{}
	result, err := New(stub, Options{}).ProcessDirectory(context.Background(), t.TempDir(), true)
	if err != nil {
		t.Fatalf("ProcessDirectory failed: %v", err)
	}
	if len(result.Tasks) != 0 || result.Failed != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}
