package scan

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sage-dev/sage/internal/ignore"
)

// IsMarkdown reports whether path has a markdown extension.
func IsMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".md")
}

// Markdown walks root and returns the markdown files to process, sorted.
// With recursive false only the top level is scanned. Ignore rules prune
// both directories and individual files.
func Markdown(root string, recursive bool, rules []string) ([]string, error) {
	matcher := ignore.NewMatcher(rules)

	var out []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if matcher.ShouldIgnore(relPath, entry.IsDir()) {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if !recursive {
				return fs.SkipDir
			}
			return nil
		}

		if IsMarkdown(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(out)
	return out, nil
}
