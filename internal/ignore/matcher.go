package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RulesFile is the per-directory ignore file consulted by directory scans.
const RulesFile = ".sageignore"

type rule struct {
	pattern  string
	negated  bool
	dirOnly  bool
	anchored bool
}

// Matcher applies gitignore-like rules with "last rule wins" behavior.
type Matcher struct {
	rules []rule
}

// NewMatcher builds a matcher from user-provided .sageignore lines.
// Default excludes are prepended and can be overridden by user negation rules.
func NewMatcher(userRules []string) *Matcher {
	defaultRules := []string{
		".git/",
		".obsidian/",
		".trash/",
		"node_modules/",
	}

	all := make([]string, 0, len(defaultRules)+len(userRules))
	all = append(all, defaultRules...)
	all = append(all, userRules...)

	rules := make([]rule, 0, len(all))
	for _, line := range all {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}

	return &Matcher{rules: rules}
}

// LoadRules reads the .sageignore file at root, if present.
func LoadRules(root string) ([]string, error) {
	f, err := os.Open(filepath.Join(root, RulesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", RulesFile, err)
	}
	defer f.Close()

	rules := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", RulesFile, err)
	}
	return rules, nil
}

// ShouldIgnore returns true when relPath should be excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	ignored := false
	for _, r := range m.rules {
		if r.matches(relPath, isDir) {
			ignored = !r.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	if strings.HasPrefix(line, "/") {
		parsed.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if strings.HasSuffix(line, "/") {
		parsed.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	line = normalizePath(line)
	if line == "" {
		return rule{}, false
	}
	parsed.pattern = line
	return parsed, true
}

func (r rule) matches(relPath string, isDir bool) bool {
	for _, candidate := range r.candidates(isDir) {
		if ok, err := doublestar.Match(candidate, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// candidates expands the rule into doublestar patterns. Non-anchored rules
// can match at any depth; directory rules also cover everything below the
// directory so walkers can prune it.
func (r rule) candidates(isDir bool) []string {
	out := []string{r.pattern}
	if r.dirOnly || isDir {
		out = append(out, r.pattern+"/**")
	}
	if !r.anchored && !strings.Contains(r.pattern, "/") {
		out = append(out, "**/"+r.pattern)
		if r.dirOnly || isDir {
			out = append(out, "**/"+r.pattern+"/**")
		}
	}
	return out
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
