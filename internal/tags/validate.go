package tags

import (
	"regexp"
	"strings"

	"github.com/sage-dev/sage/internal/fileutil"
)

var validPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidationError reports a structurally malformed tag proposal, such as a
// suggestion payload whose elements are not strings. Individually bad tags
// are filtered, not errors.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid tag proposal: " + e.Reason
}

// IsValid reports whether a single tag satisfies the format rules:
// non-empty, single token, lowercase alphanumeric with hyphens.
func IsValid(tag string) bool {
	return validPattern.MatchString(tag)
}

// Filter returns the proposed tags that pass validation and are not already
// present, preserving proposal order, plus the tags that were dropped.
func Filter(proposed []string, existing []string) (kept []string, dropped []string) {
	present := fileutil.ToSet(existing)

	kept = make([]string, 0, len(proposed))
	for _, tag := range fileutil.DedupeStrings(trimAll(proposed)) {
		if !IsValid(tag) || present[tag] {
			dropped = append(dropped, tag)
			continue
		}
		kept = append(kept, tag)
	}
	return kept, dropped
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
