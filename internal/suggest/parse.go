package suggest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sage-dev/sage/internal/tags"
)

// ParseResponse turns raw service output into a tag proposal. Accepted
// shapes: a JSON array of strings, or plain text with one tag per line
// (bullets and [[...]] wrappers are stripped). An empty or unusable payload
// is a ServiceError; a JSON array holding non-strings is a structurally
// malformed proposal.
func ParseResponse(command string, raw []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, &ServiceError{Command: command, Err: fmt.Errorf("empty suggestion response")}
	}

	if strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "[[") {
		var elements []any
		if err := json.Unmarshal([]byte(trimmed), &elements); err == nil {
			out := make([]string, 0, len(elements))
			for _, element := range elements {
				value, ok := element.(string)
				if !ok {
					return nil, &tags.ValidationError{
						Reason: fmt.Sprintf("proposal element %v is not a string", element),
					}
				}
				out = append(out, value)
			}
			return out, nil
		}
	}

	out := make([]string, 0, 8)
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		line = strings.TrimPrefix(line, "[[")
		line = strings.TrimSuffix(line, "]]")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, &ServiceError{Command: command, Err: fmt.Errorf("no tags in suggestion response")}
	}
	return out, nil
}
