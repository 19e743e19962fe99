// Package suggest talks to an external AI agent CLI to obtain candidate
// tags for a markdown document. The service is opaque and non-deterministic,
// so everything downstream depends only on the Suggester interface and tests
// stub it with fixed responses.
package suggest

import (
	"context"
	"fmt"
)

// Suggester produces candidate tags for a markdown document.
type Suggester interface {
	Suggest(ctx context.Context, content []byte) ([]string, error)
}

// ServiceError reports a failed or unusable response from the external
// suggestion service.
type ServiceError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("suggestion service %q failed", e.Command)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
