package suggest

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sage-dev/sage/internal/tags"
)

func TestParseResponseLines(t *testing.T) {
	got, err := ParseResponse("claude", []byte("notes\ndraft\n"))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"notes", "draft"}) {
		t.Fatalf("unexpected proposal %v", got)
	}
}

func TestParseResponseBulletsAndWrappers(t *testing.T) {
	got, err := ParseResponse("claude", []byte("- notes\n* draft\n[[planning]]\n"))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"notes", "draft", "planning"}) {
		t.Fatalf("unexpected proposal %v", got)
	}
}

func TestParseResponseJSONArray(t *testing.T) {
	got, err := ParseResponse("claude", []byte(`["notes", "draft"]`))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"notes", "draft"}) {
		t.Fatalf("unexpected proposal %v", got)
	}
}

func TestParseResponseJSONNonStringsIsValidationError(t *testing.T) {
	_, err := ParseResponse("claude", []byte(`["notes", 42]`))
	var validationErr *tags.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseResponseEmptyIsServiceError(t *testing.T) {
	_, err := ParseResponse("claude", []byte("  \n"))
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestParseResponseWikilinkFirstLineNotJSON(t *testing.T) {
	got, err := ParseResponse("claude", []byte("[[notes]]\n[[draft]]"))
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"notes", "draft"}) {
		t.Fatalf("unexpected proposal %v", got)
	}
}

func TestCLIClientRunsCommand(t *testing.T) {
	// sh -c ignores the appended prompt arguments ($0, $1).
	client := &CLIClient{Command: "sh", Args: []string{"-c", `printf "notes\ndraft\n"`}}
	got, err := client.Suggest(context.Background(), []byte("# Title\n"))
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"notes", "draft"}) {
		t.Fatalf("unexpected proposal %v", got)
	}
}

func TestCLIClientReportsServiceError(t *testing.T) {
	client := &CLIClient{Command: "sh", Args: []string{"-c", `echo boom >&2; exit 3`}}
	_, err := client.Suggest(context.Background(), nil)
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if serviceErr.Stderr != "boom" {
		t.Fatalf("expected stderr captured, got %q", serviceErr.Stderr)
	}
}

func TestCLIClientTimeout(t *testing.T) {
	client := &CLIClient{Command: "sh", Args: []string{"-c", `sleep 5`}}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Suggest(ctx, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestCLIClientTimeoutKillsProcessTree(t *testing.T) {
	// The forked child inherits the stdout pipe. Killing only the shell
	// would leave Suggest blocked on the pipe for the child's full 5s.
	client := &CLIClient{Command: "sh", Args: []string{"-c", `sleep 5 & exec sleep 5`}}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Suggest(ctx, nil)
	elapsed := time.Since(start)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("Suggest blocked %v past the deadline", elapsed)
	}
}
