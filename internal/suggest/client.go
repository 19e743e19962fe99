package suggest

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// waitDelay bounds how long Run waits for the stdout pipe to close after
// cancellation, in case a descendant escaped the process group.
const waitDelay = 2 * time.Second

// CLIClient shells out to an agent CLI (claude by default), feeding the
// document on stdin and reading candidate tags from stdout. Context
// cancellation kills the subprocess and its whole process group, so a
// forked helper cannot keep the call blocked past the deadline.
type CLIClient struct {
	Command string
	Args    []string
}

func NewCLIClient(command string, args []string) *CLIClient {
	if command == "" {
		command = "claude"
	}
	return &CLIClient{Command: command, Args: args}
}

func (c *CLIClient) Suggest(ctx context.Context, content []byte) ([]string, error) {
	args := append(append([]string(nil), c.Args...), "-p", Prompt)
	cmd := exec.CommandContext(ctx, c.Command, args...)
	cmd.Stdin = bytes.NewReader(content)

	// Run the command in its own process group so cancellation kills the
	// entire process tree, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, &ServiceError{
			Command: c.Command,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	proposal, err := ParseResponse(c.Command, stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return proposal, nil
}
