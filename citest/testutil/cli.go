// Package testutil provides helpers for driving the prompts CLI in-process.
package testutil

import (
	"bytes"
	"context"
	"time"

	"github.com/BartSte/bartste-prompts/cmd/prompts/commands"
)

// DefaultTimeout bounds a single CLI invocation.
const DefaultTimeout = 30 * time.Second

// Result is the outcome of one CLI invocation.
type Result struct {
	Stdout   string
	Stderr   string
	Err      error
	ExitCode int
}

// RunCLI executes the prompts root command with args.
func RunCLI(args ...string) *Result {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	return RunCLIContext(ctx, args...)
}

// RunCLIContext is RunCLI with a caller supplied context.
func RunCLIContext(ctx context.Context, args ...string) *Result {
	var stdout, stderr bytes.Buffer
	err := commands.ExecuteArgs(ctx, args, &stdout, &stderr)
	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
		ExitCode: commands.ExitCode(err),
	}
}
