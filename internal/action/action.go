package action

import (
	"context"
	"io"
	"os"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/instructions"
)

// Action consumes an assembled prompt.
type Action interface {
	Execute(ctx context.Context) error
}

// ProcessRunner runs an external program to completion.
type ProcessRunner interface {
	Run(ctx context.Context, argv []string) error
}

// Params is the request an action acts upon.
type Params struct {
	Prompt     instructions.Prompt
	Command    command.Command
	Files      []string
	Filetype   string
	UserPrompt string
}

// AssistantOptions configures the external assistant.
type AssistantOptions struct {
	// Program defaults to "aider".
	Program string
	// Args are placed after the fixed flags and before --message.
	Args []string
	// DryRun prints the command line instead of running it.
	DryRun bool
}

// Env holds the collaborators an action writes to.
type Env struct {
	Stdout    io.Writer
	Runner    ProcessRunner
	Assistant AssistantOptions
}

func (e Env) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}
