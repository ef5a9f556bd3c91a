package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/logging"
	"github.com/BartSte/bartste-prompts/internal/runner"
)

// DefaultProgram is the assistant started when none is configured.
const DefaultProgram = "aider"

// AskPrefix turns an aider message into a question that must not edit files.
const AskPrefix = "/ask "

// Flags that keep aider non-interactive.
var aiderFlags = []string{
	"--yes-always",
	"--no-check-update",
	"--no-suggest-shell-commands",
}

// Aider hands the prompt to the aider assistant.
type Aider struct {
	params Params
	env    Env
}

func newAider(params Params, env Env) Action {
	return &Aider{params: params, env: env}
}

// Message returns the --message value. Commands that cannot edit are sent
// as questions.
func (a *Aider) Message() string {
	msg := a.params.Prompt.String()
	if !a.params.Command.Has(command.Edit) {
		return AskPrefix + msg
	}
	return msg
}

// Argv returns the full command line.
func (a *Aider) Argv() []string {
	program := a.env.Assistant.Program
	if program == "" {
		program = DefaultProgram
	}

	argv := make([]string, 0, 1+len(aiderFlags)+len(a.env.Assistant.Args)+2+len(a.params.Files))
	argv = append(argv, program)
	argv = append(argv, aiderFlags...)
	argv = append(argv, a.env.Assistant.Args...)
	argv = append(argv, "--message", a.Message())
	argv = append(argv, a.params.Files...)
	return argv
}

func (a *Aider) Execute(ctx context.Context) error {
	argv := a.Argv()
	if a.env.Assistant.DryRun {
		_, err := fmt.Fprintln(a.env.stdout(), runner.Quote(argv))
		return err
	}
	if a.env.Runner == nil {
		return errors.New("no process runner configured")
	}

	logging.Info().
		Str("program", argv[0]).
		Str("command", a.params.Command.String()).
		Int("files", len(a.params.Files)).
		Msg("Invoking assistant")
	return a.env.Runner.Run(ctx, argv)
}
