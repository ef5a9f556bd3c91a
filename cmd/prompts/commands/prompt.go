package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BartSte/bartste-prompts/internal/action"
	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/event"
	"github.com/BartSte/bartste-prompts/internal/fuzzy"
	"github.com/BartSte/bartste-prompts/internal/instructions"
	"github.com/BartSte/bartste-prompts/internal/logging"
	"github.com/BartSte/bartste-prompts/internal/runner"
)

// promptOptions holds the flags of a command subcommand.
type promptOptions struct {
	filetype   string
	action     *choiceValue
	userPrompt string
	strict     bool
	dryRun     bool
	watch      bool
}

func newPromptCmd(a *app, cmd command.Command) *cobra.Command {
	opts := &promptOptions{action: newChoiceValue(action.Names(), "")}

	c := &cobra.Command{
		Use:   cmd.String() + " [files...]",
		Short: cmd.Description(),
		Long:  promptLong(cmd),
		RunE: func(c *cobra.Command, args []string) error {
			return a.runPrompt(c, cmd, args, opts)
		},
	}

	flags := c.Flags()
	flags.StringVarP(&opts.filetype, "filetype", "f", "", "Filetype of the files, selects filetype specific instructions")
	flags.VarP(opts.action, "action", "a", opts.action.usage("What to do with the prompt"))
	flags.StringVarP(&opts.userPrompt, "userprompt", "u", "", "Extra instructions appended to the prompt")
	flags.BoolVar(&opts.strict, "strict", false, "Fail when no command instruction exists")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the assistant command line instead of running it")
	flags.BoolVar(&opts.watch, "watch", false, "Print again whenever an instruction file changes")

	_ = c.RegisterFlagCompletionFunc("filetype", func(c *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if err := a.loadConfig(); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return instructions.NewCatalog(a.roots()...).Filetypes(cmd), cobra.ShellCompDirectiveNoFileComp
	})

	return c
}

func promptLong(cmd command.Command) string {
	caps := cmd.Capabilities()
	if len(caps) == 0 {
		return cmd.Description() + ".\n\nThis command has no capabilities; --filetype has no effect."
	}
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = string(c)
	}
	return fmt.Sprintf("%s.\n\nCapabilities: %s.", cmd.Description(), strings.Join(names, ", "))
}

func (a *app) runPrompt(c *cobra.Command, cmd command.Command, files []string, opts *promptOptions) error {
	actionName := a.cfg.ActionOrDefault()
	if c.Flags().Changed("action") {
		actionName = opts.action.String()
	}
	if err := action.Validate(actionName); err != nil {
		return err
	}
	if opts.watch && action.External(actionName) {
		return fmt.Errorf("--watch cannot be combined with the %s action", actionName)
	}

	roots := a.roots()
	if err := validateFiletype(instructions.NewCatalog(roots...), opts.filetype); err != nil {
		return err
	}

	req := instructions.Request{
		Command:    cmd,
		Files:      files,
		Filetype:   opts.filetype,
		UserPrompt: opts.userPrompt,
	}
	assembler := instructions.NewAssembler(instructions.NewResolver(roots...), opts.strict || a.cfg.StrictEnabled())

	a.bus.PublishSync(event.Event{
		Type: event.RunStarted,
		Data: event.RunStartedData{Command: cmd.String(), Action: actionName, Files: req.UniqueFiles()},
	})

	prompt, err := a.assemble(assembler, req)
	if err != nil {
		return err
	}

	env, err := a.actionEnv(c, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt)
	defer stop()

	if err := execute(ctx, actionName, params(req, prompt), env); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	return a.watch(ctx, roots, assembler, req, prompt, actionName, env)
}

func (a *app) assemble(assembler *instructions.Assembler, req instructions.Request) (instructions.Prompt, error) {
	prompt, err := assembler.Assemble(req)
	if err != nil {
		return instructions.Prompt{}, err
	}

	empty := make([]string, 0, 4)
	for _, f := range prompt.Empty() {
		empty = append(empty, string(f))
	}
	a.bus.PublishSync(event.Event{
		Type: event.PromptAssembled,
		Data: event.PromptAssembledData{Command: req.Command.String(), Empty: empty, Bytes: len(prompt.String())},
	})
	return prompt, nil
}

// actionEnv wires the action's output and the assistant configuration.
func (a *app) actionEnv(c *cobra.Command, opts *promptOptions) (action.Env, error) {
	r := &runner.Runner{
		Sink: runner.SplitSink(c.OutOrStdout(), c.ErrOrStderr()),
		Dir:  a.workDir,
		Bus:  a.bus,
	}

	assistant := action.AssistantOptions{
		Program: a.cfg.AssistantProgram(),
		DryRun:  opts.dryRun,
	}
	if ac := a.cfg.Assistant; ac != nil {
		assistant.Args = ac.Args
		if ac.EnvFile != "" && !opts.dryRun {
			env, err := runner.Environ(ac.EnvFile)
			if err != nil {
				return action.Env{}, err
			}
			r.Env = env
		}
	}

	return action.Env{
		Stdout:    c.OutOrStdout(),
		Runner:    r,
		Assistant: assistant,
	}, nil
}

func params(req instructions.Request, prompt instructions.Prompt) action.Params {
	return action.Params{
		Prompt:     prompt,
		Command:    req.Command,
		Files:      req.UniqueFiles(),
		Filetype:   req.Filetype,
		UserPrompt: req.UserPrompt,
	}
}

func execute(ctx context.Context, name string, p action.Params, env action.Env) error {
	act, err := action.Create(name, p, env)
	if err != nil {
		return err
	}
	logging.Debug().Str("action", name).Msg("Executing action")
	return act.Execute(ctx)
}

// validateFiletype accepts "" and any filetype some capability directory
// provides.
func validateFiletype(catalog *instructions.Catalog, filetype string) error {
	if filetype == "" {
		return nil
	}

	var known []string
	for _, capability := range command.AllCapabilities() {
		for _, name := range catalog.CapabilityFiletypes(capability) {
			if !slices.Contains(known, name) {
				known = append(known, name)
			}
		}
	}
	if slices.Contains(known, filetype) {
		return nil
	}

	slices.Sort(known)
	msg := fmt.Sprintf("invalid filetype %q (valid: %s)", filetype, strings.Join(known, ", "))
	if s := fuzzy.Closest(filetype, known); s != "" {
		msg += fmt.Sprintf(", did you mean %q?", s)
	}
	return errors.New(msg)
}
