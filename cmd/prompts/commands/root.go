// Package commands provides the CLI commands for prompts.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/config"
	"github.com/BartSte/bartste-prompts/internal/event"
	"github.com/BartSte/bartste-prompts/internal/instructions"
	"github.com/BartSte/bartste-prompts/internal/logging"
	"github.com/BartSte/bartste-prompts/internal/runner"
	"github.com/BartSte/bartste-prompts/pkg/types"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// app holds the global flags and the state shared by all subcommands of
// one invocation.
type app struct {
	// Global flags
	logLevel     *choiceValue
	quiet        bool
	logFile      string
	instructions []string

	workDir string
	cfg     *types.Config
	runID   string
	bus     *event.Bus

	// closed when the event logger has drained the bus
	eventsDone <-chan struct{}
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{logLevel: newChoiceValue(logging.LevelNames, "")}

	rootCmd := &cobra.Command{
		Use:   "prompts",
		Short: "prompts - assemble instructions for AI coding assistants",
		Long: `prompts builds a prompt for a coding task from markdown instruction files
and prints it, emits it as JSON, or hands it to aider.

Instructions are looked up in the directories given with --instructions, the
configured instruction roots, ~/.config/prompts/instructions and finally the
built-in set.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	// Global flags available to all commands
	flags := rootCmd.PersistentFlags()
	flags.VarP(a.logLevel, "loglevel", "l", a.logLevel.usage("Log level"))
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Suppress all log output")
	flags.StringVar(&a.logFile, "log-file", "", "Also append logs to this file as JSON lines")
	flags.StringArrayVar(&a.instructions, "instructions", nil, "Extra instruction directory, highest priority first (repeatable)")

	rootCmd.SetVersionTemplate(fmt.Sprintf("prompts %s (%s)\n", Version, BuildTime))

	for _, cmd := range command.All() {
		rootCmd.AddCommand(newPromptCmd(a, cmd))
	}
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newDebugCmd(a))

	return rootCmd, a
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return ExecuteArgs(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the CLI with args, writing command output to stdout and
// logs and child stderr to stderr.
func ExecuteArgs(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd, a := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	defer a.close()
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit status: the
// assistant's own status when it failed, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return runner.ExitCode(err, 1)
}

// setup loads the configuration and initializes logging and the event bus.
// It runs once before any subcommand.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	levelName := a.cfg.LogLevelOrDefault()
	if cmd.Flags().Changed("loglevel") {
		levelName = a.logLevel.String()
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	logFile := a.cfg.LogFile
	if a.logFile != "" {
		logFile = a.logFile
	}

	a.runID = ulid.Make().String()
	if err := logging.Init(logging.Config{
		Level:  level,
		Output: cmd.ErrOrStderr(),
		Pretty: true,
		File:   logFile,
		Quiet:  a.quiet,
		Fields: map[string]string{"run": a.runID},
	}); err != nil {
		return err
	}

	a.bus = event.NewBus(a.runID)
	a.eventsDone, err = a.bus.Consume(context.Background(), func(m event.Message) {
		logging.Debug().
			Str("event", string(m.Type)).
			RawJSON("data", m.Data).
			Msg("Event")
	})
	if err != nil {
		return err
	}

	logging.Debug().
		Str("command", cmd.CommandPath()).
		Str("workDir", a.workDir).
		Strs("instructions", a.instructionDirs()).
		Msg("Starting")
	return nil
}

// loadConfig loads the merged configuration once.
func (a *app) loadConfig() error {
	if a.cfg != nil {
		return nil
	}
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(workDir)
	if err != nil {
		return err
	}
	a.workDir = workDir
	a.cfg = cfg
	return nil
}

// instructionDirs returns the on-disk instruction roots: --instructions
// first, then the configured ones.
func (a *app) instructionDirs() []string {
	var dirs []string
	seen := make(map[string]bool)
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	for _, dir := range a.instructions {
		add(dir)
	}
	if a.cfg != nil {
		for _, dir := range config.InstructionRoots(a.cfg) {
			add(dir)
		}
	}
	return dirs
}

// roots returns every instruction root in priority order, ending with the
// built-in tree.
func (a *app) roots() []instructions.Root {
	return instructions.Roots(a.instructionDirs()...)
}

func (a *app) close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if a.eventsDone != nil {
		<-a.eventsDone
	}
	logging.Close()
}
