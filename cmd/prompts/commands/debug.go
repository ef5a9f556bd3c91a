package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/config"
	"github.com/BartSte/bartste-prompts/internal/instructions"
)

func newDebugCmd(a *app) *cobra.Command {
	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Debug utilities",
		Long:  `Debug utilities for troubleshooting configuration and instruction lookup.`,
	}

	debugConfigCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(a.cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), string(data))
			return nil
		},
	}

	var filetype string
	debugPathsCmd := &cobra.Command{
		Use:   "paths [command]",
		Short: "Show system paths, instruction roots and, for a command, where each fragment is read from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			out := c.OutOrStdout()
			printPaths(out, a)
			if len(args) == 0 {
				return nil
			}

			cmd, err := command.Parse(args[0])
			if err != nil {
				return err
			}
			roots := a.roots()
			assembler := instructions.NewAssembler(instructions.NewResolver(roots...), false)
			printSources(out, assembler.Sources(instructions.Request{Command: cmd, Filetype: filetype}))
			return nil
		},
	}
	debugPathsCmd.Flags().StringVarP(&filetype, "filetype", "f", "", "Filetype to resolve capability instructions for")

	debugCmd.AddCommand(debugConfigCmd)
	debugCmd.AddCommand(debugPathsCmd)
	return debugCmd
}

func printPaths(out io.Writer, a *app) {
	paths := config.GetPaths()
	heading := color.New(color.Bold)

	heading.Fprintln(out, "System Paths:")
	fmt.Fprintf(out, "  Config:        %s\n", paths.Config)
	fmt.Fprintf(out, "  Data:          %s\n", paths.Data)
	fmt.Fprintf(out, "  State:         %s\n", paths.State)
	fmt.Fprintf(out, "  Instructions:  %s\n", paths.InstructionsDir())
	fmt.Fprintf(out, "  Log:           %s\n", paths.LogPath())
	fmt.Fprintln(out)

	heading.Fprintln(out, "Instruction Roots:")
	roots := a.roots()
	for i, root := range roots {
		fmt.Fprintf(out, "  %d. %s\n", i+1, root.Dir)
	}
	if dirs := instructions.NewCatalog(roots...).Commands(); len(dirs) > 0 {
		fmt.Fprintf(out, "  Command directories: %v\n", dirs)
	}
}

func printSources(out io.Writer, sources []instructions.Source) {
	heading := color.New(color.Bold)
	found := color.New(color.FgGreen)

	var last instructions.Fragment
	for _, s := range sources {
		if s.Fragment != last {
			fmt.Fprintln(out)
			heading.Fprintf(out, "%s:\n", s.Fragment)
			last = s.Fragment
		}
		for _, cand := range s.Candidates {
			if !s.Resolved.IsZero() && cand.String() == s.Resolved.String() {
				found.Fprintf(out, "  * %s\n", cand)
				continue
			}
			fmt.Fprintf(out, "    %s\n", cand)
		}
	}
}
