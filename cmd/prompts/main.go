// Package main provides the entry point for the prompts CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/BartSte/bartste-prompts/cmd/prompts/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		red := color.New(color.FgRed, color.Bold)
		red.Fprint(os.Stderr, "error:")
		fmt.Fprintln(os.Stderr, " "+err.Error())
		os.Exit(commands.ExitCode(err))
	}
}
