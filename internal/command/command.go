package command

import (
	"fmt"
	"slices"
	"strings"
)

// Capability is a tag on a Command that controls which capability-specific
// instructions apply to it.
type Capability string

const (
	// Edit marks commands that modify the target files.
	Edit Capability = "edit"
)

// AllCapabilities returns every known capability.
func AllCapabilities() []Capability {
	return []Capability{Edit}
}

// Command identifies one prompt operation.
type Command string

const (
	Docstrings Command = "docstrings"
	Explain    Command = "explain"
	Fix        Command = "fix"
	Refactor   Command = "refactor"
	Typehints  Command = "typehints"
	Unittests  Command = "unittests"
)

type info struct {
	description  string
	capabilities []Capability
}

var commands = map[Command]info{
	Docstrings: {"Add docstrings to files", []Capability{Edit}},
	Explain:    {"Explain code to the user", nil},
	Fix:        {"Fix bugs in the code", []Capability{Edit}},
	Refactor:   {"Refactor code based on best practices", []Capability{Edit}},
	Typehints:  {"Add type hints to files", []Capability{Edit}},
	Unittests:  {"Generate thorough unit tests for files", []Capability{Edit}},
}

// All returns every command sorted by name.
func All() []Command {
	all := make([]Command, 0, len(commands))
	for c := range commands {
		all = append(all, c)
	}
	slices.Sort(all)
	return all
}

// Parse converts a name into a Command.
func Parse(name string) (Command, error) {
	c := Command(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := commands[c]; !ok {
		return "", fmt.Errorf("unknown command: %s", name)
	}
	return c, nil
}

// String returns the command name.
func (c Command) String() string {
	return string(c)
}

// Description returns the one-line help text of the command.
func (c Command) Description() string {
	return commands[c].description
}

// Capabilities returns a copy of the command's capability set.
func (c Command) Capabilities() []Capability {
	return slices.Clone(commands[c].capabilities)
}

// Has reports whether the command has the given capability.
func (c Command) Has(capability Capability) bool {
	return slices.Contains(commands[c].capabilities, capability)
}
