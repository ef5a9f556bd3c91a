package action

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BartSte/bartste-prompts/internal/fuzzy"
)

type constructor func(params Params, env Env) Action

type entry struct {
	name        string
	description string
	create      constructor
	// external actions do more than write to stdout.
	external bool
}

var registry = []entry{
	{name: "print", description: "Print the prompt to stdout", create: newPrint},
	{name: "json", description: "Print the request and prompt as one JSON object", create: newJSON},
	{name: "aider", description: "Run aider with the prompt as its message", create: newAider, external: true},
}

// Create returns the action registered under name.
func Create(name string, params Params, env Env) (Action, error) {
	for _, e := range registry {
		if e.name == name {
			return e.create(params, env), nil
		}
	}
	return nil, newUnknownError(name)
}

// Names returns the registered action names in table order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Validate returns an *UnknownError when name is not registered.
func Validate(name string) error {
	if Exists(name) {
		return nil
	}
	return newUnknownError(name)
}

// External reports whether the named action starts another program rather
// than only writing to stdout. Unknown names report false.
func External(name string) bool {
	for _, e := range registry {
		if e.name == name {
			return e.external
		}
	}
	return false
}

// Exists reports whether name is a registered action.
func Exists(name string) bool {
	for _, e := range registry {
		if e.name == name {
			return true
		}
	}
	return false
}

// Description returns the one-line description of a registered action.
func Description(name string) string {
	for _, e := range registry {
		if e.name == name {
			return e.description
		}
	}
	return ""
}

// UnknownError is returned by Create for a name that is not registered.
type UnknownError struct {
	Name       string
	Known      []string
	Suggestion string
}

func newUnknownError(name string) *UnknownError {
	known := Names()
	return &UnknownError{
		Name:       name,
		Known:      known,
		Suggestion: fuzzy.Closest(name, known),
	}
}

func (e *UnknownError) Error() string {
	msg := fmt.Sprintf("unknown action %q (valid: %s)", e.Name, strings.Join(e.Known, ", "))
	if e.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", e.Suggestion)
	}
	return msg
}

// IsUnknownError reports whether err is or wraps an UnknownError.
func IsUnknownError(err error) bool {
	var target *UnknownError
	return errors.As(err, &target)
}
