package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/BartSte/bartste-prompts/internal/fuzzy"
)

var _ pflag.Value = (*choiceValue)(nil)

// choiceValue is a pflag.Value restricted to a fixed set of strings.
// Matching ignores case; the stored value is the choice as listed.
type choiceValue struct {
	value   string
	choices []string
}

func newChoiceValue(choices []string, value string) *choiceValue {
	return &choiceValue{value: value, choices: choices}
}

func (c *choiceValue) String() string {
	return c.value
}

func (c *choiceValue) Set(v string) error {
	for _, choice := range c.choices {
		if strings.EqualFold(choice, v) {
			c.value = choice
			return nil
		}
	}

	msg := fmt.Sprintf("must be one of %s", strings.Join(c.choices, "|"))
	if s := fuzzy.Closest(v, c.choices); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return errors.New(msg)
}

func (c *choiceValue) Type() string {
	return "string"
}

// usage appends the accepted values to a flag description.
func (c *choiceValue) usage(text string) string {
	return fmt.Sprintf("%s (%s)", text, strings.Join(c.choices, "|"))
}
