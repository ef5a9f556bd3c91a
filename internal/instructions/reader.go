package instructions

import (
	"regexp"

	"github.com/BartSte/bartste-prompts/internal/logging"
	"github.com/spf13/afero"
)

// placeholderPattern matches escaped braces and {name} placeholders.
var placeholderPattern = regexp.MustCompile(`\{\{|\}\}|\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Read returns the contents of p, or "" when p is zero or cannot be read.
func Read(p Path) string {
	if p.IsZero() {
		return ""
	}
	data, err := afero.ReadFile(p.root.FS, p.Name)
	if err != nil {
		logging.Debug().Err(err).Str("path", p.String()).Msg("instruction unreadable")
		return ""
	}
	return string(data)
}

// Format substitutes every {name} placeholder in text with its value.
// "{{" and "}}" render a single brace; any other brace is kept as is.
// When text references a name missing from placeholders, Format returns
// "" and false.
func Format(text string, placeholders map[string]string) (string, bool) {
	ok := true
	out := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		switch match {
		case "{{":
			return "{"
		case "}}":
			return "}"
		}
		name := match[1 : len(match)-1]
		value, found := placeholders[name]
		if !found {
			ok = false
			return match
		}
		return value
	})
	if !ok {
		return "", false
	}
	return out, true
}

// ReadFormat reads p and formats it. Unresolved placeholders yield "".
func ReadFormat(p Path, placeholders map[string]string) string {
	text, ok := Format(Read(p), placeholders)
	if !ok {
		logging.Debug().Str("path", p.String()).Msg("instruction references a missing placeholder")
		return ""
	}
	return text
}
