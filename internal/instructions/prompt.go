package instructions

import "strings"

// Fragment names one slot of a Prompt.
type Fragment string

const (
	FragmentFiles      Fragment = "files"
	FragmentCommand    Fragment = "command"
	FragmentFiletype   Fragment = "filetype"
	FragmentUserPrompt Fragment = "userprompt"
)

// Fragments returns the fragment keys in prompt order.
func Fragments() []Fragment {
	return []Fragment{FragmentFiles, FragmentCommand, FragmentFiletype, FragmentUserPrompt}
}

// Prompt is the ordered set of resolved fragments. The zero value is an
// empty prompt; a Prompt is never modified after NewPrompt returns it.
type Prompt struct {
	files      string
	command    string
	filetype   string
	userprompt string
}

// NewPrompt builds a Prompt from fragment values.
func NewPrompt(files, command, filetype, userprompt string) Prompt {
	return Prompt{files: files, command: command, filetype: filetype, userprompt: userprompt}
}

// Get returns the value of one fragment.
func (p Prompt) Get(f Fragment) string {
	switch f {
	case FragmentFiles:
		return p.files
	case FragmentCommand:
		return p.command
	case FragmentFiletype:
		return p.filetype
	case FragmentUserPrompt:
		return p.userprompt
	}
	return ""
}

// Values returns the fragment values in prompt order.
func (p Prompt) Values() []string {
	return []string{p.files, p.command, p.filetype, p.userprompt}
}

// Empty returns the fragments that resolved to "".
func (p Prompt) Empty() []Fragment {
	var empty []Fragment
	for _, f := range Fragments() {
		if p.Get(f) == "" {
			empty = append(empty, f)
		}
	}
	return empty
}

// String joins all four fragments with newlines. Empty fragments still
// contribute their line.
func (p Prompt) String() string {
	return strings.Join(p.Values(), "\n")
}
