package instructions

import (
	"errors"
	"strings"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/logging"
)

// DefaultFiletype selects the capability instruction used when no filetype
// is requested.
const DefaultFiletype = "default"

// Request holds the parameters a prompt is assembled from.
type Request struct {
	Command    command.Command
	Files      []string
	Filetype   string
	UserPrompt string
}

// UniqueFiles returns Files without empty or repeated entries, keeping the
// first occurrence order.
func (r Request) UniqueFiles() []string {
	seen := make(map[string]bool, len(r.Files))
	files := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		files = append(files, f)
	}
	return files
}

// Placeholders returns the substitution mapping. Only non-empty values are
// kept; command is always present.
func (r Request) Placeholders() map[string]string {
	params := map[string]string{"command": r.Command.String()}
	if files := r.UniqueFiles(); len(files) > 0 {
		params["files"] = strings.Join(files, ", ")
	}
	if r.Filetype != "" {
		params["filetype"] = r.Filetype
	}
	if r.UserPrompt != "" {
		params["userprompt"] = r.UserPrompt
	}
	return params
}

// Assembler builds prompts from instruction files.
type Assembler struct {
	resolver *Resolver
	strict   bool
}

// NewAssembler creates an assembler. With strict set, a missing command
// instruction fails assembly with *NotFoundError instead of yielding an
// empty command fragment.
func NewAssembler(resolver *Resolver, strict bool) *Assembler {
	return &Assembler{resolver: resolver, strict: strict}
}

// Assemble resolves every fragment for req.
func (a *Assembler) Assemble(req Request) (Prompt, error) {
	params := req.Placeholders()
	logging.Debug().Interface("params", params).Msg("assembling prompt")

	cmd, err := a.command(req.Command, params)
	if err != nil {
		return Prompt{}, err
	}

	return NewPrompt(
		a.files(req.Command, params),
		cmd,
		a.filetype(req.Command, req.Filetype),
		a.userprompt(req.Command, params),
	), nil
}

// get applies the two lookup strategies for key: <key>.md formatted with
// params, then <key>/<value>.md read verbatim.
func (a *Assembler) get(cmd command.Command, key, value string, params map[string]string) string {
	if p := a.resolver.Lookup(cmd, key+".md"); !p.IsZero() {
		return ReadFormat(p, params)
	}
	if value == "" {
		return ""
	}
	return Read(a.resolver.Lookup(cmd, key, value+".md"))
}

func (a *Assembler) command(cmd command.Command, params map[string]string) (string, error) {
	key := string(FragmentCommand)
	if !a.strict {
		return a.get(cmd, key, cmd.String(), params), nil
	}

	p, err := a.resolver.Find(cmd, key+".md")
	if err == nil {
		return ReadFormat(p, params), nil
	}
	keyed := err

	p, err = a.resolver.Find(cmd, key, cmd.String()+".md")
	if err == nil {
		return Read(p), nil
	}

	var first, second *NotFoundError
	if errors.As(keyed, &first) && errors.As(err, &second) {
		return "", &NotFoundError{Candidates: append(first.Candidates, second.Candidates...)}
	}
	return "", err
}

func (a *Assembler) files(cmd command.Command, params map[string]string) string {
	if _, ok := params["files"]; !ok {
		return ""
	}
	return ReadFormat(a.resolver.Lookup(cmd, "files.md"), params)
}

func (a *Assembler) userprompt(cmd command.Command, params map[string]string) string {
	if _, ok := params["userprompt"]; !ok {
		return ""
	}
	return ReadFormat(a.resolver.Lookup(cmd, "userprompt.md"), params)
}

// filetype joins the capability instructions for filetype. Commands without
// capabilities always yield "".
func (a *Assembler) filetype(cmd command.Command, filetype string) string {
	if filetype == "" {
		filetype = DefaultFiletype
	}

	var parts []string
	for _, capability := range cmd.Capabilities() {
		text := Read(a.resolver.Lookup(cmd, string(capability), filetype+".md"))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// Source describes where one fragment may be read from.
type Source struct {
	Fragment Fragment
	// Candidates in lookup order.
	Candidates []Candidate
	// Resolved is the first existing candidate, or the zero Path.
	Resolved Path
}

// Sources lists, for each lookup Assemble performs for req, every
// candidate location and the one that would be read. A fragment with two
// lookup strategies or several capabilities has several entries.
func (a *Assembler) Sources(req Request) []Source {
	cmd := req.Command
	filetype := req.Filetype
	if filetype == "" {
		filetype = DefaultFiletype
	}

	var sources []Source
	add := func(f Fragment, segments ...string) {
		sources = append(sources, Source{
			Fragment:   f,
			Candidates: a.resolver.Candidates(cmd, segments...),
			Resolved:   a.resolver.Lookup(cmd, segments...),
		})
	}

	add(FragmentFiles, "files.md")
	add(FragmentCommand, string(FragmentCommand)+".md")
	add(FragmentCommand, string(FragmentCommand), cmd.String()+".md")
	for _, capability := range cmd.Capabilities() {
		add(FragmentFiletype, string(capability), filetype+".md")
	}
	add(FragmentUserPrompt, "userprompt.md")
	return sources
}
