package instructions

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/logging"
)

// Path locates an instruction file inside a Root. The zero Path means
// "no file" and reads as the empty string.
type Path struct {
	root Root
	// Name is slash separated and relative to the root.
	Name string
}

// IsZero reports whether p points at nothing.
func (p Path) IsZero() bool {
	return p.Name == ""
}

// Root returns the tree the path belongs to.
func (p Path) Root() Root {
	return p.root
}

// String returns the displayable location, or "" for the zero Path.
func (p Path) String() string {
	if p.IsZero() {
		return ""
	}
	return p.root.display(p.Name)
}

// Candidate is one location consulted by the Resolver.
type Candidate struct {
	Root Root
	Name string
}

// String returns the displayable location.
func (c Candidate) String() string {
	return c.Root.display(c.Name)
}

// NotFoundError is returned when no candidate holds a regular file.
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	quoted := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		quoted[i] = "'" + c + "'"
	}
	return fmt.Sprintf("no instructions found in %s", strings.Join(quoted, " or "))
}

// IsNotFoundError checks if an error is a missing instruction.
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// Resolver finds instruction files by consulting an ordered list of
// candidate directories. For every root, in priority order, it checks
// commands/<command>/ and then default/.
type Resolver struct {
	roots []Root
}

// NewResolver creates a resolver over roots, highest priority first.
func NewResolver(roots ...Root) *Resolver {
	return &Resolver{roots: roots}
}

// Roots returns the roots in priority order.
func (r *Resolver) Roots() []Root {
	return append([]Root(nil), r.roots...)
}

// Candidates returns every location consulted for segments, in order.
func (r *Resolver) Candidates(cmd command.Command, segments ...string) []Candidate {
	rel := path.Join(segments...)
	candidates := make([]Candidate, 0, 2*len(r.roots))
	for _, root := range r.roots {
		candidates = append(candidates,
			Candidate{Root: root, Name: path.Join("commands", cmd.String(), rel)},
			Candidate{Root: root, Name: path.Join("default", rel)},
		)
	}
	return candidates
}

// Find returns the first candidate that is a regular file. It fails with
// *NotFoundError listing every candidate when none is.
func (r *Resolver) Find(cmd command.Command, segments ...string) (Path, error) {
	candidates := r.Candidates(cmd, segments...)
	for _, c := range candidates {
		if isFile(c.Root, c.Name) {
			logging.Debug().Str("path", c.String()).Msg("instruction found")
			return Path{root: c.Root, Name: c.Name}, nil
		}
	}

	tried := make([]string, len(candidates))
	for i, c := range candidates {
		tried[i] = c.String()
	}
	return Path{}, &NotFoundError{Candidates: tried}
}

// Lookup is the optional variant of Find: a miss yields the zero Path.
func (r *Resolver) Lookup(cmd command.Command, segments ...string) Path {
	p, err := r.Find(cmd, segments...)
	if err != nil {
		logging.Debug().Err(err).Msg("optional instruction missing")
		return Path{}
	}
	return p
}

func isFile(root Root, name string) bool {
	info, err := root.FS.Stat(name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
