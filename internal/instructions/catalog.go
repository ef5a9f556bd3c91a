package instructions

import (
	"path"
	"slices"
	"strings"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/logging"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Catalog discovers what the instruction roots provide.
type Catalog struct {
	roots []Root
}

// NewCatalog creates a catalog over roots.
func NewCatalog(roots ...Root) *Catalog {
	return &Catalog{roots: roots}
}

// Filetypes returns the filetype names available to cmd: the stems of the
// markdown files in default/<capability>/ and commands/<cmd>/<capability>/
// for each capability of cmd. Names starting with "_" are skipped.
func (c *Catalog) Filetypes(cmd command.Command) []string {
	var patterns []string
	for _, capability := range cmd.Capabilities() {
		patterns = append(patterns,
			path.Join("default", string(capability), "*.md"),
			path.Join("commands", cmd.String(), string(capability), "*.md"),
		)
	}
	return c.stems(patterns)
}

// CapabilityFiletypes returns, for a capability, the filetype names found
// in any command or default directory.
func (c *Catalog) CapabilityFiletypes(capability command.Capability) []string {
	return c.stems([]string{
		path.Join("default", string(capability), "*.md"),
		path.Join("commands", "*", string(capability), "*.md"),
	})
}

// Commands returns the names of the command directories present in any root.
func (c *Catalog) Commands() []string {
	var names []string
	for _, root := range c.roots {
		entries, err := afero.ReadDir(root.FS, "commands")
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() && !slices.Contains(names, entry.Name()) {
				names = append(names, entry.Name())
			}
		}
	}
	slices.Sort(names)
	return names
}

func (c *Catalog) stems(patterns []string) []string {
	var names []string
	for _, root := range c.roots {
		fsys := afero.NewIOFS(root.FS)
		for _, pattern := range patterns {
			matches, err := doublestar.Glob(fsys, pattern)
			if err != nil {
				logging.Debug().Err(err).Str("root", root.Dir).Str("pattern", pattern).Msg("glob failed")
				continue
			}
			for _, match := range matches {
				name := strings.TrimSuffix(path.Base(match), ".md")
				if strings.HasPrefix(name, "_") || !isFile(root, match) {
					continue
				}
				if !slices.Contains(names, name) {
					names = append(names, name)
				}
			}
		}
	}
	slices.Sort(names)
	return names
}
