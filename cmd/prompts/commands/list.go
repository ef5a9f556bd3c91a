package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/BartSte/bartste-prompts/internal/action"
	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/BartSte/bartste-prompts/internal/instructions"
)

// Listing is the output of the list command.
type Listing struct {
	Commands  []CommandInfo       `json:"commands" yaml:"commands"`
	Filetypes map[string][]string `json:"filetypes" yaml:"filetypes"`
	Actions   []ActionInfo        `json:"actions" yaml:"actions"`
}

// CommandInfo describes one command.
type CommandInfo struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
	Filetypes    []string `json:"filetypes" yaml:"filetypes"`
}

// ActionInfo describes one action.
type ActionInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List commands, filetypes and actions",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			listing := buildListing(instructions.NewCatalog(a.roots()...))

			var (
				data []byte
				err  error
			)
			if asJSON {
				data, err = json.MarshalIndent(listing, "", "  ")
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(listing)
			}
			if err != nil {
				return fmt.Errorf("failed to encode listing: %w", err)
			}

			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}

	c.Flags().BoolVar(&asJSON, "json", false, "Output JSON instead of YAML")
	return c
}

func buildListing(catalog *instructions.Catalog) Listing {
	listing := Listing{Filetypes: make(map[string][]string)}

	for _, cmd := range command.All() {
		caps := make([]string, 0, len(cmd.Capabilities()))
		for _, c := range cmd.Capabilities() {
			caps = append(caps, string(c))
		}
		filetypes := catalog.Filetypes(cmd)
		if filetypes == nil {
			filetypes = []string{}
		}
		listing.Commands = append(listing.Commands, CommandInfo{
			Name:         cmd.String(),
			Description:  cmd.Description(),
			Capabilities: caps,
			Filetypes:    filetypes,
		})
	}

	for _, capability := range command.AllCapabilities() {
		listing.Filetypes[string(capability)] = catalog.CapabilityFiletypes(capability)
	}

	for _, name := range action.Names() {
		listing.Actions = append(listing.Actions, ActionInfo{Name: name, Description: action.Description(name)})
	}

	return listing
}
