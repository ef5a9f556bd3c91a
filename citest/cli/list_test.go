package cli_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/BartSte/bartste-prompts/citest/testutil"
)

var _ = Describe("Introspection", func() {
	It("should list commands, filetypes and actions as YAML", func() {
		res := testutil.RunCLI("list")
		Expect(res.Err).NotTo(HaveOccurred())

		var listing map[string]any
		Expect(yaml.Unmarshal([]byte(res.Stdout), &listing)).To(Succeed())
		Expect(listing).To(HaveKey("commands"))
		Expect(listing).To(HaveKey("filetypes"))
		Expect(listing).To(HaveKey("actions"))
		Expect(res.Stdout).To(ContainSubstring("name: unittests"))
	})

	It("should list as JSON with --json", func() {
		res := testutil.RunCLI("list", "--json")
		Expect(res.Err).NotTo(HaveOccurred())

		var listing struct {
			Filetypes map[string][]string `json:"filetypes"`
		}
		Expect(json.Unmarshal([]byte(res.Stdout), &listing)).To(Succeed())
		Expect(listing.Filetypes["edit"]).To(ContainElements("default", "go", "python"))
	})

	It("should show where each fragment is read from", func() {
		res := testutil.RunCLI("debug", "paths", "docstrings", "-f", "python")
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Stdout).To(ContainSubstring("* <builtin>/commands/docstrings/edit/python.md"))
	})

	It("should print the merged configuration", func() {
		sandbox.Setenv("PROMPTS_ACTION", "json")

		res := testutil.RunCLI("debug", "config")
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Stdout).To(ContainSubstring(`"action": "json"`))
	})
})
