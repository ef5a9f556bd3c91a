package cli_test

import (
	"encoding/json"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BartSte/bartste-prompts/citest/testutil"
)

var _ = Describe("Prompt Assembly", func() {
	Describe("Built-in instructions", func() {
		It("should print the fragments in order", func() {
			userPrompt := "be brief " + testutil.RandomString(8)
			res := testutil.RunCLI("fix", "a.py", "b.py", "-f", "python", "-u", userPrompt)
			Expect(res.Err).NotTo(HaveOccurred())

			files := strings.Index(res.Stdout, "Process the following files: a.py, b.py")
			cmd := strings.Index(res.Stdout, "Find and fix the bugs")
			filetype := strings.Index(res.Stdout, "The files are Python.")
			user := strings.Index(res.Stdout, userPrompt)

			Expect(files).To(BeNumerically(">=", 0))
			Expect(cmd).To(BeNumerically(">", files))
			Expect(filetype).To(BeNumerically(">", cmd))
			Expect(user).To(BeNumerically(">", filetype))
		})

		It("should never add filetype instructions to explain", func() {
			res := testutil.RunCLI("explain", "main.go", "-f", "go")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(ContainSubstring("Explain what the code in the files does."))
			Expect(res.Stdout).NotTo(ContainSubstring("The files are Go."))
		})

		It("should use the command specific filetype instruction first", func() {
			res := testutil.RunCLI("unittests", "x_test.go", "-f", "go")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(ContainSubstring("table-driven tests"))
			Expect(res.Stdout).NotTo(ContainSubstring("The files are Go."))
		})

		It("should emit one JSON record with the json action", func() {
			res := testutil.RunCLI("fix", "a.py", "b.py", "-f", "python", "-a", "json")
			Expect(res.Err).NotTo(HaveOccurred())

			var rec map[string]any
			Expect(json.Unmarshal([]byte(res.Stdout), &rec)).To(Succeed())
			Expect(rec).To(HaveLen(5))
			Expect(rec["files"]).To(ConsistOf("a.py", "b.py"))
			Expect(rec["prompt"]).To(ContainSubstring("Find and fix the bugs"))
			Expect(rec["userprompt"]).To(Equal(""))
		})
	})

	Describe("Instruction roots", func() {
		It("should prefer the user override directory over the built-in tree", func() {
			_, err := testutil.WriteFileAt(filepath.Join(sandbox.ConfigDir(), "instructions", "default", "files.md"), "FILES={files}")
			Expect(err).NotTo(HaveOccurred())

			res := testutil.RunCLI("fix", "a.py")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(HavePrefix("FILES=a.py\n"))
		})

		It("should resolve configured roots relative to the config file", func() {
			_, err := sandbox.WriteFile(".prompts.jsonc", `{
				// team instructions
				"instructions": ["./team"],
			}`)
			Expect(err).NotTo(HaveOccurred())
			_, err = sandbox.WriteFile("team/commands/fix/command.md", "Team fix for {files}.")
			Expect(err).NotTo(HaveOccurred())

			res := testutil.RunCLI("fix", "a.py")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(ContainSubstring("Team fix for a.py."))
		})

		It("should give --instructions the highest priority", func() {
			_, err := sandbox.WriteFile(".prompts.json", `{"instructions": ["team"]}`)
			Expect(err).NotTo(HaveOccurred())
			_, err = sandbox.WriteFile("team/commands/fix/command.md", "Team fix.")
			Expect(err).NotTo(HaveOccurred())
			mine, err := sandbox.WriteFile("mine/commands/fix/command.md", "My fix.")
			Expect(err).NotTo(HaveOccurred())

			res := testutil.RunCLI("--instructions", filepath.Dir(filepath.Dir(filepath.Dir(mine))), "fix")
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Stdout).To(ContainSubstring("My fix."))
			Expect(res.Stdout).NotTo(ContainSubstring("Team fix."))
		})

		It("should drop a fragment whose placeholder cannot be filled", func() {
			_, err := sandbox.WriteFile("odd/commands/fix/command.md", "Fix {unknown} now.")
			Expect(err).NotTo(HaveOccurred())

			res := testutil.RunCLI("--instructions", filepath.Join(sandbox.Work, "odd"), "fix", "-a", "json")
			Expect(res.Err).NotTo(HaveOccurred())

			var rec map[string]any
			Expect(json.Unmarshal([]byte(res.Stdout), &rec)).To(Succeed())
			Expect(rec["prompt"]).NotTo(ContainSubstring("{unknown}"))
			Expect(rec["prompt"]).NotTo(ContainSubstring("Find and fix"))
		})
	})

	Describe("Errors", func() {
		It("should reject an unknown command", func() {
			res := testutil.RunCLI("fixx")
			Expect(res.Err).To(HaveOccurred())
			Expect(res.Err.Error()).To(ContainSubstring(`unknown command "fixx"`))
			Expect(res.ExitCode).To(Equal(1))
		})

		It("should reject an unknown filetype with a suggestion", func() {
			res := testutil.RunCLI("fix", "-f", "pyhton")
			Expect(res.Err).To(MatchError(ContainSubstring(`did you mean "python"?`)))
			Expect(res.Stdout).To(BeEmpty())
		})

		It("should fail on an invalid config file", func() {
			_, err := sandbox.WriteFile(".prompts.json", `{"action": `)
			Expect(err).NotTo(HaveOccurred())

			res := testutil.RunCLI("fix")
			Expect(res.Err).To(MatchError(ContainSubstring("invalid config")))
		})
	})
})
