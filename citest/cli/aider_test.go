package cli_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BartSte/bartste-prompts/citest/testutil"
	"github.com/BartSte/bartste-prompts/internal/runner"
)

const fakeAider = `echo "argc=$#"
echo "first=$1"
for last; do :; done
echo "last=$last"
echo "warning from assistant" >&2
exit "${FAKE_AIDER_EXIT:-0}"
`

var _ = Describe("Aider Action", func() {
	BeforeEach(func() {
		if !testutil.SupportsShellScripts() {
			Skip("shell scripts are not executable on this platform")
		}
		script, err := sandbox.WriteScript("bin/fake-aider", fakeAider)
		Expect(err).NotTo(HaveOccurred())
		sandbox.Setenv("PROMPTS_ASSISTANT", script)
	})

	It("should pass the fixed flags, the message and the files", func() {
		res := testutil.RunCLI("fix", "a.py", "b.py", "-a", "aider")
		Expect(res.Err).NotTo(HaveOccurred())

		Expect(res.Stdout).To(ContainSubstring("argc=7\n"))
		Expect(res.Stdout).To(ContainSubstring("first=--yes-always\n"))
		Expect(res.Stdout).To(ContainSubstring("last=b.py\n"))
		Expect(res.Stderr).To(ContainSubstring("warning from assistant"))
	})

	It("should insert configured arguments before the message", func() {
		_, err := sandbox.WriteFile(".prompts.json", `{"assistant": {"args": ["--model", "sonnet"]}}`)
		Expect(err).NotTo(HaveOccurred())

		res := testutil.RunCLI("fix", "a.py", "-a", "aider")
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Stdout).To(ContainSubstring("argc=8\n"))
	})

	It("should exit with the assistant's exit code", func() {
		_, err := sandbox.WriteFile(".env", "FAKE_AIDER_EXIT=3\n")
		Expect(err).NotTo(HaveOccurred())
		_, err = sandbox.WriteFile(".prompts.json", `{"assistant": {"envFile": ".env"}}`)
		Expect(err).NotTo(HaveOccurred())

		res := testutil.RunCLI("fix", "a.py", "-a", "aider")
		Expect(res.Err).To(HaveOccurred())
		Expect(runner.IsInvocationError(res.Err)).To(BeTrue())
		Expect(res.ExitCode).To(Equal(3))
	})

	It("should print the command line on --dry-run without running it", func() {
		res := testutil.RunCLI("explain", "a.py", "-a", "aider", "--dry-run")
		Expect(res.Err).NotTo(HaveOccurred())
		Expect(res.Stdout).NotTo(ContainSubstring("argc="))
		Expect(res.Stdout).To(ContainSubstring("--message $'/ask "))
	})
})
