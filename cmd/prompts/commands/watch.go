package commands

import (
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/BartSte/bartste-prompts/internal/action"
	"github.com/BartSte/bartste-prompts/internal/instructions"
	"github.com/BartSte/bartste-prompts/internal/logging"
)

// watch re-assembles the prompt whenever an instruction file changes and
// executes the action again when the text differs. It returns when ctx is
// done.
func (a *app) watch(
	ctx context.Context,
	roots []instructions.Root,
	assembler *instructions.Assembler,
	req instructions.Request,
	prompt instructions.Prompt,
	actionName string,
	env action.Env,
) error {
	w, err := instructions.NewWatcher(roots, a.bus)
	if err != nil {
		return err
	}
	w.Start()
	defer w.Stop()

	logging.Info().Msg("Watching instructions, press Ctrl-C to stop")

	last := prompt.String()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes():
		}

		next, err := a.assemble(assembler, req)
		if err != nil {
			logging.Error().Err(err).Msg("Failed to assemble prompt")
			continue
		}
		text := next.String()
		if text == last {
			continue
		}

		logging.Info().Str("diff", promptDiff(last, text)).Msg("Prompt changed")
		last = text

		if err := execute(ctx, actionName, params(req, next), env); err != nil {
			return err
		}
	}
}

// promptDiff renders a line diff of two prompts with "+" and "-" markers.
func promptDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return sb.String()
}
