package action

import (
	"context"
	"fmt"
)

// Print writes the prompt text followed by a newline.
type Print struct {
	params Params
	env    Env
}

func newPrint(params Params, env Env) Action {
	return &Print{params: params, env: env}
}

func (p *Print) Execute(_ context.Context) error {
	_, err := fmt.Fprintln(p.env.stdout(), p.params.Prompt.String())
	return err
}
