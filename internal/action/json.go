package action

import (
	"context"
	"encoding/json"
)

// Record is the object written by the json action.
type Record struct {
	Command    string   `json:"command"`
	Files      []string `json:"files"`
	Filetype   string   `json:"filetype"`
	Prompt     string   `json:"prompt"`
	UserPrompt string   `json:"userprompt"`
}

// JSON writes a Record as a single line.
type JSON struct {
	params Params
	env    Env
}

func newJSON(params Params, env Env) Action {
	return &JSON{params: params, env: env}
}

// Record builds the object Execute writes.
func (j *JSON) Record() Record {
	files := j.params.Files
	if files == nil {
		files = []string{}
	}
	return Record{
		Command:    j.params.Command.String(),
		Files:      files,
		Filetype:   j.params.Filetype,
		Prompt:     j.params.Prompt.String(),
		UserPrompt: j.params.UserPrompt,
	}
}

func (j *JSON) Execute(_ context.Context) error {
	enc := json.NewEncoder(j.env.stdout())
	enc.SetEscapeHTML(false)
	return enc.Encode(j.Record())
}
