package event

import "time"

// RunStartedData is the data for run.started events.
type RunStartedData struct {
	Command string   `json:"command"`
	Action  string   `json:"action"`
	Files   []string `json:"files"`
}

// PromptAssembledData is the data for prompt.assembled events.
type PromptAssembledData struct {
	Command string `json:"command"`
	// Empty lists the fragment keys that resolved to the empty string.
	Empty []string `json:"empty,omitempty"`
	Bytes int      `json:"bytes"`
}

// ProcessStartedData is the data for process.started events.
type ProcessStartedData struct {
	Argv []string `json:"argv"`
	Pid  int      `json:"pid"`
}

// ProcessExitedData is the data for process.exited events.
type ProcessExitedData struct {
	Argv     []string      `json:"argv"`
	ExitCode int           `json:"exitCode"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// InstructionsChangedData is the data for instructions.changed events.
type InstructionsChangedData struct {
	Path string `json:"path"`
	Op   string `json:"op"`
}
