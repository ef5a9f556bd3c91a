// Package types holds value types shared between the configuration layer and the CLI.
package types

// Config represents the prompts configuration file.
type Config struct {
	// Schema reference (for editor support)
	Schema string `json:"$schema,omitempty"`

	// Extra instruction roots, highest priority first. They are consulted
	// before the built-in instructions.
	Instructions []string `json:"instructions,omitempty"`

	// Default action name ("print", "json" or "aider")
	Action string `json:"action,omitempty"`

	// Logging
	LogLevel string `json:"logLevel,omitempty"` // DEBUG|INFO|WARNING|ERROR|CRITICAL
	LogFile  string `json:"logFile,omitempty"`

	// Strict makes a missing command instruction a hard error. Nil means
	// unset, so a later source can switch it off again.
	Strict *bool `json:"strict,omitempty"`

	// External assistant invoked by the "aider" action
	Assistant *AssistantConfig `json:"assistant,omitempty"`
}

// AssistantConfig configures the external assistant process.
type AssistantConfig struct {
	// Program to execute; defaults to "aider".
	Program string `json:"program,omitempty"`
	// Args are appended after the fixed flags and before --message.
	Args []string `json:"args,omitempty"`
	// EnvFile is a dotenv file whose variables are added to the child's environment.
	EnvFile string `json:"envFile,omitempty"`
}

// Default values.
const (
	DefaultAction    = "print"
	DefaultLogLevel  = "WARNING"
	DefaultAssistant = "aider"
)

// ActionOrDefault returns the configured action or DefaultAction.
func (c *Config) ActionOrDefault() string {
	if c == nil || c.Action == "" {
		return DefaultAction
	}
	return c.Action
}

// LogLevelOrDefault returns the configured log level or DefaultLogLevel.
func (c *Config) LogLevelOrDefault() string {
	if c == nil || c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

// StrictEnabled reports whether strict mode is configured on.
func (c *Config) StrictEnabled() bool {
	return c != nil && c.Strict != nil && *c.Strict
}

// AssistantProgram returns the configured assistant program or DefaultAssistant.
func (c *Config) AssistantProgram() string {
	if c == nil || c.Assistant == nil || c.Assistant.Program == "" {
		return DefaultAssistant
	}
	return c.Assistant.Program
}
