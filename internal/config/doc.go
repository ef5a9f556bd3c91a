// Package config provides configuration loading, merging, and path management for prompts.
//
// # Configuration Loading
//
// Load merges configuration from these sources, later ones winning:
//
//  1. Global config ($XDG_CONFIG_HOME/prompts/prompts.json or prompts.jsonc)
//  2. Project config in the working directory (.prompts.json, .prompts.jsonc,
//     .prompts/prompts.json, .prompts/prompts.jsonc)
//  3. The file named by PROMPTS_CONFIG
//  4. Environment variables
//
// Files may contain comments and trailing commas; they are normalized with
// tidwall/jsonc before decoding.
//
// # Variable Interpolation
//
//   - {env:VAR_NAME} expands to an environment variable value
//   - {file:path} expands to file contents with the trailing newline removed
//
// Relative paths (instruction roots, logFile, assistant.envFile and {file:}
// references) are resolved against the directory of the file that names them.
//
// Example:
//
//	{
//	  // project specific instructions override the built-in ones
//	  "instructions": ["./prompts"],
//	  "action": "aider",
//	  "assistant": {
//	    "program": "aider",
//	    "args": ["--model", "{env:AIDER_MODEL}"],
//	    "envFile": ".env",
//	  },
//	}
//
// # Merging
//
// Scalars are overwritten when a later source sets them; "strict": false
// switches off a strict mode enabled earlier. Instruction roots of a later source are placed in
// front of earlier ones so that the most specific configuration is consulted
// first.
//
// # Environment Variable Overrides
//
//   - PROMPTS_INSTRUCTIONS - list of instruction roots (os.PathListSeparator separated)
//   - PROMPTS_ACTION - default action
//   - PROMPTS_LOG_LEVEL - default log level
//   - PROMPTS_ASSISTANT - assistant program
//
// # Path Management
//
// Paths follows the XDG Base Directory Specification. The directory
// $XDG_CONFIG_HOME/prompts/instructions is used as an instruction root when it
// exists.
package config
