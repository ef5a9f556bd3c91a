package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used below the XDG base directories.
const AppName = "prompts"

// Paths contains the standard paths for prompts data.
type Paths struct {
	Config string // ~/.config/prompts
	Data   string // ~/.local/share/prompts
	State  string // ~/.local/state/prompts
}

// GetPaths returns the standard paths for prompts data.
func GetPaths() *Paths {
	return &Paths{
		Config: filepath.Join(getEnvOrDefault("XDG_CONFIG_HOME", defaultConfigHome()), AppName),
		Data:   filepath.Join(getEnvOrDefault("XDG_DATA_HOME", defaultDataHome()), AppName),
		State:  filepath.Join(getEnvOrDefault("XDG_STATE_HOME", defaultStateHome()), AppName),
	}
}

// InstructionsDir returns the user-override instruction root.
func (p *Paths) InstructionsDir() string {
	return filepath.Join(p.Config, "instructions")
}

// LogPath returns the suggested log file location.
func (p *Paths) LogPath() string {
	return filepath.Join(p.State, "prompts.log")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultDataHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share")
}

func defaultConfigHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func defaultStateHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	return filepath.Join(GetPaths().Config, "prompts.json")
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath(directory string) string {
	return filepath.Join(directory, ".prompts.json")
}
