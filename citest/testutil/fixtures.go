package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
)

// RandomString generates a random string of n characters
func RandomString(n int) string {
	bytes := make([]byte, n/2+1)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)[:n]
}

// sandboxEnv lists the variables a Sandbox overrides.
var sandboxEnv = []string{
	"HOME",
	"XDG_CONFIG_HOME",
	"XDG_DATA_HOME",
	"XDG_STATE_HOME",
	"PROMPTS_CONFIG",
	"PROMPTS_INSTRUCTIONS",
	"PROMPTS_ACTION",
	"PROMPTS_LOG_LEVEL",
	"PROMPTS_ASSISTANT",
}

// Sandbox is a throwaway HOME and working directory. While it is active the
// process works inside Work and no user configuration is visible.
type Sandbox struct {
	Home string
	Work string

	prevDir string
	prevEnv map[string]*string
}

// NewSandbox creates the directories, points the environment at them and
// changes into Work. Call Cleanup to undo all of it.
func NewSandbox() (*Sandbox, error) {
	prevDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	home, err := os.MkdirTemp("", "prompts-home-*")
	if err != nil {
		return nil, err
	}
	work, err := os.MkdirTemp("", "prompts-work-*")
	if err != nil {
		os.RemoveAll(home)
		return nil, err
	}

	s := &Sandbox{Home: home, Work: work, prevDir: prevDir, prevEnv: make(map[string]*string)}
	for _, key := range sandboxEnv {
		s.track(key)
		os.Unsetenv(key)
	}
	os.Setenv("HOME", home)
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	os.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	os.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	if err := os.Chdir(work); err != nil {
		s.Cleanup()
		return nil, err
	}
	return s, nil
}

// track remembers the current value of key so Cleanup can restore it.
func (s *Sandbox) track(key string) {
	if _, ok := s.prevEnv[key]; ok {
		return
	}
	if v, ok := os.LookupEnv(key); ok {
		s.prevEnv[key] = &v
	} else {
		s.prevEnv[key] = nil
	}
}

// Setenv sets a variable until Cleanup.
func (s *Sandbox) Setenv(key, value string) {
	s.track(key)
	os.Setenv(key, value)
}

// WriteFile creates name below Work, with parent directories, and returns
// its absolute path.
func (s *Sandbox) WriteFile(name, content string) (string, error) {
	return writeFile(filepath.Join(s.Work, name), content, 0o644)
}

// WriteScript creates an executable shell script below Work.
func (s *Sandbox) WriteScript(name, body string) (string, error) {
	return writeFile(filepath.Join(s.Work, name), "#!/bin/sh\n"+body, 0o755)
}

// ConfigDir returns the prompts directory below XDG_CONFIG_HOME.
func (s *Sandbox) ConfigDir() string {
	return filepath.Join(s.Home, ".config", "prompts")
}

// Cleanup restores the environment and working directory and removes the
// sandbox directories.
func (s *Sandbox) Cleanup() {
	os.Chdir(s.prevDir)
	for key, v := range s.prevEnv {
		if v == nil {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, *v)
		}
	}
	os.RemoveAll(s.Work)
	os.RemoveAll(s.Home)
}

// SupportsShellScripts reports whether WriteScript output can be executed.
func SupportsShellScripts() bool {
	return runtime.GOOS != "windows"
}

func writeFile(path, content string, mode os.FileMode) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAt creates the file at an absolute path, with parent directories.
func WriteFileAt(path, content string) (string, error) {
	return writeFile(path, content, 0o644)
}
