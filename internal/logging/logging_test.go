package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != WarnLevel {
		t.Errorf("expected Level to be WarnLevel, got %v", cfg.Level)
	}
	if cfg.Output != os.Stderr {
		t.Errorf("expected Output to be os.Stderr")
	}
	if cfg.TimeFormat != time.RFC3339 {
		t.Errorf("expected TimeFormat to be RFC3339, got %s", cfg.TimeFormat)
	}
	if cfg.File != "" {
		t.Errorf("expected no log file, got %s", cfg.File)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"DEBUG", DebugLevel, false},
		{"debug", DebugLevel, false},
		{"  DEBUG  ", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"WARN", WarnLevel, false},
		{"WARNING", WarnLevel, false},
		{"warning", WarnLevel, false},
		{"ERROR", ErrorLevel, false},
		{"CRITICAL", CriticalLevel, false},
		{"critical", CriticalLevel, false},
		{"FATAL", CriticalLevel, false},
		{"unknown", WarnLevel, true},
		{"", WarnLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLevelNamesParse(t *testing.T) {
	for _, name := range LevelNames {
		if _, err := ParseLevel(name); err != nil {
			t.Errorf("level name %s should parse: %v", name, err)
		}
	}
}

func TestInitWithDefaults(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: InfoLevel, Output: &buf}); err != nil {
		t.Fatal(err)
	}

	Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("expected output to contain 'test message', got %s", output)
	}
	if !strings.Contains(output, "info") {
		t.Errorf("expected output to contain 'info' level, got %s", output)
	}
}

func TestInitWithPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: InfoLevel, Output: &buf, Pretty: true}); err != nil {
		t.Fatal(err)
	}

	Info().Msg("pretty test")

	if !strings.Contains(buf.String(), "pretty test") {
		t.Errorf("expected output to contain 'pretty test', got %s", buf.String())
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: WarnLevel, Output: &buf}); err != nil {
		t.Fatal(err)
	}

	Debug().Msg("debug message")
	Info().Msg("info message")
	Warn().Msg("warn message")
	Error().Msg("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug message should not appear when level is Warn")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should not appear when level is Warn")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should appear when level is Warn")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should appear when level is Warn")
	}
}

func TestQuiet(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: DebugLevel, Output: &buf, Quiet: true}); err != nil {
		t.Fatal(err)
	}

	Error().Msg("should be dropped")

	if buf.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %s", buf.String())
	}
}

func TestLogToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "prompts.log")

	var console bytes.Buffer
	if err := Init(Config{Level: InfoLevel, Output: &console, File: logPath}); err != nil {
		t.Fatal(err)
	}
	defer Close()

	Info().Msg("file log test")

	if FilePath() != logPath {
		t.Errorf("expected FilePath %s, got %s", logPath, FilePath())
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "file log test") {
		t.Errorf("log file should contain 'file log test', got: %s", string(content))
	}
	if !strings.Contains(console.String(), "file log test") {
		t.Errorf("console should also receive the record, got: %s", console.String())
	}
}

func TestLogToFileAppends(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "prompts.log")
	if err := os.WriteFile(logPath, []byte("existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(Config{Level: InfoLevel, Output: &bytes.Buffer{}, File: logPath}); err != nil {
		t.Fatal(err)
	}
	Info().Msg("appended")
	Close()

	content, _ := os.ReadFile(logPath)
	if !strings.HasPrefix(string(content), "existing\n") {
		t.Errorf("expected previous content to be kept, got: %s", string(content))
	}
}

func TestLogToFileInvalidPath(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "missing", "dir", "prompts.log")

	err := Init(Config{Level: InfoLevel, Output: &bytes.Buffer{}, File: logPath})
	if err == nil {
		t.Fatal("expected error for unwritable log path")
	}
	if !strings.Contains(err.Error(), "failed to open log file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClose(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "prompts.log")
	if err := Init(Config{Level: InfoLevel, Output: &bytes.Buffer{}, File: logPath}); err != nil {
		t.Fatal(err)
	}

	if FilePath() == "" {
		t.Fatal("expected log file path before close")
	}

	if err := Close(); err != nil {
		t.Fatal(err)
	}

	if FilePath() != "" {
		t.Error("expected empty log file path after close")
	}
}

func TestFields(t *testing.T) {
	var buf bytes.Buffer
	err := Init(Config{
		Level:  InfoLevel,
		Output: &buf,
		Fields: map[string]string{"run": "01HZX"},
	})
	if err != nil {
		t.Fatal(err)
	}

	Info().Msg("with run")

	if !strings.Contains(buf.String(), `"run":"01HZX"`) {
		t.Errorf("expected run field, got %s", buf.String())
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: InfoLevel, Output: &buf}); err != nil {
		t.Fatal(err)
	}

	childLogger := With().Str("component", "test").Logger()
	childLogger.Info().Msg("with context")

	output := buf.String()
	if !strings.Contains(output, `"component":"test"`) {
		t.Errorf("expected output to contain component field, got %s", output)
	}
}

func TestInitWithNilOutput(t *testing.T) {
	if err := Init(Config{Level: InfoLevel, Output: nil}); err != nil {
		t.Fatal(err)
	}
}
