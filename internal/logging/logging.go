// Package logging provides structured logging using zerolog.
//
// The process configures logging exactly once by calling Init. Until then
// Logger writes warnings and above to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger = zerolog.New(os.Stderr).Level(WarnLevel).With().Timestamp().Logger()

// Level represents log levels.
type Level = zerolog.Level

// Log levels exposed for convenience.
const (
	DebugLevel    = zerolog.DebugLevel
	InfoLevel     = zerolog.InfoLevel
	WarnLevel     = zerolog.WarnLevel
	ErrorLevel    = zerolog.ErrorLevel
	CriticalLevel = zerolog.FatalLevel
	Disabled      = zerolog.Disabled
)

// LevelNames lists the accepted level names in increasing severity.
var LevelNames = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level
	// Output is where console logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Pretty enables human-readable console output.
	Pretty bool
	// TimeFormat specifies the time format. Defaults to RFC3339.
	TimeFormat string
	// File is an optional path; when set, records are also appended to it as JSON lines.
	File string
	// Quiet suppresses all output regardless of Level.
	Quiet bool
	// Fields are attached to every record.
	Fields map[string]string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Level:      WarnLevel,
		Output:     os.Stderr,
		Pretty:     true,
		TimeFormat: time.RFC3339,
	}
}

var (
	mu       sync.Mutex
	logFile  *os.File
	filePath string
)

// Init configures the global logger. It closes a log file opened by a
// previous call.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	closeFile()

	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	if cfg.Quiet {
		Logger = zerolog.Nop()
		return nil
	}

	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			TimeFormat: cfg.TimeFormat,
		}
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		filePath = cfg.File
		output = zerolog.MultiLevelWriter(output, f)
	}

	ctx := zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp()
	for k, v := range cfg.Fields {
		ctx = ctx.Str(k, v)
	}
	Logger = ctx.Logger()
	return nil
}

// Close closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFile()
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	filePath = ""
	return err
}

// FilePath returns the path of the open log file or "".
func FilePath() string {
	mu.Lock()
	defer mu.Unlock()
	return filePath
}

// ParseLevel parses a log level name (case-insensitive).
// Supported values: DEBUG, INFO, WARN/WARNING, ERROR, CRITICAL/FATAL.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return CriticalLevel, nil
	default:
		return WarnLevel, fmt.Errorf("invalid log level %q (choose from %s)", level, strings.Join(LevelNames, ", "))
	}
}

// Debug starts a new debug level log message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts a new info level log message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a new warn level log message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts a new error level log message.
func Error() *zerolog.Event {
	return Logger.Error()
}

// With creates a child logger with the given fields.
func With() zerolog.Context {
	return Logger.With()
}
