package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BartSte/bartste-prompts/internal/event"
	"github.com/BartSte/bartste-prompts/internal/logging"
)

// DefaultGracePeriod is how long a cancelled child may take to exit after
// the interrupt before it is killed.
const DefaultGracePeriod = 5 * time.Second

// Runner starts programs and forwards their output to Sink.
type Runner struct {
	// Sink receives every output line of both streams. When nil, all lines
	// go to os.Stdout.
	Sink Sink
	// Env is the child environment. When nil the child inherits ours.
	Env []string
	// Dir is the working directory of the child. Empty means ours.
	Dir string
	// Bus receives process.started and process.exited events. May be nil.
	Bus *event.Bus
	// GracePeriod overrides DefaultGracePeriod when positive.
	GracePeriod time.Duration
}

// New creates a Runner writing to sink.
func New(sink Sink) *Runner {
	return &Runner{Sink: sink}
}

// Run starts argv[0] with the remaining arguments and blocks until the
// child has exited and both of its output streams are fully drained.
//
// A non-zero exit status, a failure to start, and cancellation of ctx are
// all reported as *InvocationError. A Sink error does not stop draining;
// the first one is returned after the child exits successfully.
//
// When ctx is cancelled the child is interrupted and killed once the grace
// period has passed. Both pipes are read to EOF before the child is waited
// for, so a background grandchild that inherited them keeps Run blocked
// after the child itself has exited.
func (r *Runner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return &InvocationError{Argv: argv, ExitCode: -1, Err: ErrEmptyArgv}
	}

	sink := r.Sink
	if sink == nil {
		sink = WriterSink(os.Stdout)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.Env
	cmd.Cancel = func() error {
		if runtime.GOOS == "windows" {
			return cmd.Process.Kill()
		}
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = r.gracePeriod()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &InvocationError{Argv: argv, ExitCode: -1, Err: fmt.Errorf("failed to create stdout pipe: %w", err)}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &InvocationError{Argv: argv, ExitCode: -1, Err: fmt.Errorf("failed to create stderr pipe: %w", err)}
	}

	logging.Debug().Str("command", Quote(argv)).Str("dir", r.Dir).Msg("Starting process")

	start := time.Now()
	if err := cmd.Start(); err != nil {
		logging.Debug().Err(err).Str("program", argv[0]).Msg("Failed to start process")
		return &InvocationError{Argv: argv, ExitCode: -1, Err: err}
	}

	r.Bus.PublishSync(event.Event{
		Type: event.ProcessStarted,
		Data: event.ProcessStartedData{Argv: argv, Pid: cmd.Process.Pid},
	})

	var g errgroup.Group
	g.Go(func() error { return drain(stdout, Stdout, sink) })
	g.Go(func() error { return drain(stderr, Stderr, sink) })
	sinkErr := g.Wait()

	waitErr := cmd.Wait()
	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	var result error
	switch {
	case ctx.Err() != nil:
		result = &InvocationError{Argv: argv, ExitCode: exitCode, Err: ctx.Err()}
	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		result = &InvocationError{Argv: argv, ExitCode: exitCode, Err: waitErr}
	case sinkErr != nil:
		result = fmt.Errorf("failed to forward output of %s: %w", argv[0], sinkErr)
	}

	duration := time.Since(start)
	data := event.ProcessExitedData{Argv: argv, ExitCode: exitCode, Duration: duration}
	if result != nil {
		data.Error = result.Error()
	}
	r.Bus.PublishSync(event.Event{Type: event.ProcessExited, Data: data})

	logging.Debug().
		Str("program", argv[0]).
		Int("exitCode", exitCode).
		Dur("duration", duration).
		Msg("Process exited")

	return result
}

func (r *Runner) gracePeriod() time.Duration {
	if r.GracePeriod > 0 {
		return r.GracePeriod
	}
	return DefaultGracePeriod
}

// drain reads rd until EOF, handing each line to sink. It keeps reading
// after a sink error so the child never blocks on a full pipe, and returns
// the first such error.
func drain(rd io.Reader, stream Stream, sink Sink) error {
	br := bufio.NewReader(rd)
	var firstErr error
	for {
		raw, err := br.ReadBytes('\n')
		if len(raw) > 0 {
			if werr := sink.WriteLine(stream, decodeLine(raw)); werr != nil && firstErr == nil {
				firstErr = werr
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) && firstErr == nil {
				logging.Debug().Err(err).Str("stream", string(stream)).Msg("Read error")
			}
			return firstErr
		}
	}
}

// decodeLine strips the line terminator and replaces invalid UTF-8.
func decodeLine(raw []byte) string {
	line := strings.TrimSuffix(string(raw), "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.ToValidUTF8(line, "\uFFFD")
}
