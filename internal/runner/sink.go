package runner

import (
	"io"
	"sync"
)

// Stream identifies which pipe of the child a line came from.
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// Sink receives the child's output one line at a time. Lines have their
// terminator removed. WriteLine is called from two goroutines.
type Sink interface {
	WriteLine(stream Stream, line string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(stream Stream, line string) error

// WriteLine calls f.
func (f SinkFunc) WriteLine(stream Stream, line string) error {
	return f(stream, line)
}

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

// WriterSink writes every line, from either stream, to w followed by a
// newline. Writes are serialized so lines never interleave.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

func (s *writerSink) WriteLine(_ Stream, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, line+"\n")
	return err
}

type splitSink struct {
	out Sink
	err Sink
}

// SplitSink routes stdout lines to out and stderr lines to errOut.
func SplitSink(out, errOut io.Writer) Sink {
	return &splitSink{out: WriterSink(out), err: WriterSink(errOut)}
}

func (s *splitSink) WriteLine(stream Stream, line string) error {
	if stream == Stderr {
		return s.err.WriteLine(stream, line)
	}
	return s.out.WriteLine(stream, line)
}
