// Package diag is the diagnostic sink for port operations. The pipe-port
// reader historically printed one free-text line per operation to the
// process-wide stdout stream; callers that need to redirect, silence, or
// structure that output inject a Sink instead.
package diag

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Sink emits one line per port operation. The text is free-form and carries
// no format guarantee; tools must not parse it.
type Sink struct {
	logger *log.Logger
}

// New creates a Sink writing to w.
func New(w io.Writer) *Sink {
	logger := log.NewWithOptions(w, log.Options{
		Level: log.InfoLevel,
	})
	return &Sink{logger: logger}
}

// Default returns a Sink on stdout, the historical destination.
func Default() *Sink {
	return New(os.Stdout)
}

// Nop returns a Sink that discards everything.
func Nop() *Sink {
	return New(io.Discard)
}

// With returns a Sink with extra key-value context attached to every line,
// e.g. a per-port correlation id.
func (s *Sink) With(kv ...any) *Sink {
	return &Sink{logger: s.logger.With(kv...)}
}

// OpenAttempt records an open of path. Called before the outcome is known,
// so the line appears whether or not the open succeeds.
func (s *Sink) OpenAttempt(path string) {
	s.logger.Info("opened for read", "path", path)
}

// ReadDone records the byte count of a completed read.
func (s *Sink) ReadDone(n int) {
	s.logger.Info("read", "bytes", n)
}

// ReadFailed records a failed read.
func (s *Sink) ReadFailed(err error) {
	s.logger.Info("read failed", "err", err)
}

// Closed records a close. Called before the outcome is known, matching the
// open-side behavior.
func (s *Sink) Closed() {
	s.logger.Info("closed")
}
