// Package rawfile provides unbuffered, read-only access to a file or pipe
// port. Each operation maps to exactly one system call: no fill loops, no
// retries, no caching. The caller owns the handle lifecycle.
package rawfile

import (
	"golang.org/x/sys/unix"

	"github.com/dl/rpipe/internal/diag"
)

// Handle is an open file descriptor as returned by Open. It is valid from a
// successful Open until the matching Close and must be closed exactly once.
// Use after close is a caller error and is not detected here; the operating
// system's verdict is passed through unchanged.
type Handle int

// Reader opens ports and performs single-syscall reads on them. Distinct
// handles may be used from separate goroutines; a single handle must not be
// shared without external synchronization. Reader itself holds no per-handle
// state and performs no locking.
type Reader struct {
	sink *diag.Sink
}

// New creates a Reader reporting each operation to sink. A nil sink defaults
// to stdout, the historical destination of the pipe-port diagnostics.
func New(sink *diag.Sink) *Reader {
	if sink == nil {
		sink = diag.Default()
	}
	return &Reader{sink: sink}
}

// Open opens path for read-only access with O_DSYNC.
//
// O_DSYNC has no effect on a read-only descriptor on Linux; it is requested
// anyway because some character devices validate the full flag set at open
// time, and the pipe-port contract has always carried it. The diagnostic
// line is emitted before the result is known.
func (r *Reader) Open(path string) (Handle, error) {
	r.sink.OpenAttempt(path)
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DSYNC, 0)
	if err != nil {
		return -1, &OpenError{Path: path, Errno: errnoOf(err)}
	}
	return Handle(fd), nil
}

// Read issues exactly one read system call for up to len(p) bytes. n may be
// zero (end of stream) or less than len(p) (short read); neither is an
// error. Read does not loop to fill p and does not retry.
func (r *Reader) Read(h Handle, p []byte) (int, error) {
	n, err := unix.Read(int(h), p)
	if err != nil {
		r.sink.ReadFailed(err)
		return 0, &ReadError{Errno: errnoOf(err)}
	}
	r.sink.ReadDone(n)
	return n, nil
}

// Close releases the handle with exactly one close system call. Closing a
// handle twice surfaces whatever the operating system reports for the second
// call; no bookkeeping guards against it.
func (r *Reader) Close(h Handle) error {
	r.sink.Closed()
	if err := unix.Close(int(h)); err != nil {
		return &CloseError{Errno: errnoOf(err)}
	}
	return nil
}
