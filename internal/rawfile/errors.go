package rawfile

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// OpenError reports a failed open. Errno is the operating system error code,
// untranslated; it is also reachable through errors.Is/As via Unwrap.
type OpenError struct {
	Path  string
	Errno unix.Errno
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Errno)
}

func (e *OpenError) Unwrap() error { return e.Errno }

// ReadError reports a failed read, wrapping the raw error code.
type ReadError struct {
	Errno unix.Errno
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read: %v", e.Errno)
}

func (e *ReadError) Unwrap() error { return e.Errno }

// CloseError reports a failed close, wrapping the raw error code.
type CloseError struct {
	Errno unix.Errno
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("close: %v", e.Errno)
}

func (e *CloseError) Unwrap() error { return e.Errno }

// errnoOf extracts the raw errno from an x/sys/unix error.
func errnoOf(err error) unix.Errno {
	var e unix.Errno
	if errors.As(err, &e) {
		return e
	}
	return 0
}
