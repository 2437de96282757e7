// Package follow tails a single port using raw inotify + epoll, draining
// newly appended bytes through unbuffered port reads after each event.
package follow

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/dl/rpipe/internal/rawfile"
)

// Chunk is a run of bytes drained from the followed port.
type Chunk struct {
	Path string
	Data []byte
	Err  error
}

// Follower watches one path for modifications and reads appended data
// through a single open port handle, so draining stays sequential and
// unbuffered. The handle's position is the only offset state.
type Follower struct {
	inotifyFd int
	epollFd   int
	reader    *rawfile.Reader
	handle    rawfile.Handle
	path      string
	buf       []byte
	done      chan struct{}
}

// New opens path through r and registers it with inotify. bufSize bounds the
// byte count requested per read call.
func New(r *rawfile.Reader, path string, bufSize int) (*Follower, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	h, err := r.Open(absPath)
	if err != nil {
		return nil, err
	}

	ifd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		r.Close(h)
		return nil, fmt.Errorf("inotify_init1: %w", err)
	}

	efd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		unix.Close(ifd)
		r.Close(h)
		return nil, fmt.Errorf("epoll_create1: %w", err)
	}

	// Register inotify fd with epoll
	event := unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(ifd),
	}
	if err := unix.EpollCtl(efd, unix.EPOLL_CTL_ADD, ifd, &event); err != nil {
		unix.Close(efd)
		unix.Close(ifd)
		r.Close(h)
		return nil, fmt.Errorf("epoll_ctl: %w", err)
	}

	mask := uint32(unix.IN_MODIFY | unix.IN_MOVE_SELF | unix.IN_DELETE_SELF)
	if _, err := unix.InotifyAddWatch(ifd, absPath, mask); err != nil {
		unix.Close(efd)
		unix.Close(ifd)
		r.Close(h)
		return nil, fmt.Errorf("inotify_add_watch %s: %w", absPath, err)
	}

	return &Follower{
		inotifyFd: ifd,
		epollFd:   efd,
		reader:    r,
		handle:    h,
		path:      absPath,
		buf:       make([]byte, bufSize),
		done:      make(chan struct{}),
	}, nil
}

// Chunks returns a channel of port data. Bytes already present at open are
// drained first. The channel closes when the followed file is removed or
// Close is called.
func (f *Follower) Chunks() <-chan Chunk {
	ch := make(chan Chunk, 16)
	go func() {
		defer close(ch)

		// Existing content first
		if !f.drain(ch) {
			return
		}

		buf := make([]byte, 4096)
		events := make([]unix.EpollEvent, 1)

		for {
			select {
			case <-f.done:
				return
			default:
			}

			// Wait for events with 100ms timeout
			n, err := unix.EpollWait(f.epollFd, events, 100)
			if err != nil {
				if err == unix.EINTR {
					continue
				}
				ch <- Chunk{Path: f.path, Err: fmt.Errorf("epoll_wait: %w", err)}
				return
			}
			if n == 0 {
				continue
			}

			nbytes, err := unix.Read(f.inotifyFd, buf)
			if err != nil {
				if err == unix.EAGAIN {
					continue
				}
				ch <- Chunk{Path: f.path, Err: fmt.Errorf("read inotify: %w", err)}
				return
			}

			removed := parseRemoved(buf[:nbytes])
			if !f.drain(ch) {
				return
			}
			if removed {
				return
			}
		}
	}()
	return ch
}

// drain reads until the port reports end of stream. Returns false when the
// event loop should stop.
func (f *Follower) drain(ch chan<- Chunk) bool {
	for {
		n, err := f.reader.Read(f.handle, f.buf)
		if err != nil {
			ch <- Chunk{Path: f.path, Err: err}
			return false
		}
		if n == 0 {
			return true
		}
		cp := make([]byte, n)
		copy(cp, f.buf[:n])
		ch <- Chunk{Path: f.path, Data: cp}
	}
}

// inotify event header layout:
//
//	int32  wd       (offset 0)
//	uint32 mask     (offset 4)
//	uint32 cookie   (offset 8)
//	uint32 len      (offset 12)
//	char   name[]   (offset 16)
const inotifyEventSize = 16

// parseRemoved scans an inotify event buffer for events that end the follow.
func parseRemoved(buf []byte) bool {
	offset := 0
	removed := false
	for offset+inotifyEventSize <= len(buf) {
		mask := binary.LittleEndian.Uint32(buf[offset+4:])
		nameLen := int(binary.LittleEndian.Uint32(buf[offset+12:]))
		offset += inotifyEventSize + nameLen

		if mask&(unix.IN_DELETE_SELF|unix.IN_MOVE_SELF) != 0 {
			removed = true
		}
	}
	return removed
}

// Close stops the follower and releases the event fds and the port handle.
func (f *Follower) Close() error {
	close(f.done)
	unix.Close(f.epollFd)
	unix.Close(f.inotifyFd)
	return f.reader.Close(f.handle)
}
