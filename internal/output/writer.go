package output

import (
	"os"

	"golang.org/x/sys/unix"
)

// Writer writes formatted output to stdout, using writev for batching.
type Writer struct {
	fd int
}

// NewWriter creates a Writer that writes to stdout.
func NewWriter() *Writer {
	return &Writer{fd: int(os.Stdout.Fd())}
}

// Write writes the given bytes to stdout using writev for scatter-gather I/O.
func (w *Writer) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	for len(data) > 0 {
		iovs := [][]byte{data}
		n, err := unix.Writev(w.fd, iovs)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// OrderedWriter receives chunks from a channel and writes them in sequence order.
// This ensures output is deterministic even with parallel workers.
type OrderedWriter struct {
	writer    *Writer
	formatter Formatter
	multiFile bool
}

// NewOrderedWriter creates an OrderedWriter.
func NewOrderedWriter(w *Writer, f Formatter, multiFile bool) *OrderedWriter {
	return &OrderedWriter{
		writer:    w,
		formatter: f,
		multiFile: multiFile,
	}
}

// WriteOrdered consumes chunks from the channel, buffering out-of-order chunks
// and writing them in sequence-number order.
func (ow *OrderedWriter) WriteOrdered(chunks <-chan Chunk, onData func()) {
	nextSeq := 1
	pending := make(map[int]Chunk)

	for c := range chunks {
		if c.Err == nil && c.HasData() {
			if onData != nil {
				onData()
			}
		}

		if c.SeqNum == nextSeq {
			ow.writeChunk(c)
			nextSeq++
			// Flush any consecutive pending chunks
			for {
				if p, ok := pending[nextSeq]; ok {
					ow.writeChunk(p)
					delete(pending, nextSeq)
					nextSeq++
				} else {
					break
				}
			}
		} else {
			pending[c.SeqNum] = c
		}
	}
}

func (ow *OrderedWriter) writeChunk(c Chunk) {
	if c.Err != nil {
		return
	}
	data := ow.formatter.Format(nil, c, ow.multiFile)
	ow.writer.Write(data)
}
