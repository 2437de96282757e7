package cli

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dl/rpipe/internal/diag"
	"github.com/dl/rpipe/internal/follow"
	"github.com/dl/rpipe/internal/output"
	"github.com/dl/rpipe/internal/rawfile"
	"github.com/dl/rpipe/internal/scheduler"
)

// Run executes the dump with the given config.
// Returns exit code: 0 = data read, 1 = no data, 2 = error.
func Run(cfg Config) int {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: log.WarnLevel,
	})

	sink := diag.Default()
	if cfg.Quiet {
		sink = diag.Nop()
	}

	// Determine color mode
	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = output.StdoutIsTerminal()
	}

	// Create formatter and writer
	w := output.NewWriter()
	var formatter output.Formatter
	if cfg.Hex {
		var styles output.Styles
		if useColor {
			styles = output.NewStyles()
		} else {
			styles = output.NoStyles()
		}
		formatter = output.NewHexFormatter(styles, useColor)
	} else {
		formatter = output.NewRawFormatter()
	}

	if cfg.Follow {
		return runFollow(cfg.Paths[0], sink, formatter, w, cfg, logger)
	}

	if len(cfg.Paths) > 1 {
		return runParallel(cfg.Paths, sink, formatter, w, cfg, logger)
	}

	return runSingle(cfg.Paths[0], sink, formatter, w, cfg, logger)
}

// dumpPort opens path, drains it with single-syscall reads of up to count
// bytes each, and closes the handle. The read loop lives here in the host
// layer; the port reader itself never loops or retries.
func dumpPort(path string, sink *diag.Sink, count int) ([]byte, error) {
	r := rawfile.New(sink.With("port", uuid.NewString()))

	h, err := r.Open(path)
	if err != nil {
		return nil, err
	}

	var data []byte
	buf := make([]byte, count)
	for {
		n, err := r.Read(h, buf)
		if err != nil {
			r.Close(h)
			return data, err
		}
		if n == 0 {
			break // end of stream
		}
		data = append(data, buf[:n]...)
	}

	if err := r.Close(h); err != nil {
		return data, err
	}
	return data, nil
}

func runSingle(path string, sink *diag.Sink, formatter output.Formatter, w *output.Writer, cfg Config, logger *log.Logger) int {
	data, err := dumpPort(path, sink, cfg.Count)
	if err != nil {
		logger.Error("dump failed", "path", path, "err", err)
		return 2
	}

	w.Write(formatter.Format(nil, output.Chunk{Path: path, Data: data}, false))

	if len(data) > 0 {
		return 0
	}
	return 1
}

func runParallel(paths []string, sink *diag.Sink, formatter output.Formatter, w *output.Writer, cfg Config, logger *log.Logger) int {
	sched := scheduler.New(cfg.Workers, func(path string) ([]byte, error) {
		return dumpPort(path, sink, cfg.Count)
	})
	chunks := sched.Run(paths)

	// Log failures in passing; chunks flow on unchanged so the ordered
	// writer still sees every sequence number.
	logged := make(chan output.Chunk, len(paths))
	go func() {
		defer close(logged)
		for c := range chunks {
			if c.Err != nil {
				logger.Warn("dump failed", "path", c.Path, "err", c.Err)
			}
			logged <- c
		}
	}()

	var hasData atomic.Bool
	ow := output.NewOrderedWriter(w, formatter, true)
	ow.WriteOrdered(logged, func() {
		hasData.Store(true)
	})

	if hasData.Load() {
		return 0
	}
	return 1
}

func runFollow(path string, sink *diag.Sink, formatter output.Formatter, w *output.Writer, cfg Config, logger *log.Logger) int {
	r := rawfile.New(sink.With("port", uuid.NewString()))

	f, err := follow.New(r, path, cfg.Count)
	if err != nil {
		logger.Error("failed to follow", "path", path, "err", err)
		return 2
	}
	defer f.Close()

	hasData := false
	for chunk := range f.Chunks() {
		if chunk.Err != nil {
			logger.Warn("follow error", "path", path, "err", chunk.Err)
			continue
		}
		hasData = true
		w.Write(formatter.Format(nil, output.Chunk{Path: path, Data: chunk.Data}, false))
	}

	if hasData {
		return 0
	}
	return 1
}
