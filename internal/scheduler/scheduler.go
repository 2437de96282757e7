// Package scheduler fans port dumps out to a pool of workers. Each worker
// drives its own handle, so concurrent dumps never share port state.
package scheduler

import (
	"runtime"
	"sync"

	"github.com/dl/rpipe/internal/output"
)

// DumpFunc drains one port and returns its bytes.
type DumpFunc func(path string) ([]byte, error)

// Scheduler manages a pool of workers that dump ports concurrently.
type Scheduler struct {
	workers int
	dump    DumpFunc
}

// New creates a Scheduler with the given number of workers.
// If workers is 0, defaults to NumCPU * 2.
func New(workers int, dump DumpFunc) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	return &Scheduler{
		workers: workers,
		dump:    dump,
	}
}

type job struct {
	seq  int
	path string
}

// Run dumps the given paths on the worker pool and returns the result
// channel. Chunks carry sequence numbers matching the input order, so a
// consumer can reassemble deterministic output.
func (s *Scheduler) Run(paths []string) <-chan output.Chunk {
	jobs := make(chan job)
	chunks := make(chan output.Chunk, s.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				data, err := s.dump(j.path)
				chunks <- output.Chunk{
					Path:   j.path,
					SeqNum: j.seq,
					Data:   data,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		for i, path := range paths {
			jobs <- job{seq: i + 1, path: path}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(chunks)
	}()

	return chunks
}
