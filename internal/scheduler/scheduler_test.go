package scheduler

import (
	"fmt"
	"sort"
	"testing"
)

func TestScheduler_DumpsAllPaths(t *testing.T) {
	s := New(4, func(path string) ([]byte, error) {
		return []byte("data:" + path), nil
	})

	paths := []string{"a", "b", "c", "d", "e"}
	var seqs []int
	seen := make(map[string]string)
	for c := range s.Run(paths) {
		if c.Err != nil {
			t.Errorf("chunk error for %s: %v", c.Path, c.Err)
		}
		seqs = append(seqs, c.SeqNum)
		seen[c.Path] = string(c.Data)
	}

	if len(seen) != len(paths) {
		t.Fatalf("dumped %d paths, want %d", len(seen), len(paths))
	}
	for _, p := range paths {
		if seen[p] != "data:"+p {
			t.Errorf("seen[%s] = %q", p, seen[p])
		}
	}

	sort.Ints(seqs)
	for i, seq := range seqs {
		if seq != i+1 {
			t.Errorf("sequence numbers not 1..%d: %v", len(paths), seqs)
			break
		}
	}
}

func TestScheduler_PropagatesErrors(t *testing.T) {
	s := New(2, func(path string) ([]byte, error) {
		if path == "bad" {
			return nil, fmt.Errorf("dump %s: boom", path)
		}
		return []byte("ok"), nil
	})

	errs := 0
	for c := range s.Run([]string{"good", "bad"}) {
		if c.Path == "bad" && c.Err != nil {
			errs++
		}
		if c.Path == "good" && c.Err != nil {
			t.Errorf("unexpected error for good path: %v", c.Err)
		}
	}
	if errs != 1 {
		t.Errorf("error chunks = %d, want 1", errs)
	}
}

func TestScheduler_DefaultWorkers(t *testing.T) {
	s := New(0, func(string) ([]byte, error) { return nil, nil })
	if s.workers <= 0 {
		t.Errorf("workers = %d, want positive default", s.workers)
	}
}
