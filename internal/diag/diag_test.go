package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestSink_OneLinePerOperation(t *testing.T) {
	var out bytes.Buffer
	s := New(&out)

	s.OpenAttempt("/dev/rpipe0")
	s.ReadDone(320)
	s.Closed()

	got := out.String()
	if lines := strings.Count(got, "\n"); lines != 3 {
		t.Fatalf("lines = %d, want 3:\n%s", lines, got)
	}
	if !strings.Contains(got, "/dev/rpipe0") {
		t.Errorf("output %q does not name the path", got)
	}
	if !strings.Contains(got, "320") {
		t.Errorf("output %q does not carry the byte count", got)
	}
}

func TestSink_Nop(t *testing.T) {
	s := Nop()
	s.OpenAttempt("/dev/rpipe0")
	s.ReadDone(1)
	s.ReadFailed(nil)
	s.Closed()
	// Nothing to assert beyond not panicking; Nop discards all output.
}

func TestSink_With(t *testing.T) {
	var out bytes.Buffer
	s := New(&out).With("port", "abc123")

	s.ReadDone(7)

	if !strings.Contains(out.String(), "abc123") {
		t.Errorf("output %q does not carry the attached context", out.String())
	}
}
