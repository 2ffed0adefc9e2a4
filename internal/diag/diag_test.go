package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestTracefWritesLines(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	tr.Tracef("tighten %s: %s -> %s", "s", "Shape", "Circle")

	got := buf.String()
	if !strings.Contains(got, "tighten s: Shape -> Circle") {
		t.Errorf("trace output = %q", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("ANSI escapes written to a non-terminal writer: %q", got)
	}
}

func TestNilTracerIsSilent(t *testing.T) {
	var tr *Tracer
	// Must not panic.
	tr.Tracef("nothing %d", 1)
}
