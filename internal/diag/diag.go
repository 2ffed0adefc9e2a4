// Package diag provides trace output for optimizer passes.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorDim   = "\x1b[2m"
	colorReset = "\x1b[0m"
)

// Tracer writes pass decisions to an output stream. A nil Tracer is valid
// and silent, so callers never need to guard their trace calls.
type Tracer struct {
	out   io.Writer
	color bool
}

// New creates a tracer writing to out. Output is dimmed with ANSI escapes
// when out is a terminal.
func New(out io.Writer) *Tracer {
	t := &Tracer{out: out}
	if f, ok := out.(*os.File); ok {
		t.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return t
}

// Tracef writes one formatted trace line.
func (t *Tracer) Tracef(format string, args ...interface{}) {
	if t == nil || t.out == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	if t.color {
		fmt.Fprintf(t.out, "%s%s%s\n", colorDim, line, colorReset)
	} else {
		fmt.Fprintln(t.out, line)
	}
}
