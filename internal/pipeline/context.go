package pipeline

import (
	"os"

	"github.com/funvibe/tern/internal/config"
	"github.com/funvibe/tern/internal/diag"
	"github.com/funvibe/tern/internal/ir"
	"github.com/funvibe/tern/internal/oracle"
)

// Processor is a single optimizer pass over the pipeline context.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the program and its collaborators through the
// pass sequence.
type PipelineContext struct {
	Program *ir.Program
	Oracle  *oracle.Oracle
	Options config.Options
	Tracer  *diag.Tracer

	// Changed accumulates whether any pass modified the program.
	Changed bool
}

// NewContext builds a context for one optimizer run. The oracle is
// constructed here, after config resolution, so its instantiated set
// reflects the host-declared external instantiations.
func NewContext(p *ir.Program, opts config.Options) *PipelineContext {
	ctx := &PipelineContext{
		Program: p,
		Oracle:  oracle.New(p, opts.Instantiated...),
		Options: opts,
	}
	if opts.Trace {
		ctx.Tracer = diag.New(os.Stderr)
	}
	p.MarkCodeGen(opts.CodeGenTypes...)
	return ctx
}
