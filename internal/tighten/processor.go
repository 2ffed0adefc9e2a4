package tighten

import (
	"github.com/funvibe/tern/internal/pipeline"
)

// Processor adapts the tightening driver to the optimizer pipeline.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

func (tp *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}
	if Run(ctx.Program, ctx.Oracle, ctx.Tracer) {
		ctx.Changed = true
	}
	return ctx
}
