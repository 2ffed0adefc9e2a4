package pipeline

// Pipeline represents a sequence of optimizer passes.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Every processor runs even when an earlier one
// changed nothing; a pass may still have work enabled by a later one on a
// subsequent driver round.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
