package pipeline

import (
	"testing"

	"github.com/funvibe/tern/internal/config"
	"github.com/funvibe/tern/internal/ir"
)

type markProcessor struct {
	ran int
}

func (mp *markProcessor) Process(ctx *PipelineContext) *PipelineContext {
	mp.ran++
	ctx.Changed = true
	return ctx
}

func TestPipelineRunsProcessorsInOrder(t *testing.T) {
	p := ir.NewProgram()
	ctx := NewContext(p, config.Options{})

	first := &markProcessor{}
	second := &markProcessor{}
	out := New(first, second).Run(ctx)

	if first.ran != 1 || second.ran != 1 {
		t.Errorf("processors ran %d/%d times, want 1/1", first.ran, second.ran)
	}
	if !out.Changed {
		t.Errorf("context change flag not propagated")
	}
}

func TestNewContextAppliesOptions(t *testing.T) {
	p := ir.NewProgram()
	gen := p.NewClass("GeneratedView", nil, false)
	widget := p.NewClass("Widget", nil, false)

	ctx := NewContext(p, config.Options{
		CodeGenTypes: []string{"GeneratedView", "NoSuchType"},
		Instantiated: []string{"Widget"},
	})

	if !p.CodeGen[gen] {
		t.Errorf("code-generation type not marked on the program")
	}
	if !ctx.Oracle.IsInstantiated(widget) {
		t.Errorf("host-declared instantiation not visible through the oracle")
	}
	if ctx.Tracer != nil {
		t.Errorf("tracer created without the trace option")
	}
}
