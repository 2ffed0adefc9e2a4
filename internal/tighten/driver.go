package tighten

import (
	"github.com/funvibe/tern/internal/diag"
	"github.com/funvibe/tern/internal/ir"
	"github.com/funvibe/tern/internal/oracle"
)

// Run executes the type tightening pass over program until a fixed point
// and reports whether the IR was modified.
//
// The recorder runs once; its relations stay valid because tightening
// changes declared types of slots but never which slots are related. The
// tightener then alternates with the dangling-ref fixer until a round
// changes nothing. Termination is guaranteed: every change strictly
// narrows a slot in a finite lattice or removes a simplifiable expression.
func Run(p *ir.Program, o *oracle.Oracle, tracer *diag.Tracer) bool {
	rec := newRecorder(o)
	ir.Walk(p, rec)

	changed := false
	for round := 1; ; round++ {
		t := newTightener(p, o, rec.rel, tracer)
		ir.Walk(p, t)
		tracer.Tracef("tighten round %d: changed=%v", round, t.changed)
		if !t.changed {
			break
		}
		changed = true
		ir.Walk(p, newFixer(p))
	}
	return changed
}
