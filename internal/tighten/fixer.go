package tighten

import (
	"github.com/funvibe/tern/internal/ir"
)

// fixer repairs references whose instance qualifier has been tightened to
// the null type, retargeting them to the program's null-field / null-method
// sentinels, and strips side-effect-free qualifiers from static member
// references. It runs after every tightening round that changed something.
type fixer struct {
	ir.BaseHandler

	program *ir.Program
}

func newFixer(p *ir.Program) *fixer {
	return &fixer{program: p}
}

func (f *fixer) VisitExpr(cur *ir.Cursor, e ir.Expression) {
	switch x := e.(type) {
	case *ir.FieldRef:
		f.fixFieldRef(cur, x)
	case *ir.Call:
		f.fixCall(x)
	}
}

func (f *fixer) fixFieldRef(cur *ir.Cursor, x *ir.FieldRef) {
	if x.Field.Static {
		if x.Qualifier != nil && !ir.HasSideEffects(x.Qualifier) {
			x.Qualifier = nil
		}
		return
	}
	if x.Field == f.program.NullField {
		return
	}
	if x.Qualifier != nil && x.Qualifier.Type() == ir.Null {
		// A read through a receiver that can only be null. Keep the
		// qualifier when evaluating it matters, else normalize to a null
		// literal.
		qual := x.Qualifier
		if !ir.HasSideEffects(qual) {
			qual = &ir.NullLit{}
		}
		cur.ReplaceMe(&ir.FieldRef{Qualifier: qual, Field: f.program.NullField})
	}
}

func (f *fixer) fixCall(x *ir.Call) {
	if x.Target == f.program.NullMethod {
		return
	}
	if x.Target.Static {
		if x.Qualifier != nil && !ir.HasSideEffects(x.Qualifier) {
			x.Qualifier = nil
		}
		if x.Target.IsStaticForwarder() && len(x.Args) > 0 && x.Args[0].Type() == ir.Null {
			x.Target = f.program.NullMethod
			x.Polymorphic = false
		}
		return
	}
	if x.Qualifier != nil && x.Qualifier.Type() == ir.Null {
		x.Target = f.program.NullMethod
		x.Polymorphic = false
	}
}
