package tighten

import (
	"github.com/funvibe/tern/internal/ir"
	"github.com/funvibe/tern/internal/oracle"
)

// recorder is the read-only traversal that builds the flow relations. It
// runs exactly once, before the first tightening round.
type recorder struct {
	ir.BaseHandler

	oracle *oracle.Oracle
	rel    *relations

	method *ir.Method // method whose body is being walked
}

func newRecorder(o *oracle.Oracle) *recorder {
	return &recorder{
		oracle: o,
		rel:    newRelations(),
	}
}

func (r *recorder) EnterType(t ir.ReferenceType) bool {
	c, ok := t.(*ir.ClassType)
	if !ok {
		return true
	}
	if !c.Abstract && r.oracle.IsInstantiated(c) {
		// Record concrete c as an implementor of every ancestor class and
		// of every interface those ancestors implement, transitively.
		for cur := c; cur != nil; cur = cur.Super {
			r.rel.addImplementor(cur, c)
			ir.SuperInterfaces(cur.Implements, func(it *ir.InterfaceType) {
				r.rel.addImplementor(it, c)
			})
		}
	}
	for _, f := range c.Fields {
		if f.Initializer != nil && ir.IsReference(f.Type()) {
			r.rel.addAssignment(f, f.Initializer)
		}
	}
	return true
}

func (r *recorder) EnterMethod(m *ir.Method) bool {
	r.method = m
	if !m.Static {
		// Link each parameter to its positional counterpart in every
		// overridden method. A mismatched arity means an upstream bug;
		// skip the method rather than guess.
		for _, base := range r.oracle.AllOverrides(m) {
			if len(base.Params) != len(m.Params) {
				continue
			}
			for i, p := range m.Params {
				r.rel.addUpRef(p, base.Params[i])
			}
		}
	}
	if m.IsStaticForwarder() {
		// The receiver parameter pins itself: generalizing over a set
		// containing its own declared type can never narrow it. The
		// remaining parameters track the instance counterpart, unless the
		// counterpart was pruned.
		this := m.Params[0]
		r.rel.addUpRef(this, this)
		if inst := m.Instance; inst != nil {
			for j := 1; j < len(m.Params); j++ {
				if j-1 < len(inst.Params) {
					r.rel.addUpRef(m.Params[j], inst.Params[j-1])
				}
			}
		}
	}
	if m.Native {
		// Members referenced across the foreign boundary are pinned via
		// self-references; foreign code may store anything into them.
		for _, fr := range m.ForeignFieldWrites {
			r.rel.addAssignment(fr.Field, fr)
		}
		for _, fm := range m.ForeignMethodRefs {
			for _, p := range fm.Params {
				r.rel.addAssignment(p, &ir.VarRef{Target: p})
			}
		}
	}
	return true
}

func (r *recorder) ExitMethod(m *ir.Method) {
	if m.Enclosing != nil && r.oracle.IsInstantiated(m.Enclosing) {
		for _, base := range r.oracle.AllOverrides(m) {
			r.rel.addOverrider(base, m)
		}
	}
	r.method = nil
}

func (r *recorder) VisitLocalDecl(d *ir.LocalDecl) {
	if d.Init != nil && ir.IsReference(d.Local.Type()) {
		r.rel.addAssignment(d.Local, d.Init)
	}
}

func (r *recorder) VisitReturn(ret *ir.Return) {
	if r.method == nil || ret.Expr == nil {
		return
	}
	if ir.IsReference(r.method.Return) {
		r.rel.addReturn(r.method, ret.Expr)
	}
}

func (r *recorder) VisitTry(t *ir.Try) {
	// Thrown values escape local control flow; pin the catch variable.
	r.rel.addAssignment(t.CatchVar, &ir.VarRef{Target: t.CatchVar})
}

func (r *recorder) VisitExpr(_ *ir.Cursor, e ir.Expression) {
	switch x := e.(type) {
	case *ir.Binary:
		if x.Op != ir.OpAssign {
			return
		}
		switch lhs := x.Left.(type) {
		case *ir.VarRef:
			if ir.IsReference(lhs.Target.Type()) {
				r.rel.addAssignment(lhs.Target, x.Right)
			}
		case *ir.FieldRef:
			if ir.IsReference(lhs.Field.Type()) {
				r.rel.addAssignment(lhs.Field, x.Right)
			}
		}
	case *ir.Call:
		for i, p := range x.Target.Params {
			if i >= len(x.Args) {
				break
			}
			if ir.IsReference(p.Type()) {
				r.rel.addAssignment(p, x.Args[i])
			}
		}
	}
}
