package tighten

import (
	"github.com/funvibe/tern/internal/diag"
	"github.com/funvibe/tern/internal/ir"
	"github.com/funvibe/tern/internal/oracle"
)

// tightener is the modifying traversal. One instance is created per round;
// changed reports whether this round narrowed a slot or rewrote an
// expression.
type tightener struct {
	ir.BaseHandler

	program *ir.Program
	oracle  *oracle.Oracle
	rel     *relations
	tracer  *diag.Tracer

	changed bool
}

func newTightener(p *ir.Program, o *oracle.Oracle, rel *relations, tr *diag.Tracer) *tightener {
	return &tightener{
		program: p,
		oracle:  o,
		rel:     rel,
		tracer:  tr,
	}
}

func (t *tightener) EnterType(rt ir.ReferenceType) bool {
	if t.program.CodeGen[rt] {
		return false
	}
	if c, ok := rt.(*ir.ClassType); ok {
		for _, f := range c.Fields {
			if f.Volatile {
				continue
			}
			t.tightenVar(f)
		}
	}
	return true
}

func (t *tightener) EnterMethod(m *ir.Method) bool {
	for _, p := range m.Params {
		t.tightenVar(p)
	}
	t.tightenMethodReturn(m)
	// No inference inside native bodies; there is no body to walk anyway.
	return !m.Native
}

func (t *tightener) VisitLocalDecl(d *ir.LocalDecl) {
	t.tightenVar(d.Local)
}

func (t *tightener) VisitExpr(cur *ir.Cursor, e ir.Expression) {
	switch x := e.(type) {
	case *ir.Cast:
		t.tightenCast(cur, x)
	case *ir.InstanceOf:
		t.tightenInstanceOf(cur, x)
	case *ir.Call:
		t.tightenCall(x)
	}
}

// tightenVar narrows a field, local, or parameter slot. The declared type
// only ever moves down the lattice: to the null type when nothing
// instantiable can reach the slot, to the sole concrete implementor of an
// abstract type, or to the generalization of everything assigned into it.
func (t *tightener) tightenVar(v ir.Variable) {
	declared, ok := v.Type().(ir.ReferenceType)
	if !ok || declared == ir.Null {
		return
	}

	if !t.oracle.IsInstantiated(declared) {
		t.setType(v, ir.Null)
		return
	}

	if ir.IsAbstractRef(declared) {
		if sole := t.rel.soleConcreteImplementor(declared); sole != nil && sole != declared {
			t.setType(v, sole)
			return
		}
	}

	param, isParam := v.(*ir.Param)
	var candidates []ir.ReferenceType
	if !isParam {
		// Seed with the bottom element so a slot nothing flows into
		// collapses to null. Parameters get no seed: a flowless parameter
		// is dead and is left for dead-code elimination.
		candidates = append(candidates, ir.Null)
	}
	for e := range t.rel.assignments[v] {
		et, ok := e.Type().(ir.ReferenceType)
		if !ok {
			// A non-reference type in the flow set means an upstream bug;
			// leave the slot alone.
			return
		}
		candidates = append(candidates, et)
	}
	if isParam {
		for up := range t.rel.paramUpRefs[param] {
			ut, ok := up.Type().(ir.ReferenceType)
			if !ok {
				return
			}
			candidates = append(candidates, ut)
		}
	}
	if len(candidates) == 0 {
		return
	}

	general := t.oracle.GeneralizeTypes(candidates)
	result := t.oracle.StrongerType(declared, general)
	if result != declared {
		t.setType(v, result)
	}
}

// tightenMethodReturn narrows a method's declared return type. The flow
// set is the method's returned expressions plus the declared return type
// of every overrider. Native methods only participate in the
// instantiability and sole-implementor steps.
func (t *tightener) tightenMethodReturn(m *ir.Method) {
	declared, ok := m.Return.(ir.ReferenceType)
	if !ok || declared == ir.Null {
		return
	}

	if !t.oracle.IsInstantiated(declared) {
		t.setType(m, ir.Null)
		return
	}

	if ir.IsAbstractRef(declared) {
		if sole := t.rel.soleConcreteImplementor(declared); sole != nil && sole != declared {
			t.setType(m, sole)
			return
		}
	}

	if m.Native {
		return
	}

	candidates := []ir.ReferenceType{ir.Null}
	for e := range t.rel.returns[m] {
		et, ok := e.Type().(ir.ReferenceType)
		if !ok {
			return
		}
		candidates = append(candidates, et)
	}
	for over := range t.rel.overriders[m] {
		ot, ok := over.Return.(ir.ReferenceType)
		if !ok {
			return
		}
		candidates = append(candidates, ot)
	}

	general := t.oracle.GeneralizeTypes(candidates)
	result := t.oracle.StrongerType(declared, general)
	if result != declared {
		t.setType(m, result)
	}
}

// tightenCast simplifies (T)e when the outcome is statically determined.
func (t *tightener) tightenCast(cur *ir.Cursor, x *ir.Cast) {
	target, ok := x.Target.(ir.ReferenceType)
	if !ok || target == ir.Null {
		return
	}
	from, ok := x.Expr.Type().(ir.ReferenceType)
	if !ok {
		return
	}

	if t.oracle.CanTriviallyCast(from, target) {
		cur.ReplaceMe(x.Expr)
		t.markChange()
		return
	}
	if !t.oracle.IsInstantiated(target) || !t.oracle.CanTheoreticallyCast(from, target) {
		// A cast that can never succeed yields a guaranteed-null value.
		x.Target = ir.Null
		t.markChange()
		return
	}
	if ir.IsAbstractRef(target) {
		if sole := t.rel.soleConcreteImplementor(target); sole != nil && sole != target {
			x.Target = sole
			t.markChange()
		}
	}
}

// tightenInstanceOf simplifies e instanceof T when the outcome is
// statically determined.
func (t *tightener) tightenInstanceOf(cur *ir.Cursor, x *ir.InstanceOf) {
	from, ok := x.Expr.Type().(ir.ReferenceType)
	if !ok {
		return
	}
	target := x.Target

	if from == ir.Null {
		cur.ReplaceMe(&ir.BoolLit{Value: false})
		t.markChange()
		return
	}
	if t.oracle.CanTriviallyCast(from, target) {
		cur.ReplaceMe(&ir.Binary{Op: ir.OpNe, Left: x.Expr, Right: &ir.NullLit{}})
		t.markChange()
		return
	}
	if !t.oracle.IsInstantiated(target) || !t.oracle.CanTheoreticallyCast(from, target) {
		cur.ReplaceMe(&ir.BoolLit{Value: false})
		t.markChange()
		return
	}
	if ir.IsAbstractRef(target) {
		if sole := t.rel.soleConcreteImplementor(target); sole != nil && sole != target {
			x.Target = sole
			t.markChange()
		}
	}
}

// tightenCall devirtualizes calls whose receiver type has a single
// concrete implementor, and strips the polymorphic flag from calls no
// overrider can receive.
func (t *tightener) tightenCall(x *ir.Call) {
	target := x.Target
	if target == t.program.NullMethod || target.Static || target.Enclosing == nil {
		t.stripPolymorphism(x)
		return
	}

	if t.rel.soleConcreteImplementor(target.Enclosing) != nil {
		if concrete := t.soleConcreteOverrider(target); concrete != nil && concrete != target {
			x.Target = concrete
			t.markChange()
		}
	}

	t.stripPolymorphism(x)
}

// soleConcreteOverrider returns the unique non-abstract method among the
// target and its overriders, or nil.
func (t *tightener) soleConcreteOverrider(target *ir.Method) *ir.Method {
	var sole *ir.Method
	if !target.Abstract {
		sole = target
	}
	for over := range t.rel.overriders[target] {
		if over.Abstract {
			continue
		}
		if sole != nil && sole != over {
			return nil
		}
		sole = over
	}
	return sole
}

func (t *tightener) stripPolymorphism(x *ir.Call) {
	if !x.Polymorphic || x.Qualifier == nil {
		return
	}
	from, ok := x.Qualifier.Type().(ir.ReferenceType)
	if !ok {
		return
	}
	for over := range t.rel.overriders[x.Target] {
		if over.Enclosing == nil {
			continue
		}
		if t.oracle.CanTheoreticallyCast(from, over.Enclosing) {
			return
		}
	}
	x.Polymorphic = false
	t.markChange()
}

func (t *tightener) setType(v ir.Variable, to ir.ReferenceType) {
	t.tracer.Tracef("tighten %s: %s -> %s", v.Name(), v.Type(), to)
	v.SetType(to)
	t.markChange()
}

func (t *tightener) markChange() {
	t.changed = true
}
