package ir

import (
	"testing"
)

func TestHasSideEffects(t *testing.T) {
	p := NewProgram()
	c := p.NewClass("Box", nil, false)
	f := c.NewField("value", c)
	m := c.NewMethod("get", c)
	local := &Local{LocalName: "b", DeclType: c}

	tests := []struct {
		name string
		expr Expression
		want bool
	}{
		{"null literal", &NullLit{}, false},
		{"bool literal", &BoolLit{Value: true}, false},
		{"variable read", &VarRef{Target: local}, false},
		{"field read", &FieldRef{Qualifier: &VarRef{Target: local}, Field: f}, false},
		{"field read through call", &FieldRef{Qualifier: &Call{Target: m}, Field: f}, true},
		{"cast of pure operand", &Cast{Target: c, Expr: &VarRef{Target: local}}, false},
		{"instance-of of call", &InstanceOf{Target: c, Expr: &Call{Target: m}}, true},
		{"assignment", &Binary{Op: OpAssign, Left: &VarRef{Target: local}, Right: &NullLit{}}, true},
		{"pure comparison", &Binary{Op: OpEq, Left: &VarRef{Target: local}, Right: &NullLit{}}, false},
		{"call", &Call{Target: m}, true},
		{"allocation", &New{Class: c}, true},
	}
	for _, tt := range tests {
		if got := HasSideEffects(tt.expr); got != tt.want {
			t.Errorf("%s: HasSideEffects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBinaryType(t *testing.T) {
	p := NewProgram()
	c := p.NewClass("Box", nil, false)
	local := &Local{LocalName: "b", DeclType: c}

	assign := &Binary{Op: OpAssign, Left: &VarRef{Target: local}, Right: &NullLit{}}
	if assign.Type() != c {
		t.Errorf("assignment type = %s, want %s", assign.Type(), c)
	}

	// Assignment types track the slot's current declared type.
	local.SetType(Null)
	if assign.Type() != Null {
		t.Errorf("assignment type after tightening = %s, want null", assign.Type())
	}

	cmp := &Binary{Op: OpNe, Left: &VarRef{Target: local}, Right: &NullLit{}}
	if cmp.Type() != Bool {
		t.Errorf("comparison type = %s, want Bool", cmp.Type())
	}
}

func TestIsReference(t *testing.T) {
	p := NewProgram()
	c := p.NewClass("Box", nil, false)
	i := p.NewInterface("Readable")

	tests := []struct {
		name string
		typ  Type
		want bool
	}{
		{"class", c, true},
		{"interface", i, true},
		{"null", Null, true},
		{"primitive", Int, false},
	}
	for _, tt := range tests {
		if got := IsReference(tt.typ); got != tt.want {
			t.Errorf("IsReference(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStaticForwarderShape(t *testing.T) {
	p := NewProgram()
	c := p.NewClass("Box", nil, false)

	inst := c.NewMethod("get", c)
	fwd := c.NewMethod("get$s", c)
	fwd.Static = true
	fwd.AddThisParam(c)
	fwd.Instance = inst

	if !fwd.IsStaticForwarder() {
		t.Errorf("forwarder not recognized")
	}
	if inst.IsStaticForwarder() {
		t.Errorf("instance method recognized as forwarder")
	}
}
