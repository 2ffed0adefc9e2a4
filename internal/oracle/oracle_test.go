package oracle

import (
	"testing"

	"github.com/funvibe/tern/internal/ir"
)

// buildZoo declares a small hierarchy:
//
//	interface Pet
//	abstract class Animal
//	class Dog extends Animal implements Pet   (allocated)
//	class Cat extends Animal                  (not allocated)
//	class Rock                                (allocated)
func buildZoo(t *testing.T) (*ir.Program, *Oracle, map[string]ir.ReferenceType) {
	t.Helper()
	p := ir.NewProgram()
	pet := p.NewInterface("Pet")
	animal := p.NewClass("Animal", nil, true)
	dog := p.NewClass("Dog", animal, false)
	dog.Implements = []*ir.InterfaceType{pet}
	cat := p.NewClass("Cat", animal, false)
	rock := p.NewClass("Rock", nil, false)

	main := p.NewClass("Main", nil, false)
	run := main.NewMethod("run", ir.Void)
	run.Body.Stmts = append(run.Body.Stmts,
		&ir.ExprStmt{Expr: &ir.New{Class: dog}},
		&ir.ExprStmt{Expr: &ir.New{Class: rock}},
	)

	o := New(p)
	types := map[string]ir.ReferenceType{
		"Pet": pet, "Animal": animal, "Dog": dog, "Cat": cat, "Rock": rock, "Main": main,
	}
	return p, o, types
}

func TestIsInstantiated(t *testing.T) {
	_, o, types := buildZoo(t)

	tests := []struct {
		name string
		want bool
	}{
		{"Dog", true},
		{"Animal", true}, // abstract, but Dog is allocated
		{"Pet", true},    // Dog implements it
		{"Cat", false},
		{"Rock", true},
	}
	for _, tt := range tests {
		if got := o.IsInstantiated(types[tt.name]); got != tt.want {
			t.Errorf("IsInstantiated(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if o.IsInstantiated(ir.Null) {
		t.Errorf("IsInstantiated(null) = true, want false")
	}
	if o.IsInstantiated(ir.Int) {
		t.Errorf("IsInstantiated(Int) = true, want false")
	}
}

func TestExternalInstantiation(t *testing.T) {
	p := ir.NewProgram()
	c := p.NewClass("Widget", nil, false)

	o := New(p)
	if o.IsInstantiated(c) {
		t.Fatalf("Widget instantiated with no allocations")
	}

	o = New(p, "Widget")
	if !o.IsInstantiated(c) {
		t.Errorf("host-declared instantiation ignored")
	}
}

func TestCanTriviallyCast(t *testing.T) {
	p, o, types := buildZoo(t)

	tests := []struct {
		from, to string
		want     bool
	}{
		{"Dog", "Animal", true},
		{"Dog", "Pet", true},
		{"Dog", "Dog", true},
		{"Cat", "Pet", false},
		{"Animal", "Dog", false},
		{"Animal", "Rock", false},
		{"Pet", "Object", true},
	}
	for _, tt := range tests {
		to := types[tt.to]
		if tt.to == "Object" {
			to = p.Root
		}
		if got := o.CanTriviallyCast(types[tt.from], to); got != tt.want {
			t.Errorf("CanTriviallyCast(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}

	if !o.CanTriviallyCast(ir.Null, types["Dog"]) {
		t.Errorf("null must trivially cast to any reference type")
	}
	if o.CanTriviallyCast(types["Dog"], ir.Null) {
		t.Errorf("no non-null type casts to null")
	}
}

func TestCanTheoreticallyCast(t *testing.T) {
	_, o, types := buildZoo(t)

	tests := []struct {
		from, to string
		want     bool
	}{
		{"Animal", "Dog", true},  // downcast might succeed
		{"Animal", "Pet", true},  // Dog is assignable to both
		{"Rock", "Pet", false},   // no class is both
		{"Rock", "Animal", false},
		{"Cat", "Pet", false},
		{"Pet", "Animal", true},
	}
	for _, tt := range tests {
		if got := o.CanTheoreticallyCast(types[tt.from], types[tt.to]); got != tt.want {
			t.Errorf("CanTheoreticallyCast(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAllOverrides(t *testing.T) {
	p := ir.NewProgram()
	speaker := p.NewInterface("Speaker")
	speak0 := speaker.NewMethod("speak", ir.Void)

	animal := p.NewClass("Animal", nil, true)
	animal.Implements = []*ir.InterfaceType{speaker}
	speak1 := animal.NewMethod("speak", ir.Void)

	dog := p.NewClass("Dog", animal, false)
	speak2 := dog.NewMethod("speak", ir.Void)
	other := dog.NewMethod("fetch", ir.Void)

	o := New(p)

	got := o.AllOverrides(speak2)
	if len(got) != 2 {
		t.Fatalf("AllOverrides(Dog.speak) = %d methods, want 2", len(got))
	}
	seen := map[*ir.Method]bool{got[0]: true, got[1]: true}
	if !seen[speak0] || !seen[speak1] {
		t.Errorf("AllOverrides(Dog.speak) missing Animal.speak or Speaker.speak")
	}

	if n := len(o.AllOverrides(other)); n != 0 {
		t.Errorf("AllOverrides(Dog.fetch) = %d methods, want 0", n)
	}
	if n := len(o.AllOverrides(speak1)); n != 1 {
		t.Errorf("AllOverrides(Animal.speak) = %d methods, want 1", n)
	}
}

func TestGeneralizeTypes(t *testing.T) {
	p, o, types := buildZoo(t)

	tests := []struct {
		name string
		in   []ir.ReferenceType
		want ir.ReferenceType
	}{
		{"empty", nil, ir.Null},
		{"all null", []ir.ReferenceType{ir.Null, ir.Null}, ir.Null},
		{"null loses", []ir.ReferenceType{ir.Null, types["Dog"]}, types["Dog"]},
		{"subtype collapses", []ir.ReferenceType{types["Dog"], types["Animal"]}, types["Animal"]},
		{"siblings meet at super", []ir.ReferenceType{types["Dog"], types["Cat"]}, types["Animal"]},
		{"unrelated meet at root", []ir.ReferenceType{types["Dog"], types["Rock"]}, p.Root},
	}
	for _, tt := range tests {
		if got := o.GeneralizeTypes(tt.in); got != tt.want {
			t.Errorf("%s: GeneralizeTypes = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestStrongerType(t *testing.T) {
	_, o, types := buildZoo(t)

	tests := []struct {
		name string
		a, b ir.ReferenceType
		want ir.ReferenceType
	}{
		{"a stronger", types["Dog"], types["Animal"], types["Dog"]},
		{"b stronger", types["Animal"], types["Dog"], types["Dog"]},
		{"null strongest", types["Dog"], ir.Null, ir.Null},
		{"incomparable keeps a", types["Rock"], types["Dog"], types["Rock"]},
		{"equal", types["Dog"], types["Dog"], types["Dog"]},
	}
	for _, tt := range tests {
		if got := o.StrongerType(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: StrongerType = %s, want %s", tt.name, got, tt.want)
		}
	}
}
