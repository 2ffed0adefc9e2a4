// Package oracle answers class-hierarchy queries for the optimizer. All
// queries are pure and stable for a fixed program: the instantiated set is
// precomputed at construction, before any pass mutates declared types.
package oracle

import (
	"github.com/funvibe/tern/internal/ir"
)

// Oracle exposes hierarchy and instantiability queries over a program.
type Oracle struct {
	program *ir.Program

	// allocated holds concrete classes with a reachable allocation: a New
	// expression anywhere in the program, or an external-instantiation
	// declaration from the host configuration.
	allocated map[*ir.ClassType]bool
}

// New builds an oracle for p. external names classes the host instantiates
// outside the program's view (reflection-style entry points); unknown names
// are ignored.
func New(p *ir.Program, external ...string) *Oracle {
	o := &Oracle{
		program:   p,
		allocated: make(map[*ir.ClassType]bool),
	}
	o.scanAllocations()
	for _, name := range external {
		if c, ok := p.FindType(name).(*ir.ClassType); ok {
			o.allocated[c] = true
		}
	}
	return o
}

// allocScanner walks the program once collecting New expressions.
type allocScanner struct {
	ir.BaseHandler
	allocated map[*ir.ClassType]bool
}

func (s *allocScanner) VisitExpr(_ *ir.Cursor, e ir.Expression) {
	if n, ok := e.(*ir.New); ok {
		s.allocated[n.Class] = true
	}
}

func (o *Oracle) scanAllocations() {
	ir.Walk(o.program, &allocScanner{allocated: o.allocated})
}

// IsInstantiated reports whether some reachable allocation produces a value
// of type t: a direct allocation, or an allocation of any subclass or
// implementor (for concrete classes as well as abstract classes and
// interfaces). The null type has no instances.
func (o *Oracle) IsInstantiated(t ir.Type) bool {
	rt, ok := t.(ir.ReferenceType)
	if !ok {
		return false
	}
	if rt == ir.Null {
		return false
	}
	for c := range o.allocated {
		if o.CanTriviallyCast(c, rt) {
			return true
		}
	}
	return false
}

// CanTriviallyCast reports whether every instance of f is-a t, so a cast
// from f to t needs no runtime check. The null type trivially casts to any
// reference type.
func (o *Oracle) CanTriviallyCast(f, t ir.ReferenceType) bool {
	if f == t {
		return true
	}
	if f == ir.Null {
		return true
	}
	if t == ir.Null {
		return false
	}
	switch ft := f.(type) {
	case *ir.ClassType:
		for cur := ft; cur != nil; cur = cur.Super {
			if cur == t {
				return true
			}
			if implementsTransitively(cur.Implements, t) {
				return true
			}
		}
		return false
	case *ir.InterfaceType:
		// Every interface value is an object.
		if t == o.program.Root {
			return true
		}
		return implementsTransitively(ft.Extends, t)
	}
	return false
}

func implementsTransitively(ifaces []*ir.InterfaceType, t ir.ReferenceType) bool {
	found := false
	ir.SuperInterfaces(ifaces, func(it *ir.InterfaceType) {
		if it == t {
			found = true
		}
	})
	return found
}

// CanTheoreticallyCast reports whether the hierarchies of f and t
// intersect: some declared class is assignable to both, so a runtime check
// might succeed. The program is closed, so only declared classes count.
func (o *Oracle) CanTheoreticallyCast(f, t ir.ReferenceType) bool {
	if o.CanTriviallyCast(f, t) || o.CanTriviallyCast(t, f) {
		return true
	}
	_, fClass := f.(*ir.ClassType)
	_, tClass := t.(*ir.ClassType)
	if fClass && tClass {
		// Unrelated classes: single inheritance keeps the branches
		// disjoint forever.
		return false
	}
	for _, c := range o.program.Classes() {
		if o.CanTriviallyCast(c, f) && o.CanTriviallyCast(c, t) {
			return true
		}
	}
	return false
}

// AllOverrides returns the methods m directly or transitively overrides:
// same name and arity, declared in a supertype of m's enclosing type.
func (o *Oracle) AllOverrides(m *ir.Method) []*ir.Method {
	if m.Static || m.Enclosing == nil {
		return nil
	}
	var out []*ir.Method
	seen := make(map[*ir.Method]bool)
	add := func(t ir.ReferenceType) {
		for _, cand := range methodsOf(t) {
			if cand == m || cand.Static || seen[cand] {
				continue
			}
			if cand.MethodName == m.MethodName && len(cand.Params) == len(m.Params) {
				seen[cand] = true
				out = append(out, cand)
			}
		}
	}
	switch encl := m.Enclosing.(type) {
	case *ir.ClassType:
		for cur := encl; cur != nil; cur = cur.Super {
			if cur != encl {
				add(cur)
			}
			ir.SuperInterfaces(cur.Implements, func(it *ir.InterfaceType) {
				add(it)
			})
		}
	case *ir.InterfaceType:
		ir.SuperInterfaces(encl.Extends, func(it *ir.InterfaceType) {
			add(it)
		})
	}
	return out
}

func methodsOf(t ir.ReferenceType) []*ir.Method {
	switch rt := t.(type) {
	case *ir.ClassType:
		return rt.Methods
	case *ir.InterfaceType:
		return rt.Methods
	}
	return nil
}

// GeneralizeTypes computes the least common supertype of the given types.
// The null type is the identity element: it loses to any other type, and
// an all-null set generalizes to null.
func (o *Oracle) GeneralizeTypes(types []ir.ReferenceType) ir.ReferenceType {
	var result ir.ReferenceType = ir.Null
	for _, t := range types {
		result = o.generalizePair(result, t)
	}
	return result
}

func (o *Oracle) generalizePair(a, b ir.ReferenceType) ir.ReferenceType {
	if a == b {
		return a
	}
	if a == ir.Null {
		return b
	}
	if b == ir.Null {
		return a
	}
	if o.CanTriviallyCast(a, b) {
		return b
	}
	if o.CanTriviallyCast(b, a) {
		return a
	}
	switch at := a.(type) {
	case *ir.ClassType:
		for cur := at.Super; cur != nil; cur = cur.Super {
			if o.CanTriviallyCast(b, cur) {
				return cur
			}
		}
	case *ir.InterfaceType:
		var common ir.ReferenceType
		ir.SuperInterfaces(at.Extends, func(it *ir.InterfaceType) {
			if common == nil && o.CanTriviallyCast(b, it) {
				common = it
			}
		})
		if common != nil {
			return common
		}
	}
	return o.program.Root
}

// StrongerType returns the strict subtype of a and b if one dominates the
// other, else a.
func (o *Oracle) StrongerType(a, b ir.ReferenceType) ir.ReferenceType {
	if a == b {
		return a
	}
	if o.CanTriviallyCast(a, b) {
		return a
	}
	if o.CanTriviallyCast(b, a) {
		return b
	}
	return a
}
