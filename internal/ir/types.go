package ir

import (
	"github.com/google/uuid"
)

// Type is the interface for all Tern types.
type Type interface {
	String() string
	typeNode()
}

// ReferenceType is a class type, an interface type, or the null type.
// Only reference-typed slots participate in type tightening.
type ReferenceType interface {
	Type
	referenceTypeNode()
}

// PrimitiveType represents a non-reference type (Int, Bool, String, Void).
type PrimitiveType struct {
	Name string
}

func (t *PrimitiveType) String() string { return t.Name }
func (t *PrimitiveType) typeNode()      {}

// Predeclared primitive types. These are singletons; the IR compares types
// by identity.
var (
	Int   = &PrimitiveType{Name: "Int"}
	Bool  = &PrimitiveType{Name: "Bool"}
	Str   = &PrimitiveType{Name: "String"}
	Void  = &PrimitiveType{Name: "Void"}
	Float = &PrimitiveType{Name: "Float"}
)

// ClassType is a declared class. Classes are single-inheritance: Super is
// nil only for the program's root class.
type ClassType struct {
	ID         uuid.UUID
	Name       string
	Abstract   bool
	Super      *ClassType
	Implements []*InterfaceType
	Fields     []*Field
	Methods    []*Method
}

func (t *ClassType) String() string     { return t.Name }
func (t *ClassType) typeNode()          {}
func (t *ClassType) referenceTypeNode() {}

// InterfaceType is a declared interface. Interfaces may extend other
// interfaces and declare abstract methods.
type InterfaceType struct {
	ID      uuid.UUID
	Name    string
	Extends []*InterfaceType
	Methods []*Method
}

func (t *InterfaceType) String() string     { return t.Name }
func (t *InterfaceType) typeNode()          {}
func (t *InterfaceType) referenceTypeNode() {}

// NullType is the bottom element of the reference-type lattice: a subtype
// of every reference type. A slot whose declared type is Null can only ever
// hold null.
type NullType struct{}

func (t *NullType) String() string     { return "null" }
func (t *NullType) typeNode()          {}
func (t *NullType) referenceTypeNode() {}

// Null is the single null type instance.
var Null = &NullType{}

// IsReference reports whether t is a reference type (class, interface, or
// the null type).
func IsReference(t Type) bool {
	_, ok := t.(ReferenceType)
	return ok
}

// IsAbstractRef reports whether t is a type that cannot be instantiated
// directly: an abstract class or an interface.
func IsAbstractRef(t Type) bool {
	switch rt := t.(type) {
	case *ClassType:
		return rt.Abstract
	case *InterfaceType:
		return true
	}
	return false
}

// SuperInterfaces walks the transitive extends/implements closure of the
// given interfaces, invoking fn once per distinct interface.
func SuperInterfaces(ifaces []*InterfaceType, fn func(*InterfaceType)) {
	seen := make(map[*InterfaceType]bool)
	var walk func(list []*InterfaceType)
	walk = func(list []*InterfaceType) {
		for _, it := range list {
			if seen[it] {
				continue
			}
			seen[it] = true
			fn(it)
			walk(it.Extends)
		}
	}
	walk(ifaces)
}
