package ir

import (
	"fmt"

	"github.com/google/uuid"
)

// Variable is a slot that carries a declared type: a field, a local, a
// parameter, or a method return slot. The tightener narrows declared types
// exclusively through SetType.
type Variable interface {
	Name() string
	Type() Type
	SetType(Type)
}

// Field is a class member slot. Static fields belong to the class itself;
// volatile fields are never tightened.
type Field struct {
	ID          uuid.UUID
	FieldName   string
	DeclType    Type
	Enclosing   *ClassType
	Static      bool
	Volatile    bool
	Initializer Expression
}

func (f *Field) Name() string    { return f.FieldName }
func (f *Field) Type() Type      { return f.DeclType }
func (f *Field) SetType(t Type)  { f.DeclType = t }
func (f *Field) String() string {
	if f.Enclosing == nil {
		return f.FieldName
	}
	return fmt.Sprintf("%s.%s", f.Enclosing.Name, f.FieldName)
}

// Local is a method-body slot introduced by a declaration statement.
type Local struct {
	LocalName string
	DeclType  Type
}

func (l *Local) Name() string   { return l.LocalName }
func (l *Local) Type() Type     { return l.DeclType }
func (l *Local) SetType(t Type) { l.DeclType = t }

// Param is a method parameter slot. IsThis marks the synthesized receiver
// parameter of a static forwarder.
type Param struct {
	ParamName string
	DeclType  Type
	IsThis    bool
	Owner     *Method
}

func (p *Param) Name() string   { return p.ParamName }
func (p *Param) Type() Type     { return p.DeclType }
func (p *Param) SetType(t Type) { p.DeclType = t }

// Method is a declared method. The method itself doubles as its return
// slot: Type/SetType read and write the declared return type.
//
// A native method has no body; the foreign code it stands for is summarized
// by ForeignFieldWrites and ForeignMethodRefs, the members it touches across
// the opaque boundary.
type Method struct {
	ID         uuid.UUID
	MethodName string
	Enclosing  ReferenceType
	Params     []*Param
	Return     Type
	Abstract   bool
	Native     bool
	Static     bool
	Body       *Block

	// Instance is the instance counterpart of a static forwarder, nil if
	// the counterpart was pruned by an earlier pass.
	Instance *Method

	ForeignFieldWrites []*FieldRef
	ForeignMethodRefs  []*Method
}

func (m *Method) Name() string   { return m.MethodName }
func (m *Method) Type() Type     { return m.Return }
func (m *Method) SetType(t Type) { m.Return = t }

func (m *Method) String() string {
	if m.Enclosing == nil {
		return m.MethodName
	}
	return fmt.Sprintf("%s.%s", m.Enclosing.String(), m.MethodName)
}

// IsStaticForwarder reports whether m is a static method synthesized from
// an instance method, taking the receiver as an explicit first parameter.
func (m *Method) IsStaticForwarder() bool {
	return m.Static && len(m.Params) > 0 && m.Params[0].IsThis
}
