package ir

import (
	"github.com/google/uuid"

	"github.com/funvibe/tern/internal/config"
)

// Program is a fully-linked whole program: every declared type, plus the
// null-field and null-method sentinels that receiver normalization
// retargets null-dereferences to.
type Program struct {
	// Root is the implicit superclass of every class and the supertype of
	// every interface value.
	Root *ClassType

	// Types holds declared types in declaration order, Root included.
	Types []ReferenceType

	// NullField and NullMethod are program-wide sentinels standing for a
	// read or call through a null receiver. Downstream passes lower
	// references to them into explicit faults.
	NullField  *Field
	NullMethod *Method

	// CodeGen marks host-enumerated code-generation types; the tightener
	// leaves them untouched.
	CodeGen map[ReferenceType]bool
}

// NewProgram creates an empty program with a root class named Object and
// the two null sentinels installed.
func NewProgram() *Program {
	p := &Program{
		CodeGen: make(map[ReferenceType]bool),
	}
	p.Root = &ClassType{ID: uuid.New(), Name: config.RootClassName}
	p.Types = append(p.Types, p.Root)
	p.NullField = &Field{
		ID:        uuid.New(),
		FieldName: config.NullFieldName,
		DeclType:  Null,
	}
	p.NullMethod = &Method{
		ID:         uuid.New(),
		MethodName: config.NullMethodName,
		Return:     Null,
	}
	return p
}

// NewClass declares a class. A nil super means the class extends Root.
func (p *Program) NewClass(name string, super *ClassType, abstract bool) *ClassType {
	if super == nil {
		super = p.Root
	}
	c := &ClassType{
		ID:       uuid.New(),
		Name:     name,
		Abstract: abstract,
		Super:    super,
	}
	p.Types = append(p.Types, c)
	return c
}

// NewInterface declares an interface.
func (p *Program) NewInterface(name string, extends ...*InterfaceType) *InterfaceType {
	it := &InterfaceType{
		ID:      uuid.New(),
		Name:    name,
		Extends: extends,
	}
	p.Types = append(p.Types, it)
	return it
}

// FindType returns the declared type with the given name, or nil.
func (p *Program) FindType(name string) ReferenceType {
	for _, t := range p.Types {
		switch rt := t.(type) {
		case *ClassType:
			if rt.Name == name {
				return rt
			}
		case *InterfaceType:
			if rt.Name == name {
				return rt
			}
		}
	}
	return nil
}

// Classes returns the declared classes in declaration order.
func (p *Program) Classes() []*ClassType {
	var out []*ClassType
	for _, t := range p.Types {
		if c, ok := t.(*ClassType); ok {
			out = append(out, c)
		}
	}
	return out
}

// MarkCodeGen flags the named types as code-generation types. Unknown
// names are ignored; the host may enumerate types that earlier passes
// already pruned.
func (p *Program) MarkCodeGen(names ...string) {
	for _, name := range names {
		if t := p.FindType(name); t != nil {
			p.CodeGen[t] = true
		}
	}
}

// NewField declares a field on c.
func (c *ClassType) NewField(name string, typ Type) *Field {
	f := &Field{
		ID:        uuid.New(),
		FieldName: name,
		DeclType:  typ,
		Enclosing: c,
	}
	c.Fields = append(c.Fields, f)
	return f
}

// NewMethod declares a method on c. Parameters are added with AddParam.
func (c *ClassType) NewMethod(name string, ret Type) *Method {
	m := &Method{
		ID:         uuid.New(),
		MethodName: name,
		Enclosing:  c,
		Return:     ret,
		Body:       &Block{},
	}
	c.Methods = append(c.Methods, m)
	return m
}

// NewMethod declares an abstract method on it.
func (it *InterfaceType) NewMethod(name string, ret Type) *Method {
	m := &Method{
		ID:         uuid.New(),
		MethodName: name,
		Enclosing:  it,
		Return:     ret,
		Abstract:   true,
	}
	it.Methods = append(it.Methods, m)
	return m
}

// AddParam appends a parameter slot to m.
func (m *Method) AddParam(name string, typ Type) *Param {
	p := &Param{
		ParamName: name,
		DeclType:  typ,
		Owner:     m,
	}
	m.Params = append(m.Params, p)
	return p
}

// AddThisParam appends the synthesized receiver parameter of a static
// forwarder.
func (m *Method) AddThisParam(typ Type) *Param {
	p := m.AddParam("this", typ)
	p.IsThis = true
	return p
}
