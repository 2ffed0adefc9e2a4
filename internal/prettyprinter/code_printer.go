package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/funvibe/tern/internal/ir"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders a program IR as readable pseudo-source. The output
// shows each slot's current declared type, so before/after dumps make
// tightening results visible.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders the whole program.
func (p *CodePrinter) Print(prog *ir.Program) string {
	p.buf.Reset()
	for _, t := range prog.Types {
		switch rt := t.(type) {
		case *ir.ClassType:
			p.printClass(rt, prog)
		case *ir.InterfaceType:
			p.printInterface(rt)
		}
	}
	return p.buf.String()
}

func (p *CodePrinter) printClass(c *ir.ClassType, prog *ir.Program) {
	header := "class " + c.Name
	if c.Abstract {
		header = "abstract " + header
	}
	if c.Super != nil && c.Super != prog.Root {
		header += " extends " + c.Super.Name
	}
	if len(c.Implements) > 0 {
		names := make([]string, len(c.Implements))
		for i, it := range c.Implements {
			names[i] = it.Name
		}
		header += " implements " + strings.Join(names, ", ")
	}
	p.writeLine(header + " {")
	p.indent++
	for _, f := range c.Fields {
		p.printField(f)
	}
	for _, m := range c.Methods {
		p.printMethod(m)
	}
	p.indent--
	p.writeLine("}")
}

func (p *CodePrinter) printInterface(it *ir.InterfaceType) {
	header := "interface " + it.Name
	if len(it.Extends) > 0 {
		names := make([]string, len(it.Extends))
		for i, sup := range it.Extends {
			names[i] = sup.Name
		}
		header += " extends " + strings.Join(names, ", ")
	}
	p.writeLine(header + " {")
	p.indent++
	for _, m := range it.Methods {
		p.printMethod(m)
	}
	p.indent--
	p.writeLine("}")
}

func (p *CodePrinter) printField(f *ir.Field) {
	line := ""
	if f.Static {
		line += "static "
	}
	if f.Volatile {
		line += "volatile "
	}
	line += fmt.Sprintf("%s: %s", f.FieldName, f.Type())
	if f.Initializer != nil {
		line += " = " + p.exprString(f.Initializer)
	}
	p.writeLine(line + ";")
}

func (p *CodePrinter) printMethod(m *ir.Method) {
	line := ""
	if m.Static {
		line += "static "
	}
	if m.Abstract {
		line += "abstract "
	}
	if m.Native {
		line += "native "
	}
	params := make([]string, len(m.Params))
	for i, param := range m.Params {
		params[i] = fmt.Sprintf("%s: %s", param.ParamName, param.Type())
	}
	line += fmt.Sprintf("%s(%s): %s", m.MethodName, strings.Join(params, ", "), m.Return)
	if m.Body == nil || m.Abstract || m.Native {
		p.writeLine(line + ";")
		return
	}
	p.writeLine(line + " {")
	p.indent++
	for _, s := range m.Body.Stmts {
		p.printStmt(s)
	}
	p.indent--
	p.writeLine("}")
}

func (p *CodePrinter) printStmt(s ir.Statement) {
	switch st := s.(type) {
	case *ir.Block:
		p.writeLine("{")
		p.indent++
		for _, inner := range st.Stmts {
			p.printStmt(inner)
		}
		p.indent--
		p.writeLine("}")
	case *ir.LocalDecl:
		line := fmt.Sprintf("var %s: %s", st.Local.LocalName, st.Local.Type())
		if st.Init != nil {
			line += " = " + p.exprString(st.Init)
		}
		p.writeLine(line + ";")
	case *ir.ExprStmt:
		p.writeLine(p.exprString(st.Expr) + ";")
	case *ir.Return:
		if st.Expr == nil {
			p.writeLine("return;")
		} else {
			p.writeLine("return " + p.exprString(st.Expr) + ";")
		}
	case *ir.If:
		p.writeLine("if (" + p.exprString(st.Cond) + ") {")
		p.indent++
		for _, inner := range st.Then.Stmts {
			p.printStmt(inner)
		}
		p.indent--
		if st.Else != nil {
			p.writeLine("} else {")
			p.indent++
			for _, inner := range st.Else.Stmts {
				p.printStmt(inner)
			}
			p.indent--
		}
		p.writeLine("}")
	case *ir.While:
		p.writeLine("while (" + p.exprString(st.Cond) + ") {")
		p.indent++
		for _, inner := range st.Body.Stmts {
			p.printStmt(inner)
		}
		p.indent--
		p.writeLine("}")
	case *ir.Try:
		p.writeLine("try {")
		p.indent++
		for _, inner := range st.Body.Stmts {
			p.printStmt(inner)
		}
		p.indent--
		p.writeLine(fmt.Sprintf("} catch (%s: %s) {", st.CatchVar.LocalName, st.CatchVar.Type()))
		p.indent++
		for _, inner := range st.Catch.Stmts {
			p.printStmt(inner)
		}
		p.indent--
		p.writeLine("}")
	default:
		p.writeLine("<???>;")
	}
}

func (p *CodePrinter) exprString(e ir.Expression) string {
	switch x := e.(type) {
	case nil:
		return "<???>"
	case *ir.NullLit:
		return "null"
	case *ir.BoolLit:
		return fmt.Sprintf("%v", x.Value)
	case *ir.IntLit:
		return fmt.Sprintf("%d", x.Value)
	case *ir.StringLit:
		return fmt.Sprintf("%q", x.Value)
	case *ir.VarRef:
		return x.Target.Name()
	case *ir.FieldRef:
		if x.Qualifier == nil {
			return x.Field.String()
		}
		return p.exprString(x.Qualifier) + "." + x.Field.FieldName
	case *ir.Call:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = p.exprString(a)
		}
		name := x.Target.String()
		if x.Qualifier != nil {
			name = p.exprString(x.Qualifier) + "." + x.Target.MethodName
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
	case *ir.Cast:
		return fmt.Sprintf("(%s) %s", x.Target, p.exprString(x.Expr))
	case *ir.InstanceOf:
		return fmt.Sprintf("%s instanceof %s", p.exprString(x.Expr), x.Target)
	case *ir.New:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = p.exprString(a)
		}
		return fmt.Sprintf("new %s(%s)", x.Class.Name, strings.Join(args, ", "))
	case *ir.Binary:
		return fmt.Sprintf("%s %s %s", p.exprString(x.Left), x.Op, p.exprString(x.Right))
	default:
		return "<???>"
	}
}

func (p *CodePrinter) writeLine(s string) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.buf.WriteString(s)
	p.buf.WriteString("\n")
}

// Print renders prog with a fresh printer.
func Print(prog *ir.Program) string {
	return NewCodePrinter().Print(prog)
}
