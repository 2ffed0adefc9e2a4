package ir

// Handler receives IR nodes during a Walk. Expression visits are
// post-order: children are walked (and possibly replaced) before their
// parent is visited, so a parent always sees its operands' final shapes.
type Handler interface {
	// EnterType is called before a declared type's members are walked;
	// returning false skips the members. ExitType is always called.
	EnterType(t ReferenceType) bool
	ExitType(t ReferenceType)

	// EnterMethod is called before a method body is walked; returning
	// false skips the body. ExitMethod is always called.
	EnterMethod(m *Method) bool
	ExitMethod(m *Method)

	VisitLocalDecl(d *LocalDecl)
	VisitReturn(r *Return)
	VisitTry(t *Try)

	// VisitExpr is called for every expression, post-order. The cursor
	// substitutes the visited expression within its parent.
	VisitExpr(cur *Cursor, e Expression)
}

// BaseHandler provides no-op defaults so handlers implement only the
// visits they care about.
type BaseHandler struct{}

func (BaseHandler) EnterType(ReferenceType) bool { return true }
func (BaseHandler) ExitType(ReferenceType)       {}
func (BaseHandler) EnterMethod(*Method) bool     { return true }
func (BaseHandler) ExitMethod(*Method)           {}
func (BaseHandler) VisitLocalDecl(*LocalDecl)    {}
func (BaseHandler) VisitReturn(*Return)          {}
func (BaseHandler) VisitTry(*Try)                {}
func (BaseHandler) VisitExpr(*Cursor, Expression) {}

// Cursor identifies the expression currently being visited and lets the
// handler substitute it within its parent.
type Cursor struct {
	replacement Expression
	replaced    bool
}

// ReplaceMe substitutes the visited expression with e in its parent.
func (c *Cursor) ReplaceMe(e Expression) {
	c.replacement = e
	c.replaced = true
}

// Walk traverses every declared type, field initializer, and method body
// of the program, dispatching to h.
func Walk(p *Program, h Handler) {
	for _, t := range p.Types {
		walkType(h, t)
	}
}

func walkType(h Handler, t ReferenceType) {
	enter := h.EnterType(t)
	if enter {
		switch rt := t.(type) {
		case *ClassType:
			for _, f := range rt.Fields {
				if f.Initializer != nil {
					f.Initializer = walkExpr(h, f.Initializer)
				}
			}
			for _, m := range rt.Methods {
				walkMethod(h, m)
			}
		case *InterfaceType:
			for _, m := range rt.Methods {
				walkMethod(h, m)
			}
		}
	}
	h.ExitType(t)
}

func walkMethod(h Handler, m *Method) {
	if h.EnterMethod(m) && m.Body != nil {
		walkStmts(h, m.Body)
	}
	h.ExitMethod(m)
}

func walkStmts(h Handler, b *Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		walkStmt(h, s)
	}
}

func walkStmt(h Handler, s Statement) {
	switch st := s.(type) {
	case *Block:
		walkStmts(h, st)
	case *LocalDecl:
		if st.Init != nil {
			st.Init = walkExpr(h, st.Init)
		}
		h.VisitLocalDecl(st)
	case *ExprStmt:
		st.Expr = walkExpr(h, st.Expr)
	case *Return:
		if st.Expr != nil {
			st.Expr = walkExpr(h, st.Expr)
		}
		h.VisitReturn(st)
	case *If:
		st.Cond = walkExpr(h, st.Cond)
		walkStmts(h, st.Then)
		walkStmts(h, st.Else)
	case *While:
		st.Cond = walkExpr(h, st.Cond)
		walkStmts(h, st.Body)
	case *Try:
		walkStmts(h, st.Body)
		h.VisitTry(st)
		walkStmts(h, st.Catch)
	}
}

func walkExpr(h Handler, e Expression) Expression {
	switch x := e.(type) {
	case *Binary:
		x.Left = walkExpr(h, x.Left)
		x.Right = walkExpr(h, x.Right)
	case *Cast:
		x.Expr = walkExpr(h, x.Expr)
	case *InstanceOf:
		x.Expr = walkExpr(h, x.Expr)
	case *FieldRef:
		if x.Qualifier != nil {
			x.Qualifier = walkExpr(h, x.Qualifier)
		}
	case *Call:
		if x.Qualifier != nil {
			x.Qualifier = walkExpr(h, x.Qualifier)
		}
		for i := range x.Args {
			x.Args[i] = walkExpr(h, x.Args[i])
		}
	case *New:
		for i := range x.Args {
			x.Args[i] = walkExpr(h, x.Args[i])
		}
	}
	var cur Cursor
	h.VisitExpr(&cur, e)
	if cur.replaced {
		return cur.replacement
	}
	return e
}
