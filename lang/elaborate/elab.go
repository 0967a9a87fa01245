package elaborate

import (
	"errors"

	"github.com/sable-lang/sable/lang/parser"
)

// Scope is one lexical frame of the elaborator: type variables introduced
// by a type-parameter list and expression variables introduced by patterns.
type Scope struct {
	typeVars map[string]struct{}
	exprVars map[string]Type
}

func newScope() Scope {
	return Scope{
		typeVars: make(map[string]struct{}),
		exprVars: make(map[string]Type),
	}
}

// Context is the elaborator's scope stack.
type Context struct {
	scopes []Scope
}

var errNoScope = errors.New("no scope")

func (c *Context) pushScope() {
	c.scopes = append(c.scopes, newScope())
}

func (c *Context) popScope() error {
	if len(c.scopes) == 0 {
		return errNoScope
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
	return nil
}

func (c *Context) addTypeVar(ident string) error {
	if len(c.scopes) == 0 {
		return errNoScope
	}
	c.scopes[len(c.scopes)-1].typeVars[ident] = struct{}{}
	return nil
}

func (c *Context) addExprVar(ident string, typ Type) error {
	if len(c.scopes) == 0 {
		return errNoScope
	}
	c.scopes[len(c.scopes)-1].exprVars[ident] = typ
	return nil
}

func (c *Context) hasTypeVar(ident string) bool {
	for _, scope := range c.scopes {
		if _, ok := scope.typeVars[ident]; ok {
			return true
		}
	}
	return false
}

func (c *Context) findExprVar(ident string) (Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if typ, ok := c.scopes[i].exprVars[ident]; ok {
			return typ, true
		}
	}
	return nil, false
}

// Elaborator translates a raw package into the elaborated tree, driven by
// the finished symbol table. It performs a single forward pass, moving the
// table cursor in step with the declaration nesting.
type Elaborator struct {
	table *Table
	ctx   Context
}

func NewElaborator(table *Table) *Elaborator {
	return &Elaborator{table: table}
}

func (e *Elaborator) Elab(pkg *parser.Package) (*Package, error) {
	e.ctx.pushScope()
	body := make([]Decl, 0, len(pkg.Body))
	for _, decl := range pkg.Body {
		elaborated, err := e.elabDecl(decl)
		if err != nil {
			return nil, err
		}
		body = append(body, elaborated)
	}
	if err := e.ctx.popScope(); err != nil {
		return nil, err
	}
	return &Package{Ident: pkg.Ident, Header: pkg.Header, Body: body, span: pkg.Span()}, nil
}

// Types

func (e *Elaborator) elabType(typ parser.Type) (Type, error) {
	switch typ := typ.(type) {
	case *parser.MetaType:
		return &MetaType{span: typ.Span()}, nil
	case *parser.IntType:
		return &IntType{span: typ.Span()}, nil
	case *parser.BoolType:
		return &BoolType{span: typ.Span()}, nil
	case *parser.CharType:
		return &CharType{span: typ.Span()}, nil
	case *parser.StringType:
		return &StringType{span: typ.Span()}, nil
	case *parser.UnitType:
		return &UnitType{span: typ.Span()}, nil
	case *parser.NameType:
		return e.elabNameType(typ)
	case *parser.TupleType:
		elems, err := e.elabTypes(typ.Elems)
		if err != nil {
			return nil, err
		}
		return &TupleType{Elems: elems, span: typ.Span()}, nil
	case *parser.ArrowType:
		inputs, err := e.elabTypes(typ.Inputs)
		if err != nil {
			return nil, err
		}
		output, err := e.elabType(typ.Output)
		if err != nil {
			return nil, err
		}
		return &ArrowType{Inputs: inputs, Output: output, span: typ.Span()}, nil
	}
	return nil, &ResolveError{Kind: InvalidType, Name: "unknown type form"}
}

func (e *Elaborator) elabTypes(types []parser.Type) ([]Type, error) {
	if types == nil {
		return nil, nil
	}
	out := make([]Type, 0, len(types))
	for _, typ := range types {
		elaborated, err := e.elabType(typ)
		if err != nil {
			return nil, err
		}
		out = append(out, elaborated)
	}
	return out, nil
}

func (e *Elaborator) elabNameType(typ *parser.NameType) (Type, error) {
	path, rest := typ.Name.Slice()
	if len(rest) != 0 {
		return nil, &ResolveError{Kind: InvalidType, Name: typ.Name.String()}
	}
	if len(path) == 0 && typ.TypeArgs == nil && e.ctx.hasTypeVar(typ.Name.Ident) {
		return &VarType{Ident: typ.Name.Ident, span: typ.Span()}, nil
	}
	sym, err := e.table.FindTypeSymbol(typ.Name.Ident, path)
	if err != nil {
		return nil, err
	}
	typeArgs, err := e.elabTypes(typ.TypeArgs)
	if err != nil {
		return nil, err
	}
	switch sym.Kind {
	case SymEnum:
		return &EnumType{Ident: typ.Name.Ident, TypeArgs: typeArgs, span: typ.Span()}, nil
	case SymClass:
		return &ClassType{Ident: typ.Name.Ident, TypeArgs: typeArgs, span: typ.Span()}, nil
	case SymTypealias:
		return &TypealiasType{Ident: typ.Name.Ident, TypeArgs: typeArgs, span: typ.Span()}, nil
	case SymInterface:
		return &InterfaceType{Ident: typ.Name.Ident, TypeArgs: typeArgs, span: typ.Span()}, nil
	default:
		return nil, &ResolveError{Kind: InvalidType, Name: typ.Name.String()}
	}
}

// Patterns

func (e *Elaborator) elabPat(pat parser.Pat) (Pat, error) {
	switch pat := pat.(type) {
	case *parser.LitPat:
		return &LitPat{Lit: pat.Lit, span: pat.Span()}, nil
	case *parser.TuplePat:
		elems := make([]Pat, 0, len(pat.Elems))
		for _, elem := range pat.Elems {
			elaborated, err := e.elabPat(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elaborated)
		}
		return &TuplePat{Elems: elems, span: pat.Span()}, nil
	case *parser.CtorPat:
		return e.elabCtorPat(pat)
	case *parser.NamePat:
		return e.elabNamePat(pat)
	case *parser.WildPat:
		return &WildPat{span: pat.Span()}, nil
	case *parser.OrPat:
		options := make([]Pat, 0, len(pat.Options))
		for _, option := range pat.Options {
			elaborated, err := e.elabPat(option)
			if err != nil {
				return nil, err
			}
			options = append(options, elaborated)
		}
		return &OrPat{Options: options, span: pat.Span()}, nil
	case *parser.AtPat:
		if len(pat.Name.Path) != 0 {
			return nil, &ResolveError{Kind: InvalidPatternName, Name: pat.Name.String()}
		}
		hint, err := e.elabType(pat.Hint)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.addExprVar(pat.Name.Ident, hint); err != nil {
			return nil, err
		}
		inner, err := e.elabPat(pat.Pat)
		if err != nil {
			return nil, err
		}
		return &AtPat{Ident: pat.Name.Ident, Hint: hint, IsMut: pat.IsMut, Pat: inner, span: pat.Span()}, nil
	}
	return nil, &ResolveError{Kind: InvalidPatternName, Name: "unknown pattern form"}
}

func (e *Elaborator) elabCtorPat(pat *parser.CtorPat) (Pat, error) {
	path, rest := pat.Name.Slice()
	if len(rest) != 0 {
		return nil, &ResolveError{Kind: InvalidPatternName, Name: pat.Name.String()}
	}
	sym, err := e.table.FindExprSymbol(pat.Name.Ident, path)
	if err != nil {
		return nil, err
	}
	typeArgs, err := e.elabTypes(pat.TypeArgs)
	if err != nil {
		return nil, err
	}
	var args []Pat
	if pat.Args != nil {
		args = make([]Pat, 0, len(pat.Args))
		for _, arg := range pat.Args {
			elaborated, err := e.elabPat(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, elaborated)
		}
	}
	return &CtorPat{Ident: sym.Path, TypeArgs: typeArgs, Args: args, span: pat.Span()}, nil
}

// elabNamePat turns the remaining ambiguous name patterns into bindings.
// Declaration-level patterns were already rewritten by the table builder;
// statement-level patterns get the same constructor probe here, so no
// binding ever shadows a visible constructor.
func (e *Elaborator) elabNamePat(pat *parser.NamePat) (Pat, error) {
	path, rest := pat.Name.Slice()
	if len(rest) != 0 {
		return nil, &ResolveError{Kind: InvalidPatternName, Name: pat.Name.String()}
	}
	if sym, err := e.table.FindExprSymbol(pat.Name.Ident, path); err == nil && sym.Kind == SymCtor {
		if pat.IsMut {
			return nil, &SemanticError{Kind: MutOnCtorPattern, Name: pat.Name.String()}
		}
		if pat.Hint != nil && pat.Hint.TypeKind() != parser.TypeMeta {
			return nil, &SemanticError{Kind: HintOnCtorPattern, Name: pat.Name.String()}
		}
		typeArgs, err := e.elabTypes(pat.TypeArgs)
		if err != nil {
			return nil, err
		}
		return &CtorPat{Ident: sym.Path, TypeArgs: typeArgs, span: pat.Span()}, nil
	}
	if len(path) != 0 || pat.TypeArgs != nil {
		return nil, &ResolveError{Kind: InvalidPatternName, Name: pat.Name.String()}
	}
	hint, err := e.elabType(pat.Hint)
	if err != nil {
		return nil, err
	}
	if err := e.ctx.addExprVar(pat.Name.Ident, hint); err != nil {
		return nil, err
	}
	return &VarPat{Ident: pat.Name.Ident, Hint: hint, IsMut: pat.IsMut, span: pat.Span()}, nil
}

// Expressions

func (e *Elaborator) elabExprs(exprs []parser.Expr) ([]Expr, error) {
	if exprs == nil {
		return nil, nil
	}
	out := make([]Expr, 0, len(exprs))
	for _, expr := range exprs {
		elaborated, err := e.elabExpr(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, elaborated)
	}
	return out, nil
}

func (e *Elaborator) elabExpr(expr parser.Expr) (Expr, error) {
	switch expr := expr.(type) {
	case *parser.LitExpr:
		return &LitExpr{Lit: expr.Lit, span: expr.Span()}, nil
	case *parser.UnaryExpr:
		x, err := e.elabExpr(expr.X)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: expr.Op, X: x, span: expr.Span()}, nil
	case *parser.IndexExpr:
		x, err := e.elabExpr(expr.X)
		if err != nil {
			return nil, err
		}
		indices, err := e.elabExprs(expr.Indices)
		if err != nil {
			return nil, err
		}
		return &IndexExpr{X: x, Indices: indices, span: expr.Span()}, nil
	case *parser.DotExpr:
		x, err := e.elabExpr(expr.X)
		if err != nil {
			return nil, err
		}
		return e.elabSelector(x, expr.Path, expr.TypeArgs, expr.Span())
	case *parser.BinaryExpr:
		l, err := e.elabExpr(expr.L)
		if err != nil {
			return nil, err
		}
		r, err := e.elabExpr(expr.R)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: expr.Op, L: l, R: r, span: expr.Span()}, nil
	case *parser.AssignExpr:
		l, err := e.elabExpr(expr.L)
		if err != nil {
			return nil, err
		}
		r, err := e.elabExpr(expr.R)
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Mode: expr.Mode, L: l, R: r, span: expr.Span()}, nil
	case *parser.TupleExpr:
		elems, err := e.elabExprs(expr.Elems)
		if err != nil {
			return nil, err
		}
		return &TupleExpr{Elems: elems, span: expr.Span()}, nil
	case *parser.HintExpr:
		x, err := e.elabExpr(expr.X)
		if err != nil {
			return nil, err
		}
		typ, err := e.elabType(expr.Type)
		if err != nil {
			return nil, err
		}
		return &HintExpr{X: x, Type: typ, span: expr.Span()}, nil
	case *parser.NameExpr:
		return e.elabNameExpr(expr)
	case *parser.HoleExpr:
		return &HoleExpr{span: expr.Span()}, nil
	case *parser.LamExpr:
		e.ctx.pushScope()
		params := make([]Pat, 0, len(expr.Params))
		for _, param := range expr.Params {
			elaborated, err := e.elabPat(param)
			if err != nil {
				return nil, err
			}
			params = append(params, elaborated)
		}
		body, err := e.elabExpr(expr.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &LamExpr{Params: params, Body: body, span: expr.Span()}, nil
	case *parser.AppExpr:
		fn, err := e.elabExpr(expr.Func)
		if err != nil {
			return nil, err
		}
		args, err := e.elabExprs(expr.Args)
		if err != nil {
			return nil, err
		}
		return &AppExpr{Func: fn, Args: args, span: expr.Span()}, nil
	case *parser.BlockExpr:
		return e.elabBlock(expr)
	case *parser.IteExpr:
		branches := make([]IteBranch, 0, len(expr.Branches))
		for _, branch := range expr.Branches {
			e.ctx.pushScope()
			cond, err := e.elabCond(branch.Cond)
			if err != nil {
				return nil, err
			}
			then, err := e.elabExpr(branch.Then)
			if err != nil {
				return nil, err
			}
			if err := e.ctx.popScope(); err != nil {
				return nil, err
			}
			branches = append(branches, IteBranch{Cond: cond, Then: then})
		}
		var elseBranch Expr
		if expr.Else != nil {
			var err error
			elseBranch, err = e.elabExpr(expr.Else)
			if err != nil {
				return nil, err
			}
		}
		return &IteExpr{Branches: branches, Else: elseBranch, span: expr.Span()}, nil
	case *parser.SwitchExpr:
		x, err := e.elabExpr(expr.X)
		if err != nil {
			return nil, err
		}
		clauses := make([]Clause, 0, len(expr.Clauses))
		for _, clause := range expr.Clauses {
			elaborated, err := e.elabClause(clause)
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, elaborated)
		}
		return &SwitchExpr{X: x, Clauses: clauses, span: expr.Span()}, nil
	case *parser.ForExpr:
		iter, err := e.elabExpr(expr.Iter)
		if err != nil {
			return nil, err
		}
		e.ctx.pushScope()
		pat, err := e.elabPat(expr.Pat)
		if err != nil {
			return nil, err
		}
		body, err := e.elabExpr(expr.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &ForExpr{Pat: pat, Iter: iter, Body: body, span: expr.Span()}, nil
	case *parser.WhileExpr:
		e.ctx.pushScope()
		cond, err := e.elabCond(expr.Cond)
		if err != nil {
			return nil, err
		}
		body, err := e.elabExpr(expr.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &WhileExpr{Cond: cond, Body: body, span: expr.Span()}, nil
	case *parser.LoopExpr:
		body, err := e.elabExpr(expr.Body)
		if err != nil {
			return nil, err
		}
		return &LoopExpr{Body: body, span: expr.Span()}, nil
	case *parser.BreakExpr:
		return &BreakExpr{span: expr.Span()}, nil
	case *parser.ContinueExpr:
		return &ContinueExpr{span: expr.Span()}, nil
	case *parser.ReturnExpr:
		var x Expr
		if expr.X != nil {
			var err error
			x, err = e.elabExpr(expr.X)
			if err != nil {
				return nil, err
			}
		}
		return &ReturnExpr{X: x, span: expr.Span()}, nil
	}
	return nil, &ResolveError{Kind: InvalidSelector, Name: "unknown expression form"}
}

// elabNameExpr resolves a name expression. A head identifier bound in the
// scope chain is a variable and the whole path becomes a selector chain on
// it; otherwise the leading identifier segments descend through the table
// and the remainder (from the first index segment on) is a selector chain.
func (e *Elaborator) elabNameExpr(expr *parser.NameExpr) (Expr, error) {
	ident := expr.Name.Ident
	span := expr.Span()

	if _, ok := e.ctx.findExprVar(ident); ok {
		base := &VarExpr{Ident: ident, span: span}
		return e.elabSelector(base, expr.Name.Path, expr.TypeArgs, span)
	}

	path, rest := expr.Name.Slice()
	sym, err := e.table.FindExprSymbol(ident, path)
	if err != nil {
		// A dotted path whose head is a table variable selects into the
		// variable rather than descending through modules.
		if len(expr.Name.Path) > 0 {
			if head, herr := e.table.FindExprSymbol(ident, nil); herr == nil && head.Kind == SymVar {
				base := &VarExpr{Ident: ident, span: span}
				return e.elabSelector(base, expr.Name.Path, expr.TypeArgs, span)
			}
		}
		return nil, err
	}
	if sym.Kind == SymVar {
		local := ident
		if len(path) > 0 {
			local = path[len(path)-1]
		}
		base := &VarExpr{Ident: local, span: span}
		return e.elabSelector(base, rest, expr.TypeArgs, span)
	}
	if len(rest) == 0 {
		args, err := e.elabTypes(expr.TypeArgs)
		if err != nil {
			return nil, err
		}
		return &ConstExpr{Ident: sym.Path, TypeArgs: args, span: span}, nil
	}
	base := &ConstExpr{Ident: sym.Path, span: span}
	return e.elabSelector(base, rest, expr.TypeArgs, span)
}

func segString(path []parser.Seg) string {
	var out string
	for i, seg := range path {
		if i > 0 {
			out += "."
		}
		out += seg.String()
	}
	return out
}

// elabSelector splits a selector path: leading index segments become tuple
// projections, the remaining identifier run becomes one field access
// carrying the type arguments. An index after an identifier, or type
// arguments with no trailing identifiers, are invalid selectors.
func (e *Elaborator) elabSelector(base Expr, path []parser.Seg, typeArgs []parser.Type, span Span) (Expr, error) {
	i := 0
	for i < len(path) && path[i].IsIndex {
		base = &ProjExpr{X: base, Index: path[i].Index, span: span}
		i++
	}
	fields := make([]string, 0, len(path)-i)
	for _, seg := range path[i:] {
		if seg.IsIndex {
			return nil, &ResolveError{Kind: InvalidSelector, Name: segString(path)}
		}
		fields = append(fields, seg.Ident)
	}
	if len(fields) == 0 {
		if typeArgs != nil {
			return nil, &ResolveError{Kind: InvalidSelector, Name: "type arguments on projection"}
		}
		return base, nil
	}
	args, err := e.elabTypes(typeArgs)
	if err != nil {
		return nil, err
	}
	return &FieldExpr{X: base, Path: fields, TypeArgs: args, span: span}, nil
}

func (e *Elaborator) elabCond(cond parser.Cond) (Cond, error) {
	switch cond := cond.(type) {
	case *parser.ExprCond:
		x, err := e.elabExpr(cond.X)
		if err != nil {
			return nil, err
		}
		return &ExprCond{X: x, span: cond.Span()}, nil
	case *parser.PatCond:
		x, err := e.elabExpr(cond.X)
		if err != nil {
			return nil, err
		}
		pat, err := e.elabPat(cond.Pat)
		if err != nil {
			return nil, err
		}
		return &PatCond{Pat: pat, X: x, span: cond.Span()}, nil
	}
	return nil, &ResolveError{Kind: InvalidSelector, Name: "unknown condition form"}
}

func (e *Elaborator) elabClause(clause parser.Clause) (Clause, error) {
	switch clause := clause.(type) {
	case *parser.CaseClause:
		e.ctx.pushScope()
		pat, err := e.elabPat(clause.Pat)
		if err != nil {
			return nil, err
		}
		var guard Expr
		if clause.Guard != nil {
			guard, err = e.elabExpr(clause.Guard)
			if err != nil {
				return nil, err
			}
		}
		body, err := e.elabExpr(clause.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &CaseClause{Pat: pat, Guard: guard, Body: body, span: clause.Span()}, nil
	case *parser.DefaultClause:
		body, err := e.elabExpr(clause.Body)
		if err != nil {
			return nil, err
		}
		return &DefaultClause{Body: body, span: clause.Span()}, nil
	}
	return nil, &ResolveError{Kind: InvalidSelector, Name: "unknown clause form"}
}

func (e *Elaborator) elabBlock(block *parser.BlockExpr) (Expr, error) {
	e.ctx.pushScope()
	stmts := make([]Stmt, 0, len(block.Stmts))
	for _, stmt := range block.Stmts {
		elaborated, err := e.elabStmt(stmt)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, elaborated)
	}
	var body Expr
	if block.Body != nil {
		var err error
		body, err = e.elabExpr(block.Body)
		if err != nil {
			return nil, err
		}
	}
	if err := e.ctx.popScope(); err != nil {
		return nil, err
	}
	return &BlockExpr{Stmts: stmts, Body: body, span: block.Span()}, nil
}

// Statements

func (e *Elaborator) elabStmt(stmt parser.Stmt) (Stmt, error) {
	attrs, err := e.elabExprs(stmt.Attrs())
	if err != nil {
		return nil, err
	}
	switch stmt := stmt.(type) {
	case *parser.OpenStmt:
		return &OpenStmt{Attrs: attrs, Imp: stmt.Imp, span: stmt.Span()}, nil
	case *parser.LetStmt:
		x, err := e.elabExpr(stmt.X)
		if err != nil {
			return nil, err
		}
		var elseBranch Expr
		if stmt.Else != nil {
			elseBranch, err = e.elabExpr(stmt.Else)
			if err != nil {
				return nil, err
			}
		}
		pat, err := e.elabPat(stmt.Pat)
		if err != nil {
			return nil, err
		}
		return &LetStmt{Attrs: attrs, Pat: pat, X: x, Else: elseBranch, span: stmt.Span()}, nil
	case *parser.FuncStmt:
		// Register the function name first so the body can recurse.
		if err := e.ctx.addExprVar(stmt.Ident, &MetaType{}); err != nil {
			return nil, err
		}
		e.ctx.pushScope()
		params := make([]Pat, 0, len(stmt.Params))
		for _, param := range stmt.Params {
			elaborated, perr := e.elabPat(param)
			if perr != nil {
				return nil, perr
			}
			params = append(params, elaborated)
		}
		ret, err := e.elabType(stmt.Ret)
		if err != nil {
			return nil, err
		}
		body, err := e.elabExpr(stmt.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &FuncStmt{Attrs: attrs, Ident: stmt.Ident, Params: params, Ret: ret, Body: body, span: stmt.Span()}, nil
	case *parser.BindStmt:
		x, err := e.elabExpr(stmt.X)
		if err != nil {
			return nil, err
		}
		pat, err := e.elabPat(stmt.Pat)
		if err != nil {
			return nil, err
		}
		return &BindStmt{Attrs: attrs, Pat: pat, X: x, span: stmt.Span()}, nil
	case *parser.ExprStmt:
		x, err := e.elabExpr(stmt.X)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Attrs: attrs, X: x, IsVal: stmt.IsVal, span: stmt.Span()}, nil
	}
	return nil, &ResolveError{Kind: InvalidSelector, Name: "unknown statement form"}
}

// Declarations

func (e *Elaborator) elabBounds(bounds []parser.TypeBound) ([]TypeBound, error) {
	out := make([]TypeBound, 0, len(bounds))
	for _, bound := range bounds {
		typ, err := e.elabType(bound.Type)
		if err != nil {
			return nil, err
		}
		bs, err := e.elabTypes(bound.Bounds)
		if err != nil {
			return nil, err
		}
		out = append(out, TypeBound{Type: typ, Bounds: bs})
	}
	return out, nil
}

func (e *Elaborator) pushTypeParams(params []string) error {
	e.ctx.pushScope()
	for _, param := range params {
		if err := e.ctx.addTypeVar(param); err != nil {
			return err
		}
	}
	return nil
}

func (e *Elaborator) elabBody(body []parser.Decl) ([]Decl, error) {
	out := make([]Decl, 0, len(body))
	for _, decl := range body {
		elaborated, err := e.elabDecl(decl)
		if err != nil {
			return nil, err
		}
		out = append(out, elaborated)
	}
	return out, nil
}

func (e *Elaborator) elabDecl(decl parser.Decl) (Decl, error) {
	attrs, err := e.elabExprs(decl.Attrs())
	if err != nil {
		return nil, err
	}
	switch decl := decl.(type) {
	case *parser.ModuleDecl:
		if err := e.table.EnterNode(decl.Ident); err != nil {
			return nil, err
		}
		e.ctx.pushScope()
		body, err := e.elabBody(decl.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		if err := e.table.ExitNode(); err != nil {
			return nil, err
		}
		return &ModuleDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, Body: body, span: decl.Span()}, nil
	case *parser.OpenDecl:
		return &OpenDecl{Attrs: attrs, Access: decl.Access(), Imp: decl.Imp, span: decl.Span()}, nil
	case *parser.ClassDecl:
		if err := e.table.EnterNode(decl.Ident); err != nil {
			return nil, err
		}
		if err := e.pushTypeParams(decl.TypeParams); err != nil {
			return nil, err
		}
		bounds, err := e.elabBounds(decl.Bounds)
		if err != nil {
			return nil, err
		}
		body, err := e.elabBody(decl.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		if err := e.table.ExitNode(); err != nil {
			return nil, err
		}
		return &ClassDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, TypeParams: decl.TypeParams, Bounds: bounds, Body: body, span: decl.Span()}, nil
	case *parser.EnumDecl:
		if err := e.table.EnterNode(decl.Ident); err != nil {
			return nil, err
		}
		if err := e.pushTypeParams(decl.TypeParams); err != nil {
			return nil, err
		}
		bounds, err := e.elabBounds(decl.Bounds)
		if err != nil {
			return nil, err
		}
		body, err := e.elabBody(decl.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		if err := e.table.ExitNode(); err != nil {
			return nil, err
		}
		return &EnumDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, TypeParams: decl.TypeParams, Bounds: bounds, Body: body, span: decl.Span()}, nil
	case *parser.TypealiasDecl:
		if err := e.pushTypeParams(decl.TypeParams); err != nil {
			return nil, err
		}
		bounds, err := e.elabBounds(decl.Bounds)
		if err != nil {
			return nil, err
		}
		hint, err := e.elabTypes(decl.Hint)
		if err != nil {
			return nil, err
		}
		var aliased Type
		if decl.Aliased != nil {
			aliased, err = e.elabType(decl.Aliased)
			if err != nil {
				return nil, err
			}
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &TypealiasDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, TypeParams: decl.TypeParams, Bounds: bounds, Hint: hint, Aliased: aliased, span: decl.Span()}, nil
	case *parser.InterfaceDecl:
		if err := e.table.EnterNode(decl.Ident); err != nil {
			return nil, err
		}
		if err := e.pushTypeParams(decl.TypeParams); err != nil {
			return nil, err
		}
		bounds, err := e.elabBounds(decl.Bounds)
		if err != nil {
			return nil, err
		}
		body, err := e.elabBody(decl.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		if err := e.table.ExitNode(); err != nil {
			return nil, err
		}
		return &InterfaceDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, TypeParams: decl.TypeParams, Bounds: bounds, Body: body, span: decl.Span()}, nil
	case *parser.ExtensionDecl:
		if err := e.table.EnterNode(decl.Ident); err != nil {
			return nil, err
		}
		if err := e.pushTypeParams(decl.TypeParams); err != nil {
			return nil, err
		}
		bounds, err := e.elabBounds(decl.Bounds)
		if err != nil {
			return nil, err
		}
		base, err := e.elabType(decl.Base)
		if err != nil {
			return nil, err
		}
		iface, err := e.elabType(decl.Iface)
		if err != nil {
			return nil, err
		}
		body, err := e.elabBody(decl.Body)
		if err != nil {
			return nil, err
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		if err := e.table.ExitNode(); err != nil {
			return nil, err
		}
		return &ExtensionDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, TypeParams: decl.TypeParams, Bounds: bounds, Base: base, Iface: iface, Body: body, span: decl.Span()}, nil
	case *parser.LetDecl:
		var x Expr
		if decl.X != nil {
			x, err = e.elabExpr(decl.X)
			if err != nil {
				return nil, err
			}
		}
		pat, err := e.elabPat(decl.Pat)
		if err != nil {
			return nil, err
		}
		return &LetDecl{Attrs: attrs, Access: decl.Access(), Pat: pat, X: x, span: decl.Span()}, nil
	case *parser.FuncDecl:
		if err := e.pushTypeParams(decl.TypeParams); err != nil {
			return nil, err
		}
		bounds, err := e.elabBounds(decl.Bounds)
		if err != nil {
			return nil, err
		}
		params := make([]Pat, 0, len(decl.Params))
		for _, param := range decl.Params {
			elaborated, perr := e.elabPat(param)
			if perr != nil {
				return nil, perr
			}
			params = append(params, elaborated)
		}
		ret, err := e.elabType(decl.Ret)
		if err != nil {
			return nil, err
		}
		var body Expr
		if decl.Body != nil {
			body, err = e.elabExpr(decl.Body)
			if err != nil {
				return nil, err
			}
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &FuncDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, TypeParams: decl.TypeParams, Bounds: bounds, Params: params, Ret: ret, Body: body, span: decl.Span()}, nil
	case *parser.InitDecl:
		if err := e.pushTypeParams(decl.TypeParams); err != nil {
			return nil, err
		}
		bounds, err := e.elabBounds(decl.Bounds)
		if err != nil {
			return nil, err
		}
		params := make([]Pat, 0, len(decl.Params))
		for _, param := range decl.Params {
			elaborated, perr := e.elabPat(param)
			if perr != nil {
				return nil, perr
			}
			params = append(params, elaborated)
		}
		ret, err := e.elabType(decl.Ret)
		if err != nil {
			return nil, err
		}
		var body Expr
		if decl.Body != nil {
			body, err = e.elabExpr(decl.Body)
			if err != nil {
				return nil, err
			}
		}
		if err := e.ctx.popScope(); err != nil {
			return nil, err
		}
		return &InitDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, TypeParams: decl.TypeParams, Bounds: bounds, Params: params, Ret: ret, Body: body, span: decl.Span()}, nil
	case *parser.CtorDecl:
		params, err := e.elabTypes(decl.Params)
		if err != nil {
			return nil, err
		}
		return &CtorDecl{Attrs: attrs, Access: decl.Access(), Ident: decl.Ident, Params: params, span: decl.Span()}, nil
	}
	return nil, &ResolveError{Kind: InvalidType, Name: "unknown declaration form"}
}
