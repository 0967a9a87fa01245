package parser

import (
	"errors"
	"testing"
)

func parseExpr(t *testing.T, input string) Expr {
	t.Helper()
	expr, err := NewParser("test", input).ParseExpr()
	if err != nil {
		t.Fatalf("parse expr %q: %v", input, err)
	}
	return expr
}

func parseDecl(t *testing.T, input string) Decl {
	t.Helper()
	decl, err := NewParser("test", input).ParseDecl()
	if err != nil {
		t.Fatalf("parse decl %q: %v", input, err)
	}
	return decl
}

func parseStmt(t *testing.T, input string) Stmt {
	t.Helper()
	stmt, err := NewParser("test", input).ParseStmt()
	if err != nil {
		t.Fatalf("parse stmt %q: %v", input, err)
	}
	return stmt
}

func TestExprPrecedence(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	add, ok := expr.(*BinaryExpr)
	if !ok || add.Op != BinaryAdd {
		t.Fatalf("got %T, want + at the root", expr)
	}
	mul, ok := add.R.(*BinaryExpr)
	if !ok || mul.Op != BinaryMul {
		t.Fatalf("right operand is %T, want *", add.R)
	}

	expr = parseExpr(t, "a || b && c == d < e + f * -g")
	or, ok := expr.(*BinaryExpr)
	if !ok || or.Op != BinaryOr {
		t.Fatalf("got %T, want || at the root", expr)
	}
	and, ok := or.R.(*BinaryExpr)
	if !ok || and.Op != BinaryAnd {
		t.Fatalf("got %T, want && under ||", or.R)
	}
}

func TestAssignRightAssociative(t *testing.T) {
	expr := parseExpr(t, "a = b = c")
	outer, ok := expr.(*AssignExpr)
	if !ok || outer.Mode != BinaryAssign {
		t.Fatalf("got %T", expr)
	}
	if _, ok := outer.L.(*NameExpr); !ok {
		t.Errorf("lhs is %T, want name", outer.L)
	}
	inner, ok := outer.R.(*AssignExpr)
	if !ok {
		t.Fatalf("rhs is %T, want nested assignment", outer.R)
	}
	if _, ok := inner.R.(*NameExpr); !ok {
		t.Errorf("innermost rhs is %T", inner.R)
	}
}

func TestCompoundAssignModes(t *testing.T) {
	tests := []struct {
		input string
		mode  BinaryOp
	}{
		{"a = b", BinaryAssign},
		{"a += b", BinaryAdd},
		{"a -= b", BinarySub},
		{"a *= b", BinaryMul},
		{"a /= b", BinaryDiv},
		{"a %= b", BinaryMod},
	}
	for _, tt := range tests {
		expr := parseExpr(t, tt.input)
		assign, ok := expr.(*AssignExpr)
		if !ok {
			t.Fatalf("%q: got %T", tt.input, expr)
		}
		if assign.Mode != tt.mode {
			t.Errorf("%q: mode %v, want %v", tt.input, assign.Mode, tt.mode)
		}
	}
}

func TestUnaryBindsTighterThanMul(t *testing.T) {
	expr := parseExpr(t, "-x * y")
	mul, ok := expr.(*BinaryExpr)
	if !ok || mul.Op != BinaryMul {
		t.Fatalf("got %T, want * at the root", expr)
	}
	neg, ok := mul.L.(*UnaryExpr)
	if !ok || neg.Op != UnaryNeg {
		t.Fatalf("left operand is %T, want negation", mul.L)
	}
}

func TestLambdaVsTuple(t *testing.T) {
	lam, ok := parseExpr(t, "x => x + 1").(*LamExpr)
	if !ok {
		t.Fatal("single-param lambda did not parse as lambda")
	}
	if len(lam.Params) != 1 {
		t.Errorf("params: %d", len(lam.Params))
	}

	lam, ok = parseExpr(t, "(a, b) => a").(*LamExpr)
	if !ok {
		t.Fatal("tuple-param lambda did not parse as lambda")
	}
	if len(lam.Params) != 2 {
		t.Errorf("params: %d", len(lam.Params))
	}

	if _, ok := parseExpr(t, "(a, b)").(*TupleExpr); !ok {
		t.Error("plain tuple parsed as something else")
	}
	if _, ok := parseExpr(t, "()").(*LitExpr); !ok {
		t.Error("unit did not parse as literal")
	}
	if _, ok := parseExpr(t, "(1)").(*LitExpr); !ok {
		t.Error("parenthesized literal did not collapse")
	}
}

func TestTypeArgsVsLessThan(t *testing.T) {
	// With a closing '>', the '<' commits to type arguments.
	app, ok := parseExpr(t, "f<A, B>(1, 2)").(*AppExpr)
	if !ok {
		t.Fatal("generic application did not parse as application")
	}
	name, ok := app.Func.(*NameExpr)
	if !ok {
		t.Fatalf("callee is %T", app.Func)
	}
	if len(name.TypeArgs) != 2 {
		t.Errorf("type args: %d, want 2", len(name.TypeArgs))
	}
	if len(app.Args) != 2 {
		t.Errorf("args: %d, want 2", len(app.Args))
	}

	// Without one, the checkpoint rolls back and '<' is an operator.
	lt, ok := parseExpr(t, "a<b").(*BinaryExpr)
	if !ok || lt.Op != BinaryLt {
		t.Fatal("a<b did not fall back to less-than")
	}
	l, ok := lt.L.(*NameExpr)
	if !ok || l.Name.Ident != "a" || l.TypeArgs != nil {
		t.Errorf("lhs: %v", lt.L)
	}

	// An expression list inside '<...>' is not a type list.
	lt, ok = parseExpr(t, "a < b + 1").(*BinaryExpr)
	if !ok || lt.Op != BinaryLt {
		t.Fatal("a < b + 1 did not fall back to less-than")
	}
}

func TestNamePathAndPostfix(t *testing.T) {
	name, ok := parseExpr(t, "p.0.field<T>").(*NameExpr)
	if !ok {
		t.Fatal("dotted name did not parse as name expression")
	}
	if name.Name.Ident != "p" || len(name.Name.Path) != 2 {
		t.Fatalf("name: %v", name.Name)
	}
	if !name.Name.Path[0].IsIndex || name.Name.Path[0].Index != 0 {
		t.Errorf("first segment: %v", name.Name.Path[0])
	}
	if name.Name.Path[1].Ident != "field" {
		t.Errorf("second segment: %v", name.Name.Path[1])
	}
	if len(name.TypeArgs) != 1 {
		t.Errorf("type args: %d", len(name.TypeArgs))
	}

	dot, ok := parseExpr(t, "f(x).0").(*DotExpr)
	if !ok {
		t.Fatal("selector on call did not parse as dot expression")
	}
	if _, ok := dot.X.(*AppExpr); !ok {
		t.Errorf("base is %T", dot.X)
	}
	if len(dot.Path) != 1 || !dot.Path[0].IsIndex {
		t.Errorf("path: %v", dot.Path)
	}

	try, ok := parseExpr(t, "f(x)?").(*UnaryExpr)
	if !ok || try.Op != UnaryTry {
		t.Fatal("postfix ? did not parse")
	}

	index, ok := parseExpr(t, "a[i, j]").(*IndexExpr)
	if !ok || len(index.Indices) != 2 {
		t.Fatal("index expression did not parse")
	}
}

func TestControlFlowExprs(t *testing.T) {
	ite, ok := parseExpr(t, "if a { 1 } else if let x = b { 2 } else { 3 }").(*IteExpr)
	if !ok {
		t.Fatal("if did not parse")
	}
	if len(ite.Branches) != 2 {
		t.Fatalf("branches: %d", len(ite.Branches))
	}
	if _, ok := ite.Branches[0].Cond.(*ExprCond); !ok {
		t.Errorf("first cond: %T", ite.Branches[0].Cond)
	}
	if _, ok := ite.Branches[1].Cond.(*PatCond); !ok {
		t.Errorf("second cond: %T", ite.Branches[1].Cond)
	}
	if ite.Else == nil {
		t.Error("else missing")
	}

	sw, ok := parseExpr(t, "switch x { case Some(y): y; case None: 0; default: 1; }").(*SwitchExpr)
	if !ok {
		t.Fatal("switch did not parse")
	}
	if len(sw.Clauses) != 3 {
		t.Fatalf("clauses: %d", len(sw.Clauses))
	}
	caseClause, ok := sw.Clauses[0].(*CaseClause)
	if !ok {
		t.Fatalf("first clause: %T", sw.Clauses[0])
	}
	if _, ok := caseClause.Pat.(*CtorPat); !ok {
		t.Errorf("first pattern: %T", caseClause.Pat)
	}
	if _, ok := sw.Clauses[2].(*DefaultClause); !ok {
		t.Errorf("third clause: %T", sw.Clauses[2])
	}

	guarded, ok := parseExpr(t, "switch x { case n if n > 0: n; }").(*SwitchExpr)
	if !ok {
		t.Fatal("guarded switch did not parse")
	}
	if clause := guarded.Clauses[0].(*CaseClause); clause.Guard == nil {
		t.Error("guard missing")
	}

	forExpr, ok := parseExpr(t, "for x in xs { x; }").(*ForExpr)
	if !ok {
		t.Fatal("for did not parse")
	}
	if _, ok := forExpr.Pat.(*NamePat); !ok {
		t.Errorf("loop pattern: %T", forExpr.Pat)
	}

	if _, ok := parseExpr(t, "while a < 10 { a += 1; }").(*WhileExpr); !ok {
		t.Error("while did not parse")
	}
	if _, ok := parseExpr(t, "loop { break; }").(*LoopExpr); !ok {
		t.Error("loop did not parse")
	}

	ret, ok := parseExpr(t, "return 1").(*ReturnExpr)
	if !ok || ret.X == nil {
		t.Error("return with value did not parse")
	}
	ret = parseExpr(t, "return").(*ReturnExpr)
	if ret.X != nil {
		t.Error("bare return grew a value")
	}
}

func TestBlockTrailingValue(t *testing.T) {
	block, ok := parseExpr(t, "{ f(); 42 }").(*BlockExpr)
	if !ok {
		t.Fatal("block did not parse")
	}
	if len(block.Stmts) != 1 {
		t.Fatalf("stmts: %d", len(block.Stmts))
	}
	if block.Body == nil {
		t.Fatal("trailing value missing")
	}
	if _, ok := block.Body.(*LitExpr); !ok {
		t.Errorf("trailing value: %T", block.Body)
	}

	block = parseExpr(t, "{ f(); 42; }").(*BlockExpr)
	if block.Body != nil {
		t.Error("semicolon-terminated expression became a trailing value")
	}
	if len(block.Stmts) != 2 {
		t.Errorf("stmts: %d", len(block.Stmts))
	}
}

func TestHintExpr(t *testing.T) {
	hint, ok := parseExpr(t, "(x: Int)").(*HintExpr)
	if !ok {
		t.Fatal("hinted expression did not parse")
	}
	if _, ok := hint.Type.(*IntType); !ok {
		t.Errorf("hint type: %T", hint.Type)
	}
}

func TestStatements(t *testing.T) {
	let, ok := parseStmt(t, "let x = 1;").(*LetStmt)
	if !ok {
		t.Fatal("let did not parse")
	}
	if _, ok := let.Pat.(*NamePat); !ok {
		t.Errorf("pattern: %T", let.Pat)
	}

	let = parseStmt(t, "let Some(x) = opt else { return 0; };").(*LetStmt)
	if let.Else == nil {
		t.Error("let-else fallback missing")
	}

	bind, ok := parseStmt(t, "let x <- readLine();").(*BindStmt)
	if !ok {
		t.Fatal("bind did not parse")
	}
	if _, ok := bind.X.(*AppExpr); !ok {
		t.Errorf("bind source: %T", bind.X)
	}

	open, ok := parseStmt(t, "open M.{C as D, *};").(*OpenStmt)
	if !ok {
		t.Fatal("open did not parse")
	}
	node, ok := open.Imp.(*NodeImport)
	if !ok || node.Name != "M" || len(node.Nested) != 2 {
		t.Fatalf("import: %#v", open.Imp)
	}
	alias, ok := node.Nested[0].(*AliasImport)
	if !ok || alias.Name != "C" || alias.Alias != "D" {
		t.Errorf("alias: %#v", node.Nested[0])
	}
	if _, ok := node.Nested[1].(*WildImport); !ok {
		t.Errorf("wild: %#v", node.Nested[1])
	}

	fn, ok := parseStmt(t, "func inc(x) -> Int { x + 1 }").(*FuncStmt)
	if !ok {
		t.Fatal("func stmt did not parse")
	}
	if _, ok := fn.Ret.(*IntType); !ok {
		t.Errorf("return type: %T", fn.Ret)
	}

	expr, ok := parseStmt(t, "f(1);").(*ExprStmt)
	if !ok || expr.IsVal {
		t.Error("terminated expression statement mis-parsed")
	}
}

func TestStmtAttrs(t *testing.T) {
	stmt := parseStmt(t, "@inline let x = 1;")
	if len(stmt.Attrs()) != 1 {
		t.Fatalf("attrs: %d", len(stmt.Attrs()))
	}
	if _, ok := stmt.Attrs()[0].(*NameExpr); !ok {
		t.Errorf("attr: %T", stmt.Attrs()[0])
	}
}

func TestDeclarations(t *testing.T) {
	module, ok := parseDecl(t, "module M { class C; }").(*ModuleDecl)
	if !ok || module.Ident != "M" || len(module.Body) != 1 {
		t.Fatalf("module: %#v", module)
	}

	class, ok := parseDecl(t, "class Box<T: Show> where T: Eq { let v; }").(*ClassDecl)
	if !ok {
		t.Fatal("class did not parse")
	}
	if len(class.TypeParams) != 1 || class.TypeParams[0] != "T" {
		t.Errorf("type params: %v", class.TypeParams)
	}
	// One bound from the parameter list, one from the where clause.
	if len(class.Bounds) != 2 {
		t.Errorf("bounds: %d, want 2", len(class.Bounds))
	}

	enum, ok := parseDecl(t, "enum Option<T> { case None case Some(T) }").(*EnumDecl)
	if !ok || len(enum.Body) != 2 {
		t.Fatal("enum did not parse")
	}
	some, ok := enum.Body[1].(*CtorDecl)
	if !ok || some.Ident != "Some" || len(some.Params) != 1 {
		t.Fatalf("ctor: %#v", enum.Body[1])
	}
	none := enum.Body[0].(*CtorDecl)
	if none.Params != nil {
		t.Error("parameterless case grew params")
	}

	alias, ok := parseDecl(t, "type Pair<A, B> = (A, B);").(*TypealiasDecl)
	if !ok || alias.Aliased == nil {
		t.Fatal("typealias did not parse")
	}
	if _, ok := alias.Aliased.(*TupleType); !ok {
		t.Errorf("aliased: %T", alias.Aliased)
	}

	iface, ok := parseDecl(t, "interface Show { func show(self) -> String; }").(*InterfaceDecl)
	if !ok || len(iface.Body) != 1 {
		t.Fatal("interface did not parse")
	}
	method := iface.Body[0].(*FuncDecl)
	if method.Body != nil {
		t.Error("bodyless method grew a body")
	}

	ext, ok := parseDecl(t, "extension<T> Option<T>: Show { func show(self) -> String { \"\" } }").(*ExtensionDecl)
	if !ok {
		t.Fatal("extension did not parse")
	}
	if ext.Ident != "" {
		t.Error("extension identifier set before table build")
	}

	initDecl, ok := parseDecl(t, "init(x) { x; }").(*InitDecl)
	if !ok || initDecl.Ident != "" {
		t.Fatal("anonymous init did not parse")
	}
	named := parseDecl(t, "init fromPair(p) { p; }").(*InitDecl)
	if named.Ident != "fromPair" {
		t.Errorf("init ident: %q", named.Ident)
	}

	private, ok := parseDecl(t, "private let secret = 1;").(*LetDecl)
	if !ok || private.Access() != Private {
		t.Error("access modifier lost")
	}
}

func TestArrowTypes(t *testing.T) {
	p := NewParser("test", "(Int, Bool) -> Char -> String")
	typ, err := p.ParseType()
	if err != nil {
		t.Fatal(err)
	}
	arrow, ok := typ.(*ArrowType)
	if !ok {
		t.Fatalf("got %T", typ)
	}
	// Tuple inputs flatten into the arrow's input list.
	if len(arrow.Inputs) != 2 {
		t.Fatalf("inputs: %d, want 2", len(arrow.Inputs))
	}
	inner, ok := arrow.Output.(*ArrowType)
	if !ok {
		t.Fatalf("output: %T, want nested arrow", arrow.Output)
	}
	if len(inner.Inputs) != 1 {
		t.Errorf("inner inputs: %d", len(inner.Inputs))
	}
}

func TestParsePackage(t *testing.T) {
	src := `
import std.{io, *};

module M {
    enum E { case A case B(Int) }
}

let x = 1;
`
	pkg, err := NewParser("main", src).ParsePackage()
	if err != nil {
		t.Fatal(err)
	}
	if pkg.Ident != "main" {
		t.Errorf("ident: %q", pkg.Ident)
	}
	if len(pkg.Header) != 1 {
		t.Errorf("header: %d", len(pkg.Header))
	}
	if len(pkg.Body) != 2 {
		t.Errorf("body: %d", len(pkg.Body))
	}
}

func TestParsePackageRequiresEOF(t *testing.T) {
	_, err := NewParser("main", "class C; )").ParsePackage()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v, want a parse error", err)
	}
}

func TestFirstFaultReporting(t *testing.T) {
	_, err := NewParser("main", "class 42").ParseDecl()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v", err)
	}
	if parseErr.Got.Kind != TokenIntLiteral {
		t.Errorf("offending token: %s", parseErr.Got)
	}
}

func TestSpanDiscipline(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")
	checkSpans(t, expr.Span(), expr)
}

// checkSpans verifies start <= end and child containment for a small
// expression tree.
func checkSpans(t *testing.T, parent Span, expr Expr) {
	t.Helper()
	span := expr.Span()
	if !locLte(span.Start, span.End) {
		t.Errorf("span inverted: %s", span)
	}
	if !locLte(parent.Start, span.Start) || !locLte(span.End, parent.End) {
		t.Errorf("span %s escapes parent %s", span, parent)
	}
	if b, ok := expr.(*BinaryExpr); ok {
		checkSpans(t, span, b.L)
		checkSpans(t, span, b.R)
	}
}

func locLte(a, b Location) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column <= b.Column
}
