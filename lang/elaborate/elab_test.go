package elaborate

import (
	"errors"
	"testing"

	"github.com/sable-lang/sable/lang/parser"
)

func elabSource(t *testing.T, src string) *Package {
	t.Helper()
	pkg, table := buildSource(t, "root", src)
	elaborated, err := NewElaborator(table).Elab(pkg)
	if err != nil {
		t.Fatalf("elaborate: %v", err)
	}
	return elaborated
}

func elabErr(t *testing.T, src string) error {
	t.Helper()
	pkg, table := buildSource(t, "root", src)
	_, err := NewElaborator(table).Elab(pkg)
	if err == nil {
		t.Fatalf("elaboration of %q succeeded unexpectedly", src)
	}
	return err
}

func TestElabCtorApplication(t *testing.T) {
	pkg := elabSource(t, "enum Option<T> { case None case Some(T) }\nlet x = Some(1);")

	let := pkg.Body[1].(*LetDecl)
	if _, ok := let.Pat.(*VarPat); !ok {
		t.Fatalf("pattern: %T", let.Pat)
	}
	app, ok := let.X.(*AppExpr)
	if !ok {
		t.Fatalf("initializer: %T", let.X)
	}
	konst, ok := app.Func.(*ConstExpr)
	if !ok {
		t.Fatalf("callee: %T", app.Func)
	}
	if konst.Ident != "root.Option.Some" {
		t.Errorf("callee ident: %q", konst.Ident)
	}
	if len(app.Args) != 1 {
		t.Fatalf("args: %d", len(app.Args))
	}
	lit, ok := app.Args[0].(*LitExpr)
	if !ok {
		t.Fatalf("arg: %T", app.Args[0])
	}
	if intLit, ok := lit.Lit.(*parser.IntLit); !ok || intLit.Value != 1 {
		t.Errorf("arg literal: %#v", lit.Lit)
	}
}

func TestElabProjAndField(t *testing.T) {
	pkg := elabSource(t, "func f(p) { p.0.field<Int>; }")

	fn := pkg.Body[0].(*FuncDecl)
	block := fn.Body.(*BlockExpr)
	stmt := block.Stmts[0].(*ExprStmt)
	field, ok := stmt.X.(*FieldExpr)
	if !ok {
		t.Fatalf("got %T, want field access", stmt.X)
	}
	if len(field.Path) != 1 || field.Path[0] != "field" {
		t.Errorf("field path: %v", field.Path)
	}
	if len(field.TypeArgs) != 1 {
		t.Errorf("type args: %d", len(field.TypeArgs))
	}
	proj, ok := field.X.(*ProjExpr)
	if !ok {
		t.Fatalf("field base: %T, want projection", field.X)
	}
	if proj.Index != 0 {
		t.Errorf("projection index: %d", proj.Index)
	}
	v, ok := proj.X.(*VarExpr)
	if !ok || v.Ident != "p" {
		t.Errorf("projection base: %#v", proj.X)
	}
}

func TestElabFieldOnLocal(t *testing.T) {
	pkg := elabSource(t, "func f(p) { p.field; }")
	fn := pkg.Body[0].(*FuncDecl)
	stmt := fn.Body.(*BlockExpr).Stmts[0].(*ExprStmt)
	field, ok := stmt.X.(*FieldExpr)
	if !ok {
		t.Fatalf("got %T", stmt.X)
	}
	if v, ok := field.X.(*VarExpr); !ok || v.Ident != "p" {
		t.Errorf("base: %#v", field.X)
	}
}

func TestElabSelectorOnCall(t *testing.T) {
	pkg := elabSource(t, "func f(x) { x }\nlet y = f(1).0;")
	let := pkg.Body[1].(*LetDecl)
	proj, ok := let.X.(*ProjExpr)
	if !ok {
		t.Fatalf("got %T", let.X)
	}
	if _, ok := proj.X.(*AppExpr); !ok {
		t.Errorf("base: %T", proj.X)
	}
}

func TestElabInvalidSelector(t *testing.T) {
	err := elabErr(t, "func f(x) { x }\nlet y = f(1).a.0;")
	var re *ResolveError
	if !errors.As(err, &re) || re.Kind != InvalidSelector {
		t.Errorf("got %v, want invalid selector", err)
	}
}

func TestElabConstVsVar(t *testing.T) {
	pkg := elabSource(t, "func f() { }\nlet a = 1;\nlet g = f;\nlet b = a;")

	g := pkg.Body[2].(*LetDecl)
	konst, ok := g.X.(*ConstExpr)
	if !ok || konst.Ident != "root.f" {
		t.Errorf("function reference: %#v", g.X)
	}

	b := pkg.Body[3].(*LetDecl)
	v, ok := b.X.(*VarExpr)
	if !ok || v.Ident != "a" {
		t.Errorf("variable reference: %#v", b.X)
	}
}

func TestElabLocalShadowsNothing(t *testing.T) {
	// A lambda parameter resolves through the scope stack, not the table.
	pkg := elabSource(t, "let f = x => x;")
	let := pkg.Body[0].(*LetDecl)
	lam := let.X.(*LamExpr)
	if _, ok := lam.Params[0].(*VarPat); !ok {
		t.Fatalf("param: %T", lam.Params[0])
	}
	if v, ok := lam.Body.(*VarExpr); !ok || v.Ident != "x" {
		t.Errorf("body: %#v", lam.Body)
	}
}

func TestElabTypeVarVsNamedType(t *testing.T) {
	src := `
class Box<T> {
    func get(self) -> T;
}
let b: Box<Int>;
`
	pkg := elabSource(t, src)

	class := pkg.Body[0].(*ClassDecl)
	method := class.Body[0].(*FuncDecl)
	if _, ok := method.Ret.(*VarType); !ok {
		t.Errorf("T inside the class: %T, want type variable", method.Ret)
	}

	let := pkg.Body[1].(*LetDecl)
	pat := let.Pat.(*VarPat)
	boxType, ok := pat.Hint.(*ClassType)
	if !ok {
		t.Fatalf("hint: %T", pat.Hint)
	}
	if boxType.Ident != "Box" || len(boxType.TypeArgs) != 1 {
		t.Errorf("hint shape: %#v", boxType)
	}
	if _, ok := boxType.TypeArgs[0].(*IntType); !ok {
		t.Errorf("type arg: %T", boxType.TypeArgs[0])
	}
}

func TestElabTypeProjection(t *testing.T) {
	src := `
enum E { case A }
interface I { }
type Alias = Int;
class C { }
let a: E;
let b: I;
let c: Alias;
let d: C;
`
	pkg := elabSource(t, src)
	hints := []struct {
		index int
		check func(Type) bool
	}{
		{4, func(tp Type) bool { _, ok := tp.(*EnumType); return ok }},
		{5, func(tp Type) bool { _, ok := tp.(*InterfaceType); return ok }},
		{6, func(tp Type) bool { _, ok := tp.(*TypealiasType); return ok }},
		{7, func(tp Type) bool { _, ok := tp.(*ClassType); return ok }},
	}
	for _, h := range hints {
		let := pkg.Body[h.index].(*LetDecl)
		pat := let.Pat.(*VarPat)
		if !h.check(pat.Hint) {
			t.Errorf("decl %d: hint %T", h.index, pat.Hint)
		}
	}
}

func TestElabSwitchCtorProbe(t *testing.T) {
	src := `
enum Option<T> { case None case Some(T) }
func f(x) {
    switch x {
    case Some(y): y;
    case None: 0;
    default: 1;
    }
}
`
	pkg := elabSource(t, src)
	fn := pkg.Body[1].(*FuncDecl)
	// The switch is the function block's trailing value.
	sw := fn.Body.(*BlockExpr).Body.(*SwitchExpr)

	some := sw.Clauses[0].(*CaseClause)
	ctor, ok := some.Pat.(*CtorPat)
	if !ok {
		t.Fatalf("Some clause: %T", some.Pat)
	}
	if ctor.Ident != "root.Option.Some" {
		t.Errorf("Some ident: %q", ctor.Ident)
	}
	if len(ctor.Args) != 1 {
		t.Fatalf("Some args: %d", len(ctor.Args))
	}
	if _, ok := ctor.Args[0].(*VarPat); !ok {
		t.Errorf("Some arg: %T", ctor.Args[0])
	}

	none := sw.Clauses[1].(*CaseClause)
	noneCtor, ok := none.Pat.(*CtorPat)
	if !ok {
		t.Fatalf("None clause: %T, want rewritten ctor", none.Pat)
	}
	if noneCtor.Ident != "root.Option.None" {
		t.Errorf("None ident: %q", noneCtor.Ident)
	}
	if noneCtor.Args != nil {
		t.Error("rewritten None must carry no argument list")
	}
}

func TestElabPatternConditionBindsInBranch(t *testing.T) {
	src := `
enum Option<T> { case None case Some(T) }
func f(x) {
    if let Some(y) = x { y; } else { 0; }
}
`
	pkg := elabSource(t, src)
	fn := pkg.Body[1].(*FuncDecl)
	ite := fn.Body.(*BlockExpr).Body.(*IteExpr)

	cond := ite.Branches[0].Cond.(*PatCond)
	if _, ok := cond.Pat.(*CtorPat); !ok {
		t.Fatalf("condition pattern: %T", cond.Pat)
	}
	then := ite.Branches[0].Then.(*BlockExpr)
	use := then.Stmts[0].(*ExprStmt)
	if v, ok := use.X.(*VarExpr); !ok || v.Ident != "y" {
		t.Errorf("branch body: %#v", use.X)
	}
}

func TestElabUnresolvedName(t *testing.T) {
	err := elabErr(t, "let x = missing;")
	var re *ResolveError
	if !errors.As(err, &re) || re.Kind != SymbolNotFound {
		t.Errorf("got %v", err)
	}
}

func TestElabModuleQualifiedReference(t *testing.T) {
	src := `
module M { func helper() { } }
let h = M.helper;
`
	pkg := elabSource(t, src)
	let := pkg.Body[1].(*LetDecl)
	konst, ok := let.X.(*ConstExpr)
	if !ok || konst.Ident != "root.M.helper" {
		t.Errorf("qualified reference: %#v", let.X)
	}
}

func TestElabForLoopBindsPattern(t *testing.T) {
	src := "let xs = 1;\nfunc f() { for x in xs { x; } }"
	pkg := elabSource(t, src)
	fn := pkg.Body[1].(*FuncDecl)
	forExpr := fn.Body.(*BlockExpr).Body.(*ForExpr)
	if _, ok := forExpr.Pat.(*VarPat); !ok {
		t.Fatalf("loop pattern: %T", forExpr.Pat)
	}
	body := forExpr.Body.(*BlockExpr)
	if v, ok := body.Stmts[0].(*ExprStmt).X.(*VarExpr); !ok || v.Ident != "x" {
		t.Errorf("loop body: %#v", body.Stmts[0].(*ExprStmt).X)
	}
}

func TestElabFuncStmtRecursion(t *testing.T) {
	src := "func outer() { func inner(n) { inner(n); } }"
	pkg := elabSource(t, src)
	outer := pkg.Body[0].(*FuncDecl)
	inner := outer.Body.(*BlockExpr).Stmts[0].(*FuncStmt)
	call := inner.Body.(*BlockExpr).Stmts[0].(*ExprStmt).X.(*AppExpr)
	if v, ok := call.Func.(*VarExpr); !ok || v.Ident != "inner" {
		t.Errorf("recursive callee: %#v", call.Func)
	}
}
