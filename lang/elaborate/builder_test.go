package elaborate

import (
	"errors"
	"testing"

	"github.com/sable-lang/sable/lang/parser"
)

func buildSource(t *testing.T, pkgName, src string) (*parser.Package, *Table) {
	t.Helper()
	pkg, err := parser.NewParser(pkgName, src).ParsePackage()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	table, err := NewTableBuilder(pkg).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return pkg, table
}

func buildErr(t *testing.T, src string) error {
	t.Helper()
	pkg, err := parser.NewParser("root", src).ParsePackage()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = NewTableBuilder(pkg).Build()
	if err == nil {
		t.Fatalf("build of %q succeeded unexpectedly", src)
	}
	return err
}

func exprKind(t *testing.T, node *TableNode, ident string) SymbolKind {
	t.Helper()
	set, ok := node.Exprs[ident]
	if !ok || len(set) != 1 {
		t.Fatalf("%s.exprs[%s]: %v", node.Path, ident, set)
	}
	return set.Sorted()[0].Kind
}

func typeKind(t *testing.T, node *TableNode, ident string) SymbolKind {
	t.Helper()
	set, ok := node.Types[ident]
	if !ok || len(set) != 1 {
		t.Fatalf("%s.types[%s]: %v", node.Path, ident, set)
	}
	return set.Sorted()[0].Kind
}

func TestBuildNestedScopes(t *testing.T) {
	_, table := buildSource(t, "root", "module M { class C { } enum E { case A case B(Int) } }")

	root := table.Root()
	if root.Ident != "root" || root.Path != "root" {
		t.Fatalf("root: %q %q", root.Ident, root.Path)
	}
	m, err := root.FindNode("M")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.FindNode("C"); err != nil {
		t.Error("grandchild C missing")
	}
	e, err := m.FindNode("E")
	if err != nil {
		t.Fatal(err)
	}

	if got := exprKind(t, e, "A"); got != SymCtor {
		t.Errorf("E.A: %v", got)
	}
	if got := exprKind(t, e, "B"); got != SymCtor {
		t.Errorf("E.B: %v", got)
	}
	if got := typeKind(t, m, "C"); got != SymClass {
		t.Errorf("M.C: %v", got)
	}
	if got := typeKind(t, m, "E"); got != SymEnum {
		t.Errorf("M.E: %v", got)
	}

	// Constructor paths follow the node they were registered in.
	if sym := e.Exprs["B"].Sorted()[0]; sym.Path != "root.M.E.B" {
		t.Errorf("B path: %q", sym.Path)
	}
}

func TestCtorsVisibleInEnclosingScope(t *testing.T) {
	_, table := buildSource(t, "root", "enum Option<T> { case None case Some(T) }")
	sym, err := table.FindExprSymbol("Some", nil)
	if err != nil {
		t.Fatal(err)
	}
	if sym.Kind != SymCtor || sym.Path != "root.Option.Some" {
		t.Errorf("lifted ctor: %v", sym)
	}
}

func TestLetRegistersVars(t *testing.T) {
	_, table := buildSource(t, "root", "let (mut a, _, b @ _) = (1, 2, 3);")

	if got := exprKind(t, table.Root(), "a"); got != SymVar {
		t.Errorf("a: %v", got)
	}
	if got := exprKind(t, table.Root(), "b"); got != SymVar {
		t.Errorf("b: %v", got)
	}
	if _, ok := table.Root().Exprs["_"]; ok {
		t.Error("wildcard must bind nothing")
	}
}

func TestLetAccessPropagatesToVars(t *testing.T) {
	_, table := buildSource(t, "root", "private let x = 1;")
	sym := table.Root().Exprs["x"].Sorted()[0]
	if sym.Access != parser.Private {
		t.Errorf("access: %v", sym.Access)
	}
}

func TestNamePatternRewrittenToCtor(t *testing.T) {
	pkg, table := buildSource(t, "root", "enum E { case A }\nlet A = 1;")

	let := pkg.Body[1].(*parser.LetDecl)
	ctor, ok := let.Pat.(*parser.CtorPat)
	if !ok {
		t.Fatalf("pattern not rewritten: %T", let.Pat)
	}
	if ctor.Args != nil {
		t.Error("rewritten constructor pattern must have no argument list")
	}
	// The rewrite binds nothing.
	if _, ok := table.Root().Exprs["A"]; !ok {
		t.Fatal("ctor symbol missing")
	}
	if kind := exprKind(t, table.Root(), "A"); kind != SymCtor {
		t.Errorf("A resolved to %v after rewrite", kind)
	}
}

func TestRewriteOfImportedCtor(t *testing.T) {
	// The ctor only becomes visible through the merge pass that runs
	// between constant and variable building; the rewrite depends on that
	// ordering.
	src := "module M { enum E { case A } }\nopen M.{*};\nlet A = 1;"
	pkg, _ := buildSource(t, "root", src)

	let := pkg.Body[2].(*parser.LetDecl)
	if _, ok := let.Pat.(*parser.CtorPat); !ok {
		t.Fatalf("imported ctor not rewritten: %T", let.Pat)
	}
}

func TestMutOnCtorPattern(t *testing.T) {
	err := buildErr(t, "enum E { case A }\nlet mut A = 1;")
	var se *SemanticError
	if !errors.As(err, &se) || se.Kind != MutOnCtorPattern {
		t.Errorf("got %v", err)
	}
}

func TestHintOnCtorPattern(t *testing.T) {
	err := buildErr(t, "enum E { case A }\nlet A: Int = 1;")
	var se *SemanticError
	if !errors.As(err, &se) || se.Kind != HintOnCtorPattern {
		t.Errorf("got %v", err)
	}
}

func TestDuplicateDeclarationReported(t *testing.T) {
	err := buildErr(t, "class C; class C;")
	var se *SemanticError
	if !errors.As(err, &se) || se.Kind != DuplicateDeclaration {
		t.Errorf("got %v", err)
	}
}

func TestExtensionIdentSynthesis(t *testing.T) {
	src := `
interface Show { }
class A { }
class B { }
extension A: Show { }
extension B: Show { }
`
	pkg, table := buildSource(t, "root", src)

	first := pkg.Body[3].(*parser.ExtensionDecl)
	second := pkg.Body[4].(*parser.ExtensionDecl)
	if first.Ident != "ext%0" {
		t.Errorf("first extension ident: %q", first.Ident)
	}
	if second.Ident != "ext%1" {
		t.Errorf("second extension ident: %q", second.Ident)
	}
	if got := exprKind(t, table.Root(), "ext%0"); got != SymExtension {
		t.Errorf("ext%%0: %v", got)
	}
	if _, err := table.Root().FindNode("ext%1"); err != nil {
		t.Errorf("extension node missing: %v", err)
	}
}

func TestInitIdentSynthesis(t *testing.T) {
	src := `
class C {
    init(x) { x; }
    init fromPair(p) { p; }
}
`
	pkg, table := buildSource(t, "root", src)

	class := pkg.Body[0].(*parser.ClassDecl)
	anon := class.Body[0].(*parser.InitDecl)
	if anon.Ident != "init%0" {
		t.Errorf("anonymous init ident: %q", anon.Ident)
	}
	named := class.Body[1].(*parser.InitDecl)
	if named.Ident != "fromPair" {
		t.Errorf("named init ident: %q", named.Ident)
	}

	c, err := table.Root().FindNode("C")
	if err != nil {
		t.Fatal(err)
	}
	if got := exprKind(t, c, "init%0"); got != SymInit {
		t.Errorf("init%%0: %v", got)
	}
	if got := exprKind(t, c, "fromPair"); got != SymInit {
		t.Errorf("fromPair: %v", got)
	}
}

func TestBuilderTraceFiresPerPass(t *testing.T) {
	pkg, err := parser.NewParser("root", "class C;").ParsePackage()
	if err != nil {
		t.Fatal(err)
	}
	builder := NewTableBuilder(pkg)
	var phases []string
	builder.Trace = func(phase string, table *Table) {
		if table == nil {
			t.Error("trace received nil table")
		}
		phases = append(phases, phase)
	}
	if _, err := builder.Build(); err != nil {
		t.Fatal(err)
	}
	want := []string{"constants", "constants merged", "variables", "variables merged"}
	if len(phases) != len(want) {
		t.Fatalf("phases: %v", phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Errorf("phase %d: %q, want %q", i, phases[i], want[i])
		}
	}
}

func TestOpenInsideModule(t *testing.T) {
	src := `
module Lib { class Thing { } }
module App { open Lib.{Thing}; }
`
	_, table := buildSource(t, "root", src)
	app, err := table.Root().FindNode("App")
	if err != nil {
		t.Fatal(err)
	}
	if got := typeKind(t, app, "Thing"); got != SymClass {
		t.Errorf("Thing: %v", got)
	}
	if sym := app.Types["Thing"].Sorted()[0]; sym.Path != "root.Lib.Thing" {
		t.Errorf("imported path: %q", sym.Path)
	}
}
