package format

import (
	"strings"
	"testing"

	"github.com/sable-lang/sable/lang/elaborate"
	"github.com/sable-lang/sable/lang/parser"
)

func parsePackage(t *testing.T, src string) *parser.Package {
	t.Helper()
	pkg, err := parser.NewParser("test", src).ParsePackage()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return pkg
}

func TestSourceRoundTrip(t *testing.T) {
	// Rendering, reparsing, and rendering again must be a fixed point.
	sources := []string{
		"let x = 1 + 2 * 3;",
		"enum Option<T> { case None case Some(T) }",
		"module M { class C { let v: Int; } }",
		"func f(a, b) -> Int { a + b }",
		"func g() { let (a, b) = (1, 2); for x in a { x; } }",
		"interface Show { func show(self) -> String; }",
		"let h = (a, b) => a;",
		"func cond(x) { if let y = x { y; } else { 0; } }",
		"private let secret = \"shh\\n\";",
		"open M.{C as D, *};",
		"type Pair<A, B> = (A, B);",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			b1 := renderBody(t, src)
			b2 := renderBody(t, b1)
			if b1 != b2 {
				t.Errorf("not a fixed point:\n%s\nvs\n%s", b1, b2)
			}
		})
	}
}

func renderBody(t *testing.T, src string) string {
	t.Helper()
	pkg := parsePackage(t, src)
	var parts []string
	for _, decl := range pkg.Body {
		parts = append(parts, Decl(decl, 0))
	}
	return strings.Join(parts, "\n")
}

func TestExprRendering(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2", "1 + 2"},
		{"a<b", "a < b"},
		{"f<Int>(1)", "f<Int>(1)"},
		{"-x", "-x"},
		{"x?", "x?"},
		{"a[i]", "a[i]"},
		{"(x: Int)", "(x: Int)"},
		{"(1, 2, 3)", "(1, 2, 3)"},
		{"x => x", "x => x"},
		{"a += 1", "a += 1"},
		{"p.0.field", "p.0.field"},
		{"return 1", "return 1"},
	}
	for _, tt := range tests {
		expr, err := parser.NewParser("test", tt.input).ParseExpr()
		if err != nil {
			t.Fatalf("%q: %v", tt.input, err)
		}
		if got := Expr(expr, 0); got != tt.want {
			t.Errorf("%q: got %q", tt.input, got)
		}
	}
}

func TestPatRendering(t *testing.T) {
	src := "let (mut a, _, b @ _, Some(1 | 2)) = x;"
	stmt, err := parser.NewParser("test", src).ParseStmt()
	if err != nil {
		t.Fatal(err)
	}
	let := stmt.(*parser.LetStmt)
	got := Pat(let.Pat)
	want := "(mut a, _, b @ _, Some(1 | 2))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestImportRendering(t *testing.T) {
	stmt, err := parser.NewParser("test", "open M.{C as D, E as _, *};").ParseStmt()
	if err != nil {
		t.Fatal(err)
	}
	got := Import(stmt.(*parser.OpenStmt).Imp)
	want := "M.{C as D, E as _, *}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTableRendering(t *testing.T) {
	pkg := parsePackage(t, "module M { class C { } enum E { case A case B(Int) } }")
	table, err := elaborate.NewTableBuilder(pkg).Build()
	if err != nil {
		t.Fatal(err)
	}
	out := Table(table)

	for _, want := range []string{
		"Module test\n",
		"Module M\n",
		"Class C\n",
		"Enum E\n",
		"A: Public Ctor test.M.E.A\n",
		"B: Public Ctor test.M.E.B\n",
		"C: Public Class test.M.C\n",
		"E: Public Enum test.M.E\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestElaboratedRendering(t *testing.T) {
	src := "enum Option<T> { case None case Some(T) }\nlet x = Some(1);"
	pkg := parsePackage(t, src)
	table, err := elaborate.NewTableBuilder(pkg).Build()
	if err != nil {
		t.Fatal(err)
	}
	elaborated, err := elaborate.NewElaborator(table).Elab(pkg)
	if err != nil {
		t.Fatal(err)
	}
	out := Elaborated(elaborated)
	if !strings.Contains(out, "let x = test.Option.Some(1);") {
		t.Errorf("elaborated output:\n%s", out)
	}
}

func TestComment(t *testing.T) {
	got := Comment("a */ b")
	if strings.Contains(strings.TrimSuffix(strings.TrimPrefix(got, "/* "), " */"), "*/") {
		t.Errorf("comment not escaped: %q", got)
	}
}
