package frontend

import (
	"errors"
	"strings"
	"testing"

	"github.com/sable-lang/sable/lang/elaborate"
	"github.com/sable-lang/sable/lang/parser"
)

const sampleSource = `
import std.{*};

module geometry {
    interface Area {
        func area(self) -> Int;
    }

    class Rect {
        let w: Int;
        let h: Int;
    }

    extension Rect: Area {
        func area(self) -> Int { self.w * self.h }
    }
}

enum Shape { case Circle(Int) case Square(Int) }

func describe(s) -> Int {
    switch s {
    case Circle(r): r * r * 3;
    case Square(w): w * w;
    default: 0;
    }
}

let unit = Square(1);
`

func TestProcessEndToEnd(t *testing.T) {
	// The sample imports from std, which does not exist; strip the header
	// line for the resolvable variant.
	src := strings.Replace(sampleSource, "import std.{*};\n", "", 1)

	var phases []string
	result, err := Process("demo", src, WithTableTrace(func(phase string, table *elaborate.Table) {
		phases = append(phases, phase)
	}))
	if err != nil {
		t.Fatal(err)
	}

	if result.Raw == nil || result.Table == nil || result.Elaborated == nil {
		t.Fatal("incomplete result")
	}
	if result.Raw.Ident != "demo" {
		t.Errorf("package ident: %q", result.Raw.Ident)
	}
	if len(phases) != 4 {
		t.Errorf("trace phases: %v", phases)
	}

	geometry, err := result.Table.Root().FindNode("geometry")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := geometry.FindNode("ext%0"); err != nil {
		t.Errorf("extension scope missing: %v", err)
	}

	sym, err := result.Table.FindExprSymbol("Square", nil)
	if err != nil {
		t.Fatal(err)
	}
	if sym.Path != "demo.Shape.Square" {
		t.Errorf("ctor path: %q", sym.Path)
	}

	let := result.Elaborated.Body[len(result.Elaborated.Body)-1].(*elaborate.LetDecl)
	app, ok := let.X.(*elaborate.AppExpr)
	if !ok {
		t.Fatalf("unit initializer: %T", let.X)
	}
	konst := app.Func.(*elaborate.ConstExpr)
	if konst.Ident != "demo.Shape.Square" {
		t.Errorf("ctor reference: %q", konst.Ident)
	}
}

func TestProcessParseError(t *testing.T) {
	_, err := Process("demo", "class {")
	if err == nil {
		t.Fatal("expected error")
	}
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("got %v", err)
	}
	span, ok := ErrorSpan(err)
	if !ok {
		t.Fatal("parse error lost its span")
	}
	if span.Start.Line != 1 {
		t.Errorf("span: %s", span)
	}
}

func TestProcessLexError(t *testing.T) {
	_, err := Process("demo", "let x = \"unterminated;")
	var lexErr *parser.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("got %v", err)
	}
	if _, ok := ErrorSpan(err); !ok {
		t.Error("lex error lost its span")
	}
}

func TestProcessResolveError(t *testing.T) {
	_, err := Process("demo", "let x = missing;")
	var re *elaborate.ResolveError
	if !errors.As(err, &re) {
		t.Fatalf("got %v", err)
	}
	if _, ok := ErrorSpan(err); ok {
		t.Error("resolve errors carry no span")
	}
}

func TestPackageIdentFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///tmp/project/main.sb", "main"},
		{"/plain/path/lib.sb", "lib"},
		{"bare", "bare"},
	}
	for _, tt := range tests {
		if got := packageIdent(tt.uri); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.uri, got, tt.want)
		}
	}
}
