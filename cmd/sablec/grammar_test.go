package main

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

func TestGrammarFileVerifies(t *testing.T) {
	const path = "../../docs/grammar.ebnf"
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open grammar: %v", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(path, f)
	if err != nil {
		t.Fatalf("parse grammar: %v", err)
	}
	if err := ebnf.Verify(grammar, "Package"); err != nil {
		t.Fatalf("verify grammar: %v", err)
	}

	for _, name := range []string{"Package", "Decl", "Expr", "Pattern", "Type", "Import", "ident"} {
		if _, ok := grammar[name]; !ok {
			t.Errorf("production %q missing", name)
		}
	}
}

func TestPackageIdentFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/demo.sb", "demo"},
		{"rel/path/main.sb", "main"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := packageIdent(tt.path); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.path, got, tt.want)
		}
	}
}
