package parser

import "testing"

func TestTokenKindNames(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIdent, "<id>"},
		{TokenIntLiteral, "<int>"},
		{TokenCharLiteral, "<char>"},
		{TokenStringLiteral, "<string>"},
		{TokenWild, "_"},
		{TokenFatArrow, "=>"},
		{TokenColonColon, "::"},
		{TokenExtension, "extension"},
		{TokenInt, "Int"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d: got %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKeywordTable(t *testing.T) {
	// Every keyword maps back to a kind whose name is the keyword itself.
	for lexeme, kind := range keywords {
		if kind.String() != lexeme {
			t.Errorf("keyword %q maps to kind named %q", lexeme, kind.String())
		}
	}
	if _, ok := keywords["_"]; ok {
		t.Error("wildcard must not be a keyword")
	}
	if _, ok := keywords["ident"]; ok {
		t.Error("non-keyword found in table")
	}
}

func TestNameSlice(t *testing.T) {
	name := Name{Ident: "p", Path: []Seg{{Index: 0, IsIndex: true}, {Ident: "field"}}}
	path, rest := name.Slice()
	if len(path) != 0 {
		t.Errorf("path: got %v, want empty", path)
	}
	if len(rest) != 2 || !rest[0].IsIndex || rest[1].Ident != "field" {
		t.Errorf("rest: got %v", rest)
	}

	name = Name{Ident: "M", Path: []Seg{{Ident: "C"}, {Ident: "D"}}}
	path, rest = name.Slice()
	if len(path) != 2 || path[0] != "C" || path[1] != "D" || rest != nil {
		t.Errorf("got %v %v", path, rest)
	}

	if name.String() != "M.C.D" {
		t.Errorf("String: got %q", name.String())
	}
}
