// Package format renders the front-end's data structures back to readable
// text: the raw and elaborated syntax trees in surface syntax and the
// symbol table as an indented listing. The driver prints the raw tree and
// the table snapshots inside block comments, followed by the elaborated tree
// as plain text.
package format

import (
	"strings"

	"github.com/sable-lang/sable/lang/elaborate"
	"github.com/sable-lang/sable/lang/parser"
)

// Source renders a raw package in surface syntax.
func Source(pkg *parser.Package) string {
	var sb strings.Builder
	sb.WriteString("package \"" + pkg.Ident + "\" {\n")
	for _, imp := range pkg.Header {
		sb.WriteString("import " + Import(imp) + ";\n")
	}
	for _, decl := range pkg.Body {
		sb.WriteString(Decl(decl, 0) + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Elaborated renders an elaborated package in surface syntax, with resolved
// names printed as their symbol paths.
func Elaborated(pkg *elaborate.Package) string {
	var sb strings.Builder
	sb.WriteString("package \"" + pkg.Ident + "\" {\n")
	for _, imp := range pkg.Header {
		sb.WriteString("import " + Import(imp) + ";\n")
	}
	for _, decl := range pkg.Body {
		sb.WriteString(ElabDecl(decl, 0) + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Comment wraps the whole text in one block comment, breaking up any `*/`
// inside it so the comment cannot close early.
func Comment(text string) string {
	return "/* " + strings.ReplaceAll(text, "*/", "* /") + " */"
}

func indentStr(indent int) string {
	return strings.Repeat("    ", indent)
}
