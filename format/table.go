package format

import (
	"sort"
	"strings"

	"github.com/sable-lang/sable/lang/elaborate"
	"github.com/sable-lang/sable/lang/parser"
)

// Table renders the symbol table as an indented listing, one node per
// block with its type and expression symbols followed by nested scopes.
func Table(t *elaborate.Table) string {
	return tableNode(t.Root(), 0)
}

func tableNode(node *elaborate.TableNode, indent int) string {
	var sb strings.Builder
	sb.WriteString(indentStr(indent) + node.Kind.String() + " " + node.Ident + "\n")

	if len(node.Types) > 0 {
		sb.WriteString(indentStr(indent+1) + "types:\n")
		for _, name := range sortedKeys(node.Types) {
			for _, sym := range node.Types[name].Sorted() {
				sb.WriteString(indentStr(indent+2) + name + ": " + symbol(sym) + "\n")
			}
		}
	}

	if len(node.Exprs) > 0 {
		sb.WriteString(indentStr(indent+1) + "exprs:\n")
		for _, name := range sortedKeys(node.Exprs) {
			for _, sym := range node.Exprs[name].Sorted() {
				sb.WriteString(indentStr(indent+2) + name + ": " + symbol(sym) + "\n")
			}
		}
	}

	names := make([]string, 0, len(node.Nested))
	for name := range node.Nested {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, child := range node.Nested[name].Sorted() {
			sb.WriteString(tableNode(child, indent+1))
		}
	}

	return sb.String()
}

func symbol(sym elaborate.Symbol) string {
	access := "Public"
	switch sym.Access {
	case parser.Private:
		access = "Private"
	case parser.Protected:
		access = "Protected"
	}
	return access + " " + sym.Kind.String() + " " + sym.Path
}

func sortedKeys(m map[string]elaborate.SymbolSet) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
