package elaborate

import (
	"fmt"

	"github.com/sable-lang/sable/lang/parser"
)

// PatRewrite walks a pattern in place and replaces every name pattern whose
// identifier resolves to a constructor with a constructor pattern. The slot
// pointer is required because the node itself is swapped.
func (t *Table) PatRewrite(slot *parser.Pat) error {
	switch pat := (*slot).(type) {
	case *parser.TuplePat:
		for i := range pat.Elems {
			if err := t.PatRewrite(&pat.Elems[i]); err != nil {
				return err
			}
		}
	case *parser.CtorPat:
		for i := range pat.Args {
			if err := t.PatRewrite(&pat.Args[i]); err != nil {
				return err
			}
		}
	case *parser.NamePat:
		path, rest := pat.Name.Slice()
		if len(rest) != 0 {
			return &ResolveError{Kind: InvalidPatternName, Name: pat.Name.String()}
		}
		sym, err := t.FindExprSymbol(pat.Name.Ident, path)
		if err == nil && sym.Kind == SymCtor {
			// constructor, not a binding
			if pat.IsMut {
				return &SemanticError{Kind: MutOnCtorPattern, Name: pat.Name.String()}
			}
			if pat.Hint != nil && pat.Hint.TypeKind() != parser.TypeMeta {
				return &SemanticError{Kind: HintOnCtorPattern, Name: pat.Name.String()}
			}
			*slot = parser.NewCtorPat(pat.Name, pat.TypeArgs, nil, pat.Span())
			return nil
		}
		if len(path) == 0 && pat.TypeArgs == nil {
			// plain binding, keep as is
			return nil
		}
		return &ResolveError{Kind: InvalidPatternName, Name: pat.Name.String()}
	case *parser.OrPat:
		for i := range pat.Options {
			if err := t.PatRewrite(&pat.Options[i]); err != nil {
				return err
			}
		}
	case *parser.AtPat:
		return t.PatRewrite(&pat.Pat)
	}
	return nil
}

// PatAddVars registers a Var symbol for every binding identifier left in a
// rewritten pattern.
func (t *Table) PatAddVars(pat parser.Pat, access parser.Access) error {
	switch pat := pat.(type) {
	case *parser.TuplePat:
		for _, elem := range pat.Elems {
			if err := t.PatAddVars(elem, access); err != nil {
				return err
			}
		}
	case *parser.CtorPat:
		for _, arg := range pat.Args {
			if err := t.PatAddVars(arg, access); err != nil {
				return err
			}
		}
	case *parser.NamePat:
		return t.AddExprSymbol(pat.Name.Ident, Symbol{Kind: SymVar, Access: access})
	case *parser.OrPat:
		for _, option := range pat.Options {
			if err := t.PatAddVars(option, access); err != nil {
				return err
			}
		}
	case *parser.AtPat:
		if len(pat.Name.Path) != 0 {
			return &ResolveError{Kind: InvalidPatternName, Name: pat.Name.String()}
		}
		if err := t.AddExprSymbol(pat.Name.Ident, Symbol{Kind: SymVar, Access: access}); err != nil {
			return err
		}
		return t.PatAddVars(pat.Pat, access)
	}
	return nil
}

// TableBuilder constructs the symbol table for one package with four passes
// over the declaration tree: constants, imports, variables, imports again.
// The second import pass propagates variables made visible by the third.
type TableBuilder struct {
	pkg   *parser.Package
	table *Table

	// Trace, when set, receives the table after each pass.
	Trace func(phase string, t *Table)
}

func NewTableBuilder(pkg *parser.Package) *TableBuilder {
	return &TableBuilder{pkg: pkg, table: NewTable(pkg.Ident)}
}

// Build runs all four passes and returns the finished table. The pass order
// is load-bearing: a constructor imported by an `open` is only visible to
// the variable pass's pattern rewrite because imports merge in between.
func (b *TableBuilder) Build() (*Table, error) {
	if err := b.buildConstants(b.pkg.Body); err != nil {
		return nil, err
	}
	b.trace("constants")
	if err := b.mergeSymbols(b.pkg.Body); err != nil {
		return nil, err
	}
	b.trace("constants merged")
	if err := b.buildVariables(b.pkg.Body); err != nil {
		return nil, err
	}
	b.trace("variables")
	if err := b.mergeSymbols(b.pkg.Body); err != nil {
		return nil, err
	}
	b.trace("variables merged")
	return b.table, nil
}

func (b *TableBuilder) trace(phase string) {
	if b.Trace != nil {
		b.Trace(phase, b.table)
	}
}

// visit descends the cursor into the named child scope for the duration of
// fn.
func (b *TableBuilder) visit(ident string, fn func() error) error {
	if err := b.table.EnterNode(ident); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return b.table.ExitNode()
}

func (b *TableBuilder) buildConstants(decls []parser.Decl) error {
	for _, decl := range decls {
		switch decl := decl.(type) {
		case *parser.ModuleDecl:
			b.table.AddNode(decl.Ident, NodeModule)
			if err := b.visit(decl.Ident, func() error { return b.buildConstants(decl.Body) }); err != nil {
				return err
			}
		case *parser.ClassDecl:
			if err := b.table.AddTypeSymbol(decl.Ident, Symbol{Kind: SymClass, Access: decl.Access()}); err != nil {
				return err
			}
			b.table.AddNode(decl.Ident, NodeClass)
			if err := b.visit(decl.Ident, func() error { return b.buildConstants(decl.Body) }); err != nil {
				return err
			}
		case *parser.EnumDecl:
			if err := b.table.AddTypeSymbol(decl.Ident, Symbol{Kind: SymEnum, Access: decl.Access()}); err != nil {
				return err
			}
			b.table.AddNode(decl.Ident, NodeEnum)
			if err := b.visit(decl.Ident, func() error { return b.buildConstants(decl.Body) }); err != nil {
				return err
			}
			// Enum cases are referenced unqualified from the enclosing
			// scope, so their symbols are lifted one level.
			if err := b.table.LiftCtors(decl.Ident); err != nil {
				return err
			}
		case *parser.TypealiasDecl:
			if err := b.table.AddTypeSymbol(decl.Ident, Symbol{Kind: SymTypealias, Access: decl.Access()}); err != nil {
				return err
			}
		case *parser.InterfaceDecl:
			if err := b.table.AddTypeSymbol(decl.Ident, Symbol{Kind: SymInterface, Access: decl.Access()}); err != nil {
				return err
			}
			b.table.AddNode(decl.Ident, NodeInterface)
			if err := b.visit(decl.Ident, func() error { return b.buildConstants(decl.Body) }); err != nil {
				return err
			}
		case *parser.ExtensionDecl:
			decl.Ident = fmt.Sprintf("ext%%%d", b.table.ActiveCount())
			if err := b.table.AddExprSymbol(decl.Ident, Symbol{Kind: SymExtension, Access: decl.Access()}); err != nil {
				return err
			}
			b.table.AddNode(decl.Ident, NodeExtension)
			if err := b.visit(decl.Ident, func() error { return b.buildConstants(decl.Body) }); err != nil {
				return err
			}
		case *parser.FuncDecl:
			if err := b.table.AddExprSymbol(decl.Ident, Symbol{Kind: SymFunc, Access: decl.Access()}); err != nil {
				return err
			}
		case *parser.InitDecl:
			if decl.Ident == "" {
				decl.Ident = fmt.Sprintf("init%%%d", b.table.ActiveCount())
			}
			if err := b.table.AddExprSymbol(decl.Ident, Symbol{Kind: SymInit, Access: decl.Access()}); err != nil {
				return err
			}
		case *parser.CtorDecl:
			if err := b.table.AddExprSymbol(decl.Ident, Symbol{Kind: SymCtor, Access: decl.Access()}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *TableBuilder) mergeSymbols(decls []parser.Decl) error {
	for _, decl := range decls {
		switch decl := decl.(type) {
		case *parser.ModuleDecl:
			if err := b.visit(decl.Ident, func() error { return b.mergeSymbols(decl.Body) }); err != nil {
				return err
			}
		case *parser.OpenDecl:
			if err := b.table.Import(decl.Imp); err != nil {
				return err
			}
		case *parser.ClassDecl:
			if err := b.visit(decl.Ident, func() error { return b.mergeSymbols(decl.Body) }); err != nil {
				return err
			}
		case *parser.EnumDecl:
			if err := b.visit(decl.Ident, func() error { return b.mergeSymbols(decl.Body) }); err != nil {
				return err
			}
		case *parser.InterfaceDecl:
			if err := b.visit(decl.Ident, func() error { return b.mergeSymbols(decl.Body) }); err != nil {
				return err
			}
		case *parser.ExtensionDecl:
			if err := b.visit(decl.Ident, func() error { return b.mergeSymbols(decl.Body) }); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *TableBuilder) buildVariables(decls []parser.Decl) error {
	for _, decl := range decls {
		switch decl := decl.(type) {
		case *parser.ModuleDecl:
			if err := b.visit(decl.Ident, func() error { return b.buildVariables(decl.Body) }); err != nil {
				return err
			}
		case *parser.ClassDecl:
			if err := b.visit(decl.Ident, func() error { return b.buildVariables(decl.Body) }); err != nil {
				return err
			}
		case *parser.EnumDecl:
			if err := b.visit(decl.Ident, func() error { return b.buildVariables(decl.Body) }); err != nil {
				return err
			}
		case *parser.InterfaceDecl:
			if err := b.visit(decl.Ident, func() error { return b.buildVariables(decl.Body) }); err != nil {
				return err
			}
		case *parser.ExtensionDecl:
			if err := b.visit(decl.Ident, func() error { return b.buildVariables(decl.Body) }); err != nil {
				return err
			}
		case *parser.LetDecl:
			if err := b.table.PatRewrite(&decl.Pat); err != nil {
				return err
			}
			if err := b.table.PatAddVars(decl.Pat, decl.Access()); err != nil {
				return err
			}
		}
	}
	return nil
}
