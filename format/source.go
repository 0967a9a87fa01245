package format

import (
	"strconv"
	"strings"

	"github.com/sable-lang/sable/lang/parser"
)

// Raw-tree renderers. Each returns surface syntax for one node; block forms
// take the current indent level.

func typeArgs(args []parser.Type) string {
	if args == nil {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, Type(arg))
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func Type(t parser.Type) string {
	switch t := t.(type) {
	case *parser.MetaType:
		return "_"
	case *parser.IntType:
		return "Int"
	case *parser.BoolType:
		return "Bool"
	case *parser.CharType:
		return "Char"
	case *parser.StringType:
		return "String"
	case *parser.UnitType:
		return "()"
	case *parser.NameType:
		return t.Name.String() + typeArgs(t.TypeArgs)
	case *parser.TupleType:
		parts := make([]string, 0, len(t.Elems))
		for _, elem := range t.Elems {
			parts = append(parts, Type(elem))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *parser.ArrowType:
		var in string
		if len(t.Inputs) == 1 {
			in = Type(t.Inputs[0])
		} else {
			parts := make([]string, 0, len(t.Inputs))
			for _, input := range t.Inputs {
				parts = append(parts, Type(input))
			}
			in = "(" + strings.Join(parts, ", ") + ")"
		}
		return in + " -> " + Type(t.Output)
	}
	return "<?type>"
}

func Lit(l parser.Lit) string {
	switch l := l.(type) {
	case *parser.UnitLit:
		return "()"
	case *parser.IntLit:
		return strconv.FormatInt(l.Value, 10)
	case *parser.BoolLit:
		if l.Value {
			return "true"
		}
		return "false"
	case *parser.CharLit:
		return "'" + escapeChar(l.Value, '\'') + "'"
	case *parser.StringLit:
		var sb strings.Builder
		sb.WriteByte('"')
		for i := 0; i < len(l.Value); i++ {
			sb.WriteString(escapeChar(l.Value[i], '"'))
		}
		sb.WriteByte('"')
		return sb.String()
	}
	return "<?lit>"
}

func escapeChar(c byte, quote byte) string {
	switch c {
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	case '\r':
		return "\\r"
	case '\\':
		return "\\\\"
	case 0:
		return "\\0"
	case quote:
		return "\\" + string(quote)
	}
	return string(c)
}

func Pat(p parser.Pat) string {
	switch p := p.(type) {
	case *parser.LitPat:
		return Lit(p.Lit)
	case *parser.TuplePat:
		parts := make([]string, 0, len(p.Elems))
		for _, elem := range p.Elems {
			parts = append(parts, Pat(elem))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *parser.CtorPat:
		result := p.Name.String() + typeArgs(p.TypeArgs)
		if p.Args != nil {
			parts := make([]string, 0, len(p.Args))
			for _, arg := range p.Args {
				parts = append(parts, Pat(arg))
			}
			result += "(" + strings.Join(parts, ", ") + ")"
		}
		return result
	case *parser.NamePat:
		var result string
		if p.IsMut {
			result = "mut "
		}
		result += p.Name.String() + typeArgs(p.TypeArgs)
		if p.Hint != nil && p.Hint.TypeKind() != parser.TypeMeta {
			result += ": " + Type(p.Hint)
		}
		return result
	case *parser.WildPat:
		return "_"
	case *parser.OrPat:
		parts := make([]string, 0, len(p.Options))
		for _, option := range p.Options {
			parts = append(parts, Pat(option))
		}
		return strings.Join(parts, " | ")
	case *parser.AtPat:
		var result string
		if p.IsMut {
			result = "mut "
		}
		result += p.Name.String()
		if p.Hint != nil && p.Hint.TypeKind() != parser.TypeMeta {
			result += ": " + Type(p.Hint)
		}
		return result + " @ " + Pat(p.Pat)
	}
	return "<?pat>"
}

func Import(i parser.Import) string {
	switch i := i.(type) {
	case *parser.NodeImport:
		result := i.Name
		switch len(i.Nested) {
		case 0:
		case 1:
			result += "." + Import(i.Nested[0])
		default:
			parts := make([]string, 0, len(i.Nested))
			for _, nested := range i.Nested {
				parts = append(parts, Import(nested))
			}
			result += ".{" + strings.Join(parts, ", ") + "}"
		}
		return result
	case *parser.AliasImport:
		if i.Alias == "" {
			return i.Name + " as _"
		}
		return i.Name + " as " + i.Alias
	case *parser.WildImport:
		return "*"
	}
	return "<?import>"
}

func Cond(c parser.Cond) string {
	switch c := c.(type) {
	case *parser.ExprCond:
		return Expr(c.X, 0)
	case *parser.PatCond:
		return "let " + Pat(c.Pat) + " = " + Expr(c.X, 0)
	}
	return "<?cond>"
}

func Clause(c parser.Clause, indent int) string {
	switch c := c.(type) {
	case *parser.CaseClause:
		result := indentStr(indent) + "case " + Pat(c.Pat)
		if c.Guard != nil {
			result += " if " + Expr(c.Guard, indent)
		}
		return result + ": " + Expr(c.Body, indent)
	case *parser.DefaultClause:
		return indentStr(indent) + "default: " + Expr(c.Body, indent)
	}
	return "<?clause>"
}

func Expr(e parser.Expr, indent int) string {
	switch e := e.(type) {
	case *parser.LitExpr:
		return Lit(e.Lit)
	case *parser.UnaryExpr:
		inner := Expr(e.X, indent)
		switch e.Op {
		case parser.UnaryTry:
			return inner + "?"
		case parser.UnaryNew:
			return "new " + inner
		default:
			return e.Op.String() + inner
		}
	case *parser.IndexExpr:
		parts := make([]string, 0, len(e.Indices))
		for _, index := range e.Indices {
			parts = append(parts, Expr(index, indent))
		}
		return Expr(e.X, indent) + "[" + strings.Join(parts, ", ") + "]"
	case *parser.DotExpr:
		result := Expr(e.X, indent)
		for _, seg := range e.Path {
			result += "." + seg.String()
		}
		return result + typeArgs(e.TypeArgs)
	case *parser.BinaryExpr:
		return Expr(e.L, indent) + " " + e.Op.String() + " " + Expr(e.R, indent)
	case *parser.AssignExpr:
		op := "="
		if e.Mode != parser.BinaryAssign {
			op = e.Mode.String() + "="
		}
		return Expr(e.L, indent) + " " + op + " " + Expr(e.R, indent)
	case *parser.TupleExpr:
		parts := make([]string, 0, len(e.Elems))
		for _, elem := range e.Elems {
			parts = append(parts, Expr(elem, indent))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *parser.HintExpr:
		return "(" + Expr(e.X, indent) + ": " + Type(e.Type) + ")"
	case *parser.NameExpr:
		return e.Name.String() + typeArgs(e.TypeArgs)
	case *parser.HoleExpr:
		return "_"
	case *parser.LamExpr:
		var result string
		if len(e.Params) == 1 {
			result = Pat(e.Params[0])
		} else {
			parts := make([]string, 0, len(e.Params))
			for _, param := range e.Params {
				parts = append(parts, Pat(param))
			}
			result = "(" + strings.Join(parts, ", ") + ")"
		}
		return result + " => " + Expr(e.Body, indent)
	case *parser.AppExpr:
		parts := make([]string, 0, len(e.Args))
		for _, arg := range e.Args {
			parts = append(parts, Expr(arg, indent))
		}
		return Expr(e.Func, indent) + "(" + strings.Join(parts, ", ") + ")"
	case *parser.BlockExpr:
		if len(e.Stmts) == 0 && e.Body == nil {
			return "{}"
		}
		var sb strings.Builder
		sb.WriteString("{\n")
		for _, stmt := range e.Stmts {
			sb.WriteString(Stmt(stmt, indent+1) + "\n")
		}
		if e.Body != nil {
			sb.WriteString(indentStr(indent+1) + Expr(e.Body, indent+1) + "\n")
		}
		sb.WriteString(indentStr(indent) + "}")
		return sb.String()
	case *parser.IteExpr:
		result := "if " + Cond(e.Branches[0].Cond) + " " + Expr(e.Branches[0].Then, indent)
		for _, branch := range e.Branches[1:] {
			result += " else if " + Cond(branch.Cond) + " " + Expr(branch.Then, indent)
		}
		if e.Else != nil {
			result += " else " + Expr(e.Else, indent)
		}
		return result
	case *parser.SwitchExpr:
		var sb strings.Builder
		sb.WriteString("switch " + Expr(e.X, indent) + " {\n")
		for _, clause := range e.Clauses {
			sb.WriteString(Clause(clause, indent+1) + "\n")
		}
		sb.WriteString(indentStr(indent) + "}")
		return sb.String()
	case *parser.ForExpr:
		return "for " + Pat(e.Pat) + " in " + Expr(e.Iter, indent) + " " + Expr(e.Body, indent)
	case *parser.WhileExpr:
		return "while " + Cond(e.Cond) + " " + Expr(e.Body, indent)
	case *parser.LoopExpr:
		return "loop " + Expr(e.Body, indent)
	case *parser.BreakExpr:
		return "break"
	case *parser.ContinueExpr:
		return "continue"
	case *parser.ReturnExpr:
		if e.X != nil {
			return "return " + Expr(e.X, indent)
		}
		return "return"
	}
	return "<?expr>"
}

func stmtAttrs(attrs []parser.Expr, indent int) string {
	var result string
	for _, attr := range attrs {
		result += "@" + Expr(attr, indent) + "\n" + indentStr(indent)
	}
	return result
}

func Stmt(s parser.Stmt, indent int) string {
	result := indentStr(indent) + stmtAttrs(s.Attrs(), indent)
	switch s := s.(type) {
	case *parser.OpenStmt:
		result += "open " + Import(s.Imp) + ";"
	case *parser.LetStmt:
		result += "let " + Pat(s.Pat) + " = " + Expr(s.X, indent)
		if s.Else != nil {
			result += " else " + Expr(s.Else, indent)
		}
		result += ";"
	case *parser.FuncStmt:
		parts := make([]string, 0, len(s.Params))
		for _, param := range s.Params {
			parts = append(parts, Pat(param))
		}
		result += "func " + s.Ident + "(" + strings.Join(parts, ", ") + ")"
		if s.Ret != nil && s.Ret.TypeKind() != parser.TypeMeta {
			result += " -> " + Type(s.Ret)
		}
		result += " " + Expr(s.Body, indent)
	case *parser.BindStmt:
		result += "let " + Pat(s.Pat) + " <- " + Expr(s.X, indent) + ";"
	case *parser.ExprStmt:
		result += Expr(s.X, indent)
		if !s.IsVal {
			result += ";"
		}
	}
	return result
}

func typeParams(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func typeBounds(bounds []parser.TypeBound) string {
	if len(bounds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(bounds))
	for _, bound := range bounds {
		part := Type(bound.Type)
		if len(bound.Bounds) > 0 {
			bs := make([]string, 0, len(bound.Bounds))
			for _, b := range bound.Bounds {
				bs = append(bs, Type(b))
			}
			part += ": " + strings.Join(bs, " + ")
		}
		parts = append(parts, part)
	}
	return " where " + strings.Join(parts, ", ")
}

func declBody(body []parser.Decl, indent int) string {
	var sb strings.Builder
	sb.WriteString(" {\n")
	for _, inner := range body {
		sb.WriteString(Decl(inner, indent+1) + "\n")
	}
	sb.WriteString(indentStr(indent) + "}")
	return sb.String()
}

func Decl(d parser.Decl, indent int) string {
	result := indentStr(indent) + stmtAttrs(d.Attrs(), indent)
	if d.Access() != parser.Public {
		result += d.Access().String() + " "
	}
	switch d := d.(type) {
	case *parser.ModuleDecl:
		result += "module " + d.Ident + declBody(d.Body, indent)
	case *parser.OpenDecl:
		result += "open " + Import(d.Imp) + ";"
	case *parser.ClassDecl:
		result += "class " + d.Ident + typeParams(d.TypeParams) + typeBounds(d.Bounds) + declBody(d.Body, indent)
	case *parser.EnumDecl:
		result += "enum " + d.Ident + typeParams(d.TypeParams) + typeBounds(d.Bounds) + declBody(d.Body, indent)
	case *parser.TypealiasDecl:
		result += "type " + d.Ident + typeParams(d.TypeParams) + typeBounds(d.Bounds)
		if len(d.Hint) > 0 {
			parts := make([]string, 0, len(d.Hint))
			for _, hint := range d.Hint {
				parts = append(parts, Type(hint))
			}
			result += ": " + strings.Join(parts, " + ")
		}
		if d.Aliased != nil {
			result += " = " + Type(d.Aliased)
		}
		result += ";"
	case *parser.InterfaceDecl:
		result += "interface " + d.Ident + typeParams(d.TypeParams) + typeBounds(d.Bounds) + declBody(d.Body, indent)
	case *parser.ExtensionDecl:
		result += "extension" + typeParams(d.TypeParams)
		if d.Ident != "" {
			result += " " + d.Ident
		}
		result += " " + Type(d.Base) + ": " + Type(d.Iface) + typeBounds(d.Bounds) + declBody(d.Body, indent)
	case *parser.LetDecl:
		result += "let " + Pat(d.Pat)
		if d.X != nil {
			result += " = " + Expr(d.X, indent)
		}
		result += ";"
	case *parser.FuncDecl:
		parts := make([]string, 0, len(d.Params))
		for _, param := range d.Params {
			parts = append(parts, Pat(param))
		}
		result += "func " + d.Ident + typeParams(d.TypeParams) + "(" + strings.Join(parts, ", ") + ")"
		if d.Ret != nil && d.Ret.TypeKind() != parser.TypeMeta {
			result += " -> " + Type(d.Ret)
		}
		result += typeBounds(d.Bounds)
		if d.Body != nil {
			result += " " + Expr(d.Body, indent)
		} else {
			result += ";"
		}
	case *parser.InitDecl:
		result += "init"
		if d.Ident != "" {
			result += " " + d.Ident
		}
		parts := make([]string, 0, len(d.Params))
		for _, param := range d.Params {
			parts = append(parts, Pat(param))
		}
		result += typeParams(d.TypeParams) + "(" + strings.Join(parts, ", ") + ")"
		if d.Ret != nil && d.Ret.TypeKind() != parser.TypeMeta {
			result += " -> " + Type(d.Ret)
		}
		result += typeBounds(d.Bounds)
		if d.Body != nil {
			result += " " + Expr(d.Body, indent)
		} else {
			result += ";"
		}
	case *parser.CtorDecl:
		result += "case " + d.Ident
		if len(d.Params) > 0 {
			parts := make([]string, 0, len(d.Params))
			for _, param := range d.Params {
				parts = append(parts, Type(param))
			}
			result += "(" + strings.Join(parts, ", ") + ")"
		}
	}
	return result
}
