package format

import (
	"strconv"
	"strings"

	"github.com/sable-lang/sable/lang/elaborate"
	"github.com/sable-lang/sable/lang/parser"
)

// Elaborated-tree renderers. Resolved constants print their full symbol
// paths, so the output doubles as a resolution trace.

func elabTypeArgs(args []elaborate.Type) string {
	if args == nil {
		return ""
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, ElabType(arg))
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func ElabType(t elaborate.Type) string {
	switch t := t.(type) {
	case *elaborate.MetaType:
		return "_"
	case *elaborate.IntType:
		return "Int"
	case *elaborate.BoolType:
		return "Bool"
	case *elaborate.CharType:
		return "Char"
	case *elaborate.StringType:
		return "String"
	case *elaborate.UnitType:
		return "()"
	case *elaborate.VarType:
		return t.Ident
	case *elaborate.EnumType:
		return t.Ident + elabTypeArgs(t.TypeArgs)
	case *elaborate.ClassType:
		return t.Ident + elabTypeArgs(t.TypeArgs)
	case *elaborate.TypealiasType:
		return t.Ident + elabTypeArgs(t.TypeArgs)
	case *elaborate.InterfaceType:
		return t.Ident + elabTypeArgs(t.TypeArgs)
	case *elaborate.TupleType:
		parts := make([]string, 0, len(t.Elems))
		for _, elem := range t.Elems {
			parts = append(parts, ElabType(elem))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *elaborate.ArrowType:
		var in string
		if len(t.Inputs) == 1 {
			in = ElabType(t.Inputs[0])
		} else {
			parts := make([]string, 0, len(t.Inputs))
			for _, input := range t.Inputs {
				parts = append(parts, ElabType(input))
			}
			in = "(" + strings.Join(parts, ", ") + ")"
		}
		return in + " -> " + ElabType(t.Output)
	}
	return "<?type>"
}

func ElabPat(p elaborate.Pat) string {
	switch p := p.(type) {
	case *elaborate.LitPat:
		return Lit(p.Lit)
	case *elaborate.TuplePat:
		parts := make([]string, 0, len(p.Elems))
		for _, elem := range p.Elems {
			parts = append(parts, ElabPat(elem))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *elaborate.CtorPat:
		result := p.Ident + elabTypeArgs(p.TypeArgs)
		if p.Args != nil {
			parts := make([]string, 0, len(p.Args))
			for _, arg := range p.Args {
				parts = append(parts, ElabPat(arg))
			}
			result += "(" + strings.Join(parts, ", ") + ")"
		}
		return result
	case *elaborate.VarPat:
		var result string
		if p.IsMut {
			result = "mut "
		}
		result += p.Ident
		if p.Hint != nil && p.Hint.TypeKind() != elaborate.TypeMeta {
			result += ": " + ElabType(p.Hint)
		}
		return result
	case *elaborate.WildPat:
		return "_"
	case *elaborate.OrPat:
		parts := make([]string, 0, len(p.Options))
		for _, option := range p.Options {
			parts = append(parts, ElabPat(option))
		}
		return strings.Join(parts, " | ")
	case *elaborate.AtPat:
		var result string
		if p.IsMut {
			result = "mut "
		}
		result += p.Ident
		if p.Hint != nil && p.Hint.TypeKind() != elaborate.TypeMeta {
			result += ": " + ElabType(p.Hint)
		}
		return result + " @ " + ElabPat(p.Pat)
	}
	return "<?pat>"
}

func ElabCond(c elaborate.Cond) string {
	switch c := c.(type) {
	case *elaborate.ExprCond:
		return ElabExpr(c.X, 0)
	case *elaborate.PatCond:
		return "let " + ElabPat(c.Pat) + " = " + ElabExpr(c.X, 0)
	}
	return "<?cond>"
}

func ElabClause(c elaborate.Clause, indent int) string {
	switch c := c.(type) {
	case *elaborate.CaseClause:
		result := indentStr(indent) + "case " + ElabPat(c.Pat)
		if c.Guard != nil {
			result += " if " + ElabExpr(c.Guard, indent)
		}
		return result + ": " + ElabExpr(c.Body, indent)
	case *elaborate.DefaultClause:
		return indentStr(indent) + "default: " + ElabExpr(c.Body, indent)
	}
	return "<?clause>"
}

func ElabExpr(e elaborate.Expr, indent int) string {
	switch e := e.(type) {
	case *elaborate.LitExpr:
		return Lit(e.Lit)
	case *elaborate.UnaryExpr:
		inner := ElabExpr(e.X, indent)
		switch e.Op {
		case parser.UnaryTry:
			return inner + "?"
		case parser.UnaryNew:
			return "new " + inner
		default:
			return e.Op.String() + inner
		}
	case *elaborate.IndexExpr:
		parts := make([]string, 0, len(e.Indices))
		for _, index := range e.Indices {
			parts = append(parts, ElabExpr(index, indent))
		}
		return ElabExpr(e.X, indent) + "[" + strings.Join(parts, ", ") + "]"
	case *elaborate.FieldExpr:
		return ElabExpr(e.X, indent) + "." + strings.Join(e.Path, ".") + elabTypeArgs(e.TypeArgs)
	case *elaborate.ProjExpr:
		return ElabExpr(e.X, indent) + "." + strconv.FormatInt(e.Index, 10)
	case *elaborate.BinaryExpr:
		return ElabExpr(e.L, indent) + " " + e.Op.String() + " " + ElabExpr(e.R, indent)
	case *elaborate.AssignExpr:
		op := "="
		if e.Mode != parser.BinaryAssign {
			op = e.Mode.String() + "="
		}
		return ElabExpr(e.L, indent) + " " + op + " " + ElabExpr(e.R, indent)
	case *elaborate.TupleExpr:
		parts := make([]string, 0, len(e.Elems))
		for _, elem := range e.Elems {
			parts = append(parts, ElabExpr(elem, indent))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *elaborate.HintExpr:
		return "(" + ElabExpr(e.X, indent) + ": " + ElabType(e.Type) + ")"
	case *elaborate.ConstExpr:
		return e.Ident + elabTypeArgs(e.TypeArgs)
	case *elaborate.VarExpr:
		return e.Ident
	case *elaborate.HoleExpr:
		return "_"
	case *elaborate.LamExpr:
		var result string
		if len(e.Params) == 1 {
			result = ElabPat(e.Params[0])
		} else {
			parts := make([]string, 0, len(e.Params))
			for _, param := range e.Params {
				parts = append(parts, ElabPat(param))
			}
			result = "(" + strings.Join(parts, ", ") + ")"
		}
		return result + " => " + ElabExpr(e.Body, indent)
	case *elaborate.AppExpr:
		parts := make([]string, 0, len(e.Args))
		for _, arg := range e.Args {
			parts = append(parts, ElabExpr(arg, indent))
		}
		return ElabExpr(e.Func, indent) + "(" + strings.Join(parts, ", ") + ")"
	case *elaborate.BlockExpr:
		if len(e.Stmts) == 0 && e.Body == nil {
			return "{}"
		}
		var sb strings.Builder
		sb.WriteString("{\n")
		for _, stmt := range e.Stmts {
			sb.WriteString(ElabStmt(stmt, indent+1) + "\n")
		}
		if e.Body != nil {
			sb.WriteString(indentStr(indent+1) + ElabExpr(e.Body, indent+1) + "\n")
		}
		sb.WriteString(indentStr(indent) + "}")
		return sb.String()
	case *elaborate.IteExpr:
		result := "if " + ElabCond(e.Branches[0].Cond) + " " + ElabExpr(e.Branches[0].Then, indent)
		for _, branch := range e.Branches[1:] {
			result += " else if " + ElabCond(branch.Cond) + " " + ElabExpr(branch.Then, indent)
		}
		if e.Else != nil {
			result += " else " + ElabExpr(e.Else, indent)
		}
		return result
	case *elaborate.SwitchExpr:
		var sb strings.Builder
		sb.WriteString("switch " + ElabExpr(e.X, indent) + " {\n")
		for _, clause := range e.Clauses {
			sb.WriteString(ElabClause(clause, indent+1) + "\n")
		}
		sb.WriteString(indentStr(indent) + "}")
		return sb.String()
	case *elaborate.ForExpr:
		return "for " + ElabPat(e.Pat) + " in " + ElabExpr(e.Iter, indent) + " " + ElabExpr(e.Body, indent)
	case *elaborate.WhileExpr:
		return "while " + ElabCond(e.Cond) + " " + ElabExpr(e.Body, indent)
	case *elaborate.LoopExpr:
		return "loop " + ElabExpr(e.Body, indent)
	case *elaborate.BreakExpr:
		return "break"
	case *elaborate.ContinueExpr:
		return "continue"
	case *elaborate.ReturnExpr:
		if e.X != nil {
			return "return " + ElabExpr(e.X, indent)
		}
		return "return"
	}
	return "<?expr>"
}

func elabAttrs(attrs []elaborate.Expr, indent int) string {
	var result string
	for _, attr := range attrs {
		result += "@" + ElabExpr(attr, indent) + "\n" + indentStr(indent)
	}
	return result
}

func ElabStmt(s elaborate.Stmt, indent int) string {
	switch s := s.(type) {
	case *elaborate.OpenStmt:
		return indentStr(indent) + elabAttrs(s.Attrs, indent) + "open " + Import(s.Imp) + ";"
	case *elaborate.LetStmt:
		result := indentStr(indent) + elabAttrs(s.Attrs, indent)
		result += "let " + ElabPat(s.Pat) + " = " + ElabExpr(s.X, indent)
		if s.Else != nil {
			result += " else " + ElabExpr(s.Else, indent)
		}
		return result + ";"
	case *elaborate.FuncStmt:
		result := indentStr(indent) + elabAttrs(s.Attrs, indent)
		parts := make([]string, 0, len(s.Params))
		for _, param := range s.Params {
			parts = append(parts, ElabPat(param))
		}
		result += "func " + s.Ident + "(" + strings.Join(parts, ", ") + ")"
		if s.Ret != nil && s.Ret.TypeKind() != elaborate.TypeMeta {
			result += " -> " + ElabType(s.Ret)
		}
		return result + " " + ElabExpr(s.Body, indent)
	case *elaborate.BindStmt:
		return indentStr(indent) + elabAttrs(s.Attrs, indent) + "let " + ElabPat(s.Pat) + " <- " + ElabExpr(s.X, indent) + ";"
	case *elaborate.ExprStmt:
		result := indentStr(indent) + elabAttrs(s.Attrs, indent) + ElabExpr(s.X, indent)
		if !s.IsVal {
			result += ";"
		}
		return result
	}
	return "<?stmt>"
}

func elabTypeBounds(bounds []elaborate.TypeBound) string {
	if len(bounds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(bounds))
	for _, bound := range bounds {
		part := ElabType(bound.Type)
		if len(bound.Bounds) > 0 {
			bs := make([]string, 0, len(bound.Bounds))
			for _, b := range bound.Bounds {
				bs = append(bs, ElabType(b))
			}
			part += ": " + strings.Join(bs, " + ")
		}
		parts = append(parts, part)
	}
	return " where " + strings.Join(parts, ", ")
}

func elabDeclBody(body []elaborate.Decl, indent int) string {
	var sb strings.Builder
	sb.WriteString(" {\n")
	for _, inner := range body {
		sb.WriteString(ElabDecl(inner, indent+1) + "\n")
	}
	sb.WriteString(indentStr(indent) + "}")
	return sb.String()
}

func ElabDecl(d elaborate.Decl, indent int) string {
	switch d := d.(type) {
	case *elaborate.ModuleDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent)
		return result + "module " + d.Ident + elabDeclBody(d.Body, indent)
	case *elaborate.OpenDecl:
		return elabDeclHead(d.Attrs, d.Access, indent) + "open " + Import(d.Imp) + ";"
	case *elaborate.ClassDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent)
		return result + "class " + d.Ident + typeParams(d.TypeParams) + elabTypeBounds(d.Bounds) + elabDeclBody(d.Body, indent)
	case *elaborate.EnumDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent)
		return result + "enum " + d.Ident + typeParams(d.TypeParams) + elabTypeBounds(d.Bounds) + elabDeclBody(d.Body, indent)
	case *elaborate.TypealiasDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent)
		result += "type " + d.Ident + typeParams(d.TypeParams) + elabTypeBounds(d.Bounds)
		if len(d.Hint) > 0 {
			parts := make([]string, 0, len(d.Hint))
			for _, hint := range d.Hint {
				parts = append(parts, ElabType(hint))
			}
			result += ": " + strings.Join(parts, " + ")
		}
		if d.Aliased != nil {
			result += " = " + ElabType(d.Aliased)
		}
		return result + ";"
	case *elaborate.InterfaceDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent)
		return result + "interface " + d.Ident + typeParams(d.TypeParams) + elabTypeBounds(d.Bounds) + elabDeclBody(d.Body, indent)
	case *elaborate.ExtensionDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent)
		result += "extension" + typeParams(d.TypeParams)
		if d.Ident != "" {
			result += " " + d.Ident
		}
		return result + " " + ElabType(d.Base) + ": " + ElabType(d.Iface) + elabTypeBounds(d.Bounds) + elabDeclBody(d.Body, indent)
	case *elaborate.LetDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent) + "let " + ElabPat(d.Pat)
		if d.X != nil {
			result += " = " + ElabExpr(d.X, indent)
		}
		return result + ";"
	case *elaborate.FuncDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent)
		parts := make([]string, 0, len(d.Params))
		for _, param := range d.Params {
			parts = append(parts, ElabPat(param))
		}
		result += "func " + d.Ident + typeParams(d.TypeParams) + "(" + strings.Join(parts, ", ") + ")"
		if d.Ret != nil && d.Ret.TypeKind() != elaborate.TypeMeta {
			result += " -> " + ElabType(d.Ret)
		}
		result += elabTypeBounds(d.Bounds)
		if d.Body != nil {
			return result + " " + ElabExpr(d.Body, indent)
		}
		return result + ";"
	case *elaborate.InitDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent) + "init"
		if d.Ident != "" {
			result += " " + d.Ident
		}
		parts := make([]string, 0, len(d.Params))
		for _, param := range d.Params {
			parts = append(parts, ElabPat(param))
		}
		result += typeParams(d.TypeParams) + "(" + strings.Join(parts, ", ") + ")"
		if d.Ret != nil && d.Ret.TypeKind() != elaborate.TypeMeta {
			result += " -> " + ElabType(d.Ret)
		}
		result += elabTypeBounds(d.Bounds)
		if d.Body != nil {
			return result + " " + ElabExpr(d.Body, indent)
		}
		return result + ";"
	case *elaborate.CtorDecl:
		result := elabDeclHead(d.Attrs, d.Access, indent) + "case " + d.Ident
		if len(d.Params) > 0 {
			parts := make([]string, 0, len(d.Params))
			for _, param := range d.Params {
				parts = append(parts, ElabType(param))
			}
			result += "(" + strings.Join(parts, ", ") + ")"
		}
		return result
	}
	return "<?decl>"
}

func elabDeclHead(attrs []elaborate.Expr, access elaborate.Access, indent int) string {
	result := indentStr(indent) + elabAttrs(attrs, indent)
	if access != parser.Public {
		result += access.String() + " "
	}
	return result
}
