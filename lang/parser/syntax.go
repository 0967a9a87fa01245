package parser

import "strconv"

// Seg is one segment of a dotted path: either an identifier or a
// non-negative tuple index.
type Seg struct {
	Ident   string
	Index   int64
	IsIndex bool
}

func (s Seg) String() string {
	if s.IsIndex {
		return strconv.FormatInt(s.Index, 10)
	}
	return s.Ident
}

// Name is an identifier followed by an ordered sequence of path segments.
type Name struct {
	Ident string
	Path  []Seg
}

func (n Name) String() string {
	result := n.Ident
	for _, seg := range n.Path {
		result += "." + seg.String()
	}
	return result
}

// Slice splits the path at the first index segment: the leading identifier
// segments come back as plain strings, everything from the first index
// onward as the remainder.
func (n Name) Slice() ([]string, []Seg) {
	var path []string
	for i, seg := range n.Path {
		if seg.IsIndex {
			return path, n.Path[i:]
		}
		path = append(path, seg.Ident)
	}
	return path, nil
}

type Access int

const (
	Public Access = iota
	Private
	Protected
)

func (a Access) String() string {
	switch a {
	case Private:
		return "private"
	case Protected:
		return "protected"
	}
	return "public"
}

// Imports

type ImportKind int

const (
	ImportNode ImportKind = iota
	ImportAlias
	ImportWild
)

type Import interface {
	ImportKind() ImportKind
	Span() Span
}

// NodeImport names a table node, optionally descending into nested imports
// (`M`, `M.C`, `M.{A, B.*}`).
type NodeImport struct {
	Name   string
	Nested []Import
	span   Span
}

func (i *NodeImport) ImportKind() ImportKind { return ImportNode }
func (i *NodeImport) Span() Span             { return i.span }

// AliasImport rebinds a name (`C as D`) or hides it (`C as _`, Alias empty).
type AliasImport struct {
	Name  string
	Alias string
	span  Span
}

func (i *AliasImport) ImportKind() ImportKind { return ImportAlias }
func (i *AliasImport) Span() Span             { return i.span }

// WildImport is the `*` import, copying every entry of the target node.
type WildImport struct {
	span Span
}

func (i *WildImport) ImportKind() ImportKind { return ImportWild }
func (i *WildImport) Span() Span             { return i.span }

// Types

type TypeKind int

const (
	TypeMeta TypeKind = iota
	TypeInt
	TypeBool
	TypeChar
	TypeString
	TypeUnit
	TypeName
	TypeTuple
	TypeArrow
)

type Type interface {
	TypeKind() TypeKind
	Span() Span
}

// MetaType is the missing-annotation placeholder resolved by later
// inference.
type MetaType struct {
	span Span
}

func (t *MetaType) TypeKind() TypeKind { return TypeMeta }
func (t *MetaType) Span() Span         { return t.span }

type IntType struct {
	span Span
}

func (t *IntType) TypeKind() TypeKind { return TypeInt }
func (t *IntType) Span() Span         { return t.span }

type BoolType struct {
	span Span
}

func (t *BoolType) TypeKind() TypeKind { return TypeBool }
func (t *BoolType) Span() Span         { return t.span }

type CharType struct {
	span Span
}

func (t *CharType) TypeKind() TypeKind { return TypeChar }
func (t *CharType) Span() Span         { return t.span }

type StringType struct {
	span Span
}

func (t *StringType) TypeKind() TypeKind { return TypeString }
func (t *StringType) Span() Span         { return t.span }

type UnitType struct {
	span Span
}

func (t *UnitType) TypeKind() TypeKind { return TypeUnit }
func (t *UnitType) Span() Span         { return t.span }

// NameType references a declared type, optionally applied to type
// arguments. TypeArgs nil means no argument list was written; an empty
// non-nil slice is an explicit `<>`.
type NameType struct {
	Name     Name
	TypeArgs []Type
	span     Span
}

func (t *NameType) TypeKind() TypeKind { return TypeName }
func (t *NameType) Span() Span         { return t.span }

type TupleType struct {
	Elems []Type
	span  Span
}

func (t *TupleType) TypeKind() TypeKind { return TypeTuple }
func (t *TupleType) Span() Span         { return t.span }

type ArrowType struct {
	Inputs []Type
	Output Type
	span   Span
}

func (t *ArrowType) TypeKind() TypeKind { return TypeArrow }
func (t *ArrowType) Span() Span         { return t.span }

// Literals

type LitKind int

const (
	LitUnit LitKind = iota
	LitInt
	LitBool
	LitChar
	LitString
)

type Lit interface {
	LitKind() LitKind
	Span() Span
}

type UnitLit struct {
	span Span
}

func (l *UnitLit) LitKind() LitKind { return LitUnit }
func (l *UnitLit) Span() Span       { return l.span }

type IntLit struct {
	Value int64
	span  Span
}

func (l *IntLit) LitKind() LitKind { return LitInt }
func (l *IntLit) Span() Span       { return l.span }

type BoolLit struct {
	Value bool
	span  Span
}

func (l *BoolLit) LitKind() LitKind { return LitBool }
func (l *BoolLit) Span() Span       { return l.span }

type CharLit struct {
	Value byte
	span  Span
}

func (l *CharLit) LitKind() LitKind { return LitChar }
func (l *CharLit) Span() Span       { return l.span }

type StringLit struct {
	Value string
	span  Span
}

func (l *StringLit) LitKind() LitKind { return LitString }
func (l *StringLit) Span() Span       { return l.span }
