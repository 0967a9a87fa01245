package parser

// Statements

type StmtKind int

const (
	StmtOpen StmtKind = iota
	StmtLet
	StmtFunc
	StmtBind
	StmtExpr
)

type Stmt interface {
	StmtKind() StmtKind
	Span() Span
	Attrs() []Expr
	setAttrs([]Expr)
}

// attrs carries the `@expr` annotations shared by all statement variants.
type attrs struct {
	attrs []Expr
}

func (a *attrs) Attrs() []Expr      { return a.attrs }
func (a *attrs) setAttrs(as []Expr) { a.attrs = as }

type OpenStmt struct {
	attrs
	Imp  Import
	span Span
}

func (s *OpenStmt) StmtKind() StmtKind { return StmtOpen }
func (s *OpenStmt) Span() Span         { return s.span }

type LetStmt struct {
	attrs
	Pat  Pat
	X    Expr
	Else Expr // nil unless a `let ... else` fallback block is present
	span Span
}

func (s *LetStmt) StmtKind() StmtKind { return StmtLet }
func (s *LetStmt) Span() Span         { return s.span }

type FuncStmt struct {
	attrs
	Ident  string
	Params []Pat
	Ret    Type
	Body   Expr
	span   Span
}

func (s *FuncStmt) StmtKind() StmtKind { return StmtFunc }
func (s *FuncStmt) Span() Span         { return s.span }

// BindStmt is the monadic `let pat <- expr;` form.
type BindStmt struct {
	attrs
	Pat  Pat
	X    Expr
	span Span
}

func (s *BindStmt) StmtKind() StmtKind { return StmtBind }
func (s *BindStmt) Span() Span         { return s.span }

// ExprStmt is an expression in statement position. IsVal marks a trailing
// expression not terminated by a semicolon, which becomes the value of the
// enclosing block.
type ExprStmt struct {
	attrs
	X     Expr
	IsVal bool
	span  Span
}

func (s *ExprStmt) StmtKind() StmtKind { return StmtExpr }
func (s *ExprStmt) Span() Span         { return s.span }

// Declarations

type DeclKind int

const (
	DeclModule DeclKind = iota
	DeclOpen
	DeclClass
	DeclEnum
	DeclTypealias
	DeclInterface
	DeclExtension
	DeclLet
	DeclFunc
	DeclInit
	DeclCtor
)

type Decl interface {
	DeclKind() DeclKind
	Span() Span
	Attrs() []Expr
	setAttrs([]Expr)
	Access() Access
	setAccess(Access)
}

// declBase carries attributes and the access level shared by all
// declaration variants.
type declBase struct {
	attrs
	access Access
}

func (d *declBase) Access() Access     { return d.access }
func (d *declBase) setAccess(a Access) { d.access = a }

// TypeBound pairs a type with the bounds it must satisfy, written either in
// a `<T: B + C>` parameter list or a `where` clause.
type TypeBound struct {
	Type   Type
	Bounds []Type
}

type ModuleDecl struct {
	declBase
	Ident string
	Body  []Decl
	span  Span
}

func (d *ModuleDecl) DeclKind() DeclKind { return DeclModule }
func (d *ModuleDecl) Span() Span         { return d.span }

type OpenDecl struct {
	declBase
	Imp  Import
	span Span
}

func (d *OpenDecl) DeclKind() DeclKind { return DeclOpen }
func (d *OpenDecl) Span() Span         { return d.span }

type ClassDecl struct {
	declBase
	Ident      string
	TypeParams []string // nil when no parameter list was written
	Bounds     []TypeBound
	Body       []Decl
	span       Span
}

func (d *ClassDecl) DeclKind() DeclKind { return DeclClass }
func (d *ClassDecl) Span() Span         { return d.span }

type EnumDecl struct {
	declBase
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Body       []Decl
	span       Span
}

func (d *EnumDecl) DeclKind() DeclKind { return DeclEnum }
func (d *EnumDecl) Span() Span         { return d.span }

type TypealiasDecl struct {
	declBase
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Hint       []Type
	Aliased    Type // nil for an abstract alias
	span       Span
}

func (d *TypealiasDecl) DeclKind() DeclKind { return DeclTypealias }
func (d *TypealiasDecl) Span() Span         { return d.span }

type InterfaceDecl struct {
	declBase
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Body       []Decl
	span       Span
}

func (d *InterfaceDecl) DeclKind() DeclKind { return DeclInterface }
func (d *InterfaceDecl) Span() Span         { return d.span }

// ExtensionDecl attaches an interface implementation to a base type. Ident
// is synthesized by the table builder (`ext%<n>`).
type ExtensionDecl struct {
	declBase
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Base       Type
	Iface      Type
	Body       []Decl
	span       Span
}

func (d *ExtensionDecl) DeclKind() DeclKind { return DeclExtension }
func (d *ExtensionDecl) Span() Span         { return d.span }

type LetDecl struct {
	declBase
	Pat  Pat
	X    Expr // nil for an uninitialized declaration
	span Span
}

func (d *LetDecl) DeclKind() DeclKind { return DeclLet }
func (d *LetDecl) Span() Span         { return d.span }

type FuncDecl struct {
	declBase
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Params     []Pat
	Ret        Type
	Body       Expr // nil for a bodyless signature
	span       Span
}

func (d *FuncDecl) DeclKind() DeclKind { return DeclFunc }
func (d *FuncDecl) Span() Span         { return d.span }

// InitDecl is an initializer. Ident may be written explicitly; when empty
// the table builder synthesizes `init%<n>`.
type InitDecl struct {
	declBase
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Params     []Pat
	Ret        Type
	Body       Expr
	span       Span
}

func (d *InitDecl) DeclKind() DeclKind { return DeclInit }
func (d *InitDecl) Span() Span         { return d.span }

// CtorDecl is an enum case. Params nil means the case was written without a
// parameter list.
type CtorDecl struct {
	declBase
	Ident  string
	Params []Type
	span   Span
}

func (d *CtorDecl) DeclKind() DeclKind { return DeclCtor }
func (d *CtorDecl) Span() Span         { return d.span }

// Package is one parsed compilation unit.
type Package struct {
	Ident  string
	Header []Import
	Body   []Decl
	span   Span
}

func (p *Package) Span() Span { return p.span }
