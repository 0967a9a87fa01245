package elaborate

import "github.com/sable-lang/sable/lang/parser"

// The elaborated tree mirrors the raw one, with every name bound: name
// patterns become variable bindings, name expressions split into constants
// and variables, name types split into type variables and resolved type
// constants, and dot selectors split into field accesses and tuple
// projections. Spans and imports are shared with the parser package.

type Span = parser.Span
type Access = parser.Access

// Types

type TypeKind int

const (
	TypeMeta TypeKind = iota
	TypeInt
	TypeBool
	TypeChar
	TypeString
	TypeUnit
	TypeVar
	TypeEnum
	TypeClass
	TypeTypealias
	TypeInterface
	TypeTuple
	TypeArrow
)

type Type interface {
	TypeKind() TypeKind
	Span() Span
}

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

// VarType is a reference to a bound type parameter.
type VarType struct {
	Ident string
	span  Span
}

func (t *VarType) TypeKind() TypeKind { return TypeVar }
func (t *VarType) Span() Span         { return t.span }

type EnumType struct {
	Ident    string
	TypeArgs []Type
	span     Span
}

func (t *EnumType) TypeKind() TypeKind { return TypeEnum }
func (t *EnumType) Span() Span         { return t.span }

type ClassType struct {
	Ident    string
	TypeArgs []Type
	span     Span
}

func (t *ClassType) TypeKind() TypeKind { return TypeClass }
func (t *ClassType) Span() Span         { return t.span }

type TypealiasType struct {
	Ident    string
	TypeArgs []Type
	span     Span
}

func (t *TypealiasType) TypeKind() TypeKind { return TypeTypealias }
func (t *TypealiasType) Span() Span         { return t.span }

type InterfaceType struct {
	Ident    string
	TypeArgs []Type
	span     Span
}

func (t *InterfaceType) TypeKind() TypeKind { return TypeInterface }
func (t *InterfaceType) Span() Span         { return t.span }

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

// Literals are shared with the raw tree; they carry no names.

type Lit = parser.Lit

// Patterns

type PatKind int

const (
	PatLit PatKind = iota
	PatTuple
	PatCtor
	PatVar
	PatWild
	PatOr
	PatAt
)

type Pat interface {
	PatKind() PatKind
	Span() Span
}

type LitPat struct {
	Lit  Lit
	span Span
}

func (p *LitPat) PatKind() PatKind { return PatLit }
func (p *LitPat) Span() Span       { return p.span }

type TuplePat struct {
	Elems []Pat
	span  Span
}

func (p *TuplePat) PatKind() PatKind { return PatTuple }
func (p *TuplePat) Span() Span       { return p.span }

// CtorPat carries the constructor's fully-qualified symbol path.
type CtorPat struct {
	Ident    string
	TypeArgs []Type
	Args     []Pat
	span     Span
}

func (p *CtorPat) PatKind() PatKind { return PatCtor }
func (p *CtorPat) Span() Span       { return p.span }

// VarPat is a binding; its identifier never carries a path.
type VarPat struct {
	Ident string
	Hint  Type
	IsMut bool
	span  Span
}

func (p *VarPat) PatKind() PatKind { return PatVar }
func (p *VarPat) Span() Span       { return p.span }

type WildPat struct {
	span Span
}

func (p *WildPat) PatKind() PatKind { return PatWild }
func (p *WildPat) Span() Span       { return p.span }

type OrPat struct {
	Options []Pat
	span    Span
}

func (p *OrPat) PatKind() PatKind { return PatOr }
func (p *OrPat) Span() Span       { return p.span }

type AtPat struct {
	Ident string
	Hint  Type
	IsMut bool
	Pat   Pat
	span  Span
}

func (p *AtPat) PatKind() PatKind { return PatAt }
func (p *AtPat) Span() Span       { return p.span }

// Conditions and clauses

type CondKind int

const (
	CondExpr CondKind = iota
	CondCase
)

type Cond interface {
	CondKind() CondKind
	Span() Span
}

type ExprCond struct {
	X    Expr
	span Span
}

func (c *ExprCond) CondKind() CondKind { return CondExpr }
func (c *ExprCond) Span() Span         { return c.span }

type PatCond struct {
	Pat  Pat
	X    Expr
	span Span
}

func (c *PatCond) CondKind() CondKind { return CondCase }
func (c *PatCond) Span() Span         { return c.span }

type ClauseKind int

const (
	ClauseCase ClauseKind = iota
	ClauseDefault
)

type Clause interface {
	ClauseKind() ClauseKind
	Span() Span
}

type CaseClause struct {
	Pat   Pat
	Guard Expr
	Body  Expr
	span  Span
}

func (c *CaseClause) ClauseKind() ClauseKind { return ClauseCase }
func (c *CaseClause) Span() Span             { return c.span }

type DefaultClause struct {
	Body Expr
	span Span
}

func (c *DefaultClause) ClauseKind() ClauseKind { return ClauseDefault }
func (c *DefaultClause) Span() Span             { return c.span }

// Expressions

type ExprKind int

const (
	ExprLit ExprKind = iota
	ExprUnary
	ExprIndex
	ExprField
	ExprProj
	ExprBinary
	ExprAssign
	ExprTuple
	ExprHint
	ExprConst
	ExprVar
	ExprHole
	ExprLam
	ExprApp
	ExprBlock
	ExprIte
	ExprSwitch
	ExprFor
	ExprWhile
	ExprLoop
	ExprBreak
	ExprContinue
	ExprReturn
)

type Expr interface {
	ExprKind() ExprKind
	Span() Span
}

type LitExpr struct {
	Lit  Lit
	span Span
}

func (e *LitExpr) ExprKind() ExprKind { return ExprLit }
func (e *LitExpr) Span() Span         { return e.span }

type UnaryOp = parser.UnaryOp

type UnaryExpr struct {
	Op   UnaryOp
	X    Expr
	span Span
}

func (e *UnaryExpr) ExprKind() ExprKind { return ExprUnary }
func (e *UnaryExpr) Span() Span         { return e.span }

type IndexExpr struct {
	X       Expr
	Indices []Expr
	span    Span
}

func (e *IndexExpr) ExprKind() ExprKind { return ExprIndex }
func (e *IndexExpr) Span() Span         { return e.span }

// FieldExpr selects named members; all path segments are identifiers.
type FieldExpr struct {
	X        Expr
	Path     []string
	TypeArgs []Type
	span     Span
}

func (e *FieldExpr) ExprKind() ExprKind { return ExprField }
func (e *FieldExpr) Span() Span         { return e.span }

// ProjExpr selects one tuple component by position.
type ProjExpr struct {
	X     Expr
	Index int64
	span  Span
}

func (e *ProjExpr) ExprKind() ExprKind { return ExprProj }
func (e *ProjExpr) Span() Span         { return e.span }

type BinaryOp = parser.BinaryOp

type BinaryExpr struct {
	Op   BinaryOp
	L    Expr
	R    Expr
	span Span
}

func (e *BinaryExpr) ExprKind() ExprKind { return ExprBinary }
func (e *BinaryExpr) Span() Span         { return e.span }

type AssignExpr struct {
	Mode BinaryOp
	L    Expr
	R    Expr
	span Span
}

func (e *AssignExpr) ExprKind() ExprKind { return ExprAssign }
func (e *AssignExpr) Span() Span         { return e.span }

type TupleExpr struct {
	Elems []Expr
	span  Span
}

func (e *TupleExpr) ExprKind() ExprKind { return ExprTuple }
func (e *TupleExpr) Span() Span         { return e.span }

type HintExpr struct {
	X    Expr
	Type Type
	span Span
}

func (e *HintExpr) ExprKind() ExprKind { return ExprHint }
func (e *HintExpr) Span() Span         { return e.span }

// ConstExpr references a declared entity by its fully-qualified symbol
// path.
type ConstExpr struct {
	Ident    string
	TypeArgs []Type
	span     Span
}

func (e *ConstExpr) ExprKind() ExprKind { return ExprConst }
func (e *ConstExpr) Span() Span         { return e.span }

// VarExpr references a variable binding.
type VarExpr struct {
	Ident string
	span  Span
}

func (e *VarExpr) ExprKind() ExprKind { return ExprVar }
func (e *VarExpr) Span() Span         { return e.span }

type HoleExpr struct {
	span Span
}

func (e *HoleExpr) ExprKind() ExprKind { return ExprHole }
func (e *HoleExpr) Span() Span         { return e.span }

type LamExpr struct {
	Params []Pat
	Body   Expr
	span   Span
}

func (e *LamExpr) ExprKind() ExprKind { return ExprLam }
func (e *LamExpr) Span() Span         { return e.span }

type AppExpr struct {
	Func Expr
	Args []Expr
	span Span
}

func (e *AppExpr) ExprKind() ExprKind { return ExprApp }
func (e *AppExpr) Span() Span         { return e.span }

type BlockExpr struct {
	Stmts []Stmt
	Body  Expr
	span  Span
}

func (e *BlockExpr) ExprKind() ExprKind { return ExprBlock }
func (e *BlockExpr) Span() Span         { return e.span }

type IteBranch struct {
	Cond Cond
	Then Expr
}

type IteExpr struct {
	Branches []IteBranch
	Else     Expr
	span     Span
}

func (e *IteExpr) ExprKind() ExprKind { return ExprIte }
func (e *IteExpr) Span() Span         { return e.span }

type SwitchExpr struct {
	X       Expr
	Clauses []Clause
	span    Span
}

func (e *SwitchExpr) ExprKind() ExprKind { return ExprSwitch }
func (e *SwitchExpr) Span() Span         { return e.span }

type ForExpr struct {
	Pat  Pat
	Iter Expr
	Body Expr
	span Span
}

func (e *ForExpr) ExprKind() ExprKind { return ExprFor }
func (e *ForExpr) Span() Span         { return e.span }

type WhileExpr struct {
	Cond Cond
	Body Expr
	span Span
}

func (e *WhileExpr) ExprKind() ExprKind { return ExprWhile }
func (e *WhileExpr) Span() Span         { return e.span }

type LoopExpr struct {
	Body Expr
	span Span
}

func (e *LoopExpr) ExprKind() ExprKind { return ExprLoop }
func (e *LoopExpr) Span() Span         { return e.span }

type BreakExpr struct {
	span Span
}

func (e *BreakExpr) ExprKind() ExprKind { return ExprBreak }
func (e *BreakExpr) Span() Span         { return e.span }

type ContinueExpr struct {
	span Span
}

func (e *ContinueExpr) ExprKind() ExprKind { return ExprContinue }
func (e *ContinueExpr) Span() Span         { return e.span }

type ReturnExpr struct {
	X    Expr
	span Span
}

func (e *ReturnExpr) ExprKind() ExprKind { return ExprReturn }
func (e *ReturnExpr) Span() Span         { return e.span }

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
}

type OpenStmt struct {
	Attrs []Expr
	Imp   parser.Import
	span  Span
}

func (s *OpenStmt) StmtKind() StmtKind { return StmtOpen }
func (s *OpenStmt) Span() Span         { return s.span }

type LetStmt struct {
	Attrs []Expr
	Pat   Pat
	X     Expr
	Else  Expr
	span  Span
}

func (s *LetStmt) StmtKind() StmtKind { return StmtLet }
func (s *LetStmt) Span() Span         { return s.span }

type FuncStmt struct {
	Attrs  []Expr
	Ident  string
	Params []Pat
	Ret    Type
	Body   Expr
	span   Span
}

func (s *FuncStmt) StmtKind() StmtKind { return StmtFunc }
func (s *FuncStmt) Span() Span         { return s.span }

type BindStmt struct {
	Attrs []Expr
	Pat   Pat
	X     Expr
	span  Span
}

func (s *BindStmt) StmtKind() StmtKind { return StmtBind }
func (s *BindStmt) Span() Span         { return s.span }

type ExprStmt struct {
	Attrs []Expr
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
}

// TypeBound pairs an elaborated type with its bound conjunction.
type TypeBound struct {
	Type   Type
	Bounds []Type
}

type ModuleDecl struct {
	Attrs  []Expr
	Access Access
	Ident  string
	Body   []Decl
	span   Span
}

func (d *ModuleDecl) DeclKind() DeclKind { return DeclModule }
func (d *ModuleDecl) Span() Span         { return d.span }

type OpenDecl struct {
	Attrs  []Expr
	Access Access
	Imp    parser.Import
	span   Span
}

func (d *OpenDecl) DeclKind() DeclKind { return DeclOpen }
func (d *OpenDecl) Span() Span         { return d.span }

type ClassDecl struct {
	Attrs      []Expr
	Access     Access
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Body       []Decl
	span       Span
}

func (d *ClassDecl) DeclKind() DeclKind { return DeclClass }
func (d *ClassDecl) Span() Span         { return d.span }

type EnumDecl struct {
	Attrs      []Expr
	Access     Access
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Body       []Decl
	span       Span
}

func (d *EnumDecl) DeclKind() DeclKind { return DeclEnum }
func (d *EnumDecl) Span() Span         { return d.span }

type TypealiasDecl struct {
	Attrs      []Expr
	Access     Access
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Hint       []Type
	Aliased    Type
	span       Span
}

func (d *TypealiasDecl) DeclKind() DeclKind { return DeclTypealias }
func (d *TypealiasDecl) Span() Span         { return d.span }

type InterfaceDecl struct {
	Attrs      []Expr
	Access     Access
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Body       []Decl
	span       Span
}

func (d *InterfaceDecl) DeclKind() DeclKind { return DeclInterface }
func (d *InterfaceDecl) Span() Span         { return d.span }

type ExtensionDecl struct {
	Attrs      []Expr
	Access     Access
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
	Attrs  []Expr
	Access Access
	Pat    Pat
	X      Expr
	span   Span
}

func (d *LetDecl) DeclKind() DeclKind { return DeclLet }
func (d *LetDecl) Span() Span         { return d.span }

type FuncDecl struct {
	Attrs      []Expr
	Access     Access
	Ident      string
	TypeParams []string
	Bounds     []TypeBound
	Params     []Pat
	Ret        Type
	Body       Expr
	span       Span
}

func (d *FuncDecl) DeclKind() DeclKind { return DeclFunc }
func (d *FuncDecl) Span() Span         { return d.span }

type InitDecl struct {
	Attrs      []Expr
	Access     Access
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

type CtorDecl struct {
	Attrs  []Expr
	Access Access
	Ident  string
	Params []Type
	span   Span
}

func (d *CtorDecl) DeclKind() DeclKind { return DeclCtor }
func (d *CtorDecl) Span() Span         { return d.span }

// Package is the elaborated compilation unit.
type Package struct {
	Ident  string
	Header []parser.Import
	Body   []Decl
	span   Span
}

func (p *Package) Span() Span { return p.span }
