package parser

type PatKind int

const (
	PatLit PatKind = iota
	PatTuple
	PatCtor
	PatName
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

// CtorPat matches a constructor application. Args nil means the pattern was
// written without a parameter list (as produced by the table builder's
// name-pattern rewrite); a non-nil empty slice is an explicit `()`.
type CtorPat struct {
	Name     Name
	TypeArgs []Type
	Args     []Pat
	span     Span
}

func (p *CtorPat) PatKind() PatKind { return PatCtor }
func (p *CtorPat) Span() Span       { return p.span }

// NewCtorPat builds a constructor pattern. The table builder uses it when
// rewriting name patterns that resolve to constructors.
func NewCtorPat(name Name, typeArgs []Type, args []Pat, span Span) *CtorPat {
	return &CtorPat{Name: name, TypeArgs: typeArgs, Args: args, span: span}
}

// NamePat is the syntactically ambiguous form: a binding, or a
// constructor-without-arguments. The table builder disambiguates.
type NamePat struct {
	Name     Name
	TypeArgs []Type
	Hint     Type
	IsMut    bool
	span     Span
}

func (p *NamePat) PatKind() PatKind { return PatName }
func (p *NamePat) Span() Span       { return p.span }

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
	Name  Name
	Hint  Type
	IsMut bool
	Pat   Pat
	span  Span
}

func (p *AtPat) PatKind() PatKind { return PatAt }
func (p *AtPat) Span() Span       { return p.span }

// Conditions (if/while): a plain boolean expression or a `let` pattern
// condition.

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

// Switch clauses

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
	Guard Expr // nil when no `if` guard
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
