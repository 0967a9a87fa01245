package parser

import "fmt"

// Parser is a recursive-descent parser over a checkpointable Lexer. It
// fails at the first unexpected token; the only errors recovered internally
// are those raised inside a speculative region bounded by a lexer
// checkpoint.
type Parser struct {
	pkgName  string
	lexer    *Lexer
	lastSpan Span
}

func NewParser(pkgName, input string) *Parser {
	return &Parser{
		pkgName: pkgName,
		lexer:   NewLexer([]byte(input)),
	}
}

func (p *Parser) peek() (Token, error) {
	return p.lexer.Peek()
}

func (p *Parser) next() (Token, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return Token{}, err
	}
	p.lastSpan = tok.Span
	return tok, nil
}

// peekIs reports whether the next token has the given kind. A pending lex
// error reads as false; it resurfaces on the next consuming call.
func (p *Parser) peekIs(kind TokenKind) bool {
	tok, err := p.lexer.Peek()
	return err == nil && tok.Kind == kind
}

func (p *Parser) startLoc() Location {
	tok, err := p.lexer.Peek()
	if err != nil {
		return Location{}
	}
	return tok.Span.Start
}

// span closes a node span: from the first token's start to the end of the
// last consumed token.
func (p *Parser) span(start Location) Span {
	return Span{Start: start, End: p.lastSpan.End}
}

func (p *Parser) expect(kind TokenKind) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return &ParseError{Kind: ParseExpectedButGot, Expected: kind.String(), Got: tok}
	}
	_, err = p.next()
	return err
}

func (p *Parser) unexpected(context string) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	return &ParseError{Kind: ParseUnexpectedInContext, Context: context, Got: tok}
}

// parseSep parses a separator-delimited list. The attempt at each element
// runs under a lexer checkpoint so that a failed attempt leaves the token
// stream exactly where it was: an empty list and a trailing separator are
// recognized without consuming past them.
func parseSep[T any](p *Parser, fn func() (T, error), sep TokenKind, allowTrailing bool, minSize int) ([]T, error) {
	items := []T{}
	p.lexer.PushCheckpoint()
	first, err := fn()
	if err != nil {
		if minSize > 0 {
			p.lexer.PopCheckpoint()
			return nil, err
		}
		if rerr := p.lexer.RestoreCheckpoint(); rerr != nil {
			return nil, rerr
		}
		return items, nil
	}
	p.lexer.PopCheckpoint()
	items = append(items, first)
	for p.peekIs(sep) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		p.lexer.PushCheckpoint()
		item, err := fn()
		if err != nil {
			if !allowTrailing {
				p.lexer.PopCheckpoint()
				return nil, err
			}
			if rerr := p.lexer.RestoreCheckpoint(); rerr != nil {
				return nil, rerr
			}
			break
		}
		p.lexer.PopCheckpoint()
		items = append(items, item)
	}
	if len(items) < minSize {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		return nil, &ParseError{
			Kind:     ParseExpectedButGot,
			Expected: fmt.Sprintf("at least %d list items", minSize),
			Got:      tok,
		}
	}
	return items, nil
}

func (p *Parser) parseIdent() (string, error) {
	tok, err := p.peek()
	if err != nil {
		return "", err
	}
	if tok.Kind != TokenIdent {
		return "", &ParseError{Kind: ParseExpectedButGot, Expected: "identifier", Got: tok}
	}
	lexeme := p.lexer.Lexeme()
	if _, err := p.next(); err != nil {
		return "", err
	}
	return lexeme, nil
}

func (p *Parser) parsePath() ([]Seg, error) {
	var path []Seg
	for p.peekIs(TokenDot) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenIdent:
			ident, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			path = append(path, Seg{Ident: ident})
		case TokenIntLiteral:
			value := p.lexer.IntValue()
			if _, err := p.next(); err != nil {
				return nil, err
			}
			path = append(path, Seg{Index: value, IsIndex: true})
		default:
			return nil, &ParseError{Kind: ParseExpectedButGot, Expected: "identifier or integer in path", Got: tok}
		}
	}
	return path, nil
}

func (p *Parser) parseName() (Name, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return Name{}, err
	}
	path, err := p.parsePath()
	if err != nil {
		return Name{}, err
	}
	return Name{Ident: ident, Path: path}, nil
}

func (p *Parser) parseImport() (Import, error) {
	start := p.startLoc()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenIdent:
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if p.peekIs(TokenDot) {
			// nested import
			if _, err := p.next(); err != nil {
				return nil, err
			}
			if p.peekIs(TokenLBrace) {
				// multiple nested imports
				if _, err := p.next(); err != nil {
					return nil, err
				}
				nested, err := parseSep(p, p.parseImport, TokenComma, true, 1)
				if err != nil {
					return nil, err
				}
				if err := p.expect(TokenRBrace); err != nil {
					return nil, err
				}
				return &NodeImport{Name: name, Nested: nested, span: p.span(start)}, nil
			}
			// single nested import
			nested, err := p.parseImport()
			if err != nil {
				return nil, err
			}
			return &NodeImport{Name: name, Nested: []Import{nested}, span: p.span(start)}, nil
		}
		if p.peekIs(TokenAs) {
			// alias import
			if _, err := p.next(); err != nil {
				return nil, err
			}
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			switch tok.Kind {
			case TokenWild:
				if _, err := p.next(); err != nil {
					return nil, err
				}
				return &AliasImport{Name: name, span: p.span(start)}, nil
			case TokenIdent:
				alias, err := p.parseIdent()
				if err != nil {
					return nil, err
				}
				return &AliasImport{Name: name, Alias: alias, span: p.span(start)}, nil
			default:
				return nil, &ParseError{Kind: ParseExpectedButGot, Expected: "identifier or '_' after 'as' in import", Got: tok}
			}
		}
		return &NodeImport{Name: name, span: p.span(start)}, nil
	case TokenStar:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &WildImport{span: p.span(start)}, nil
	default:
		return nil, p.unexpected("import")
	}
}

// parseTypeArgs speculatively parses `<T, U>`. The `<` is committed only if
// a matching `>` follows the type list; otherwise the lexer is restored and
// nil is returned so the caller treats `<` as an operator.
func (p *Parser) parseTypeArgs() ([]Type, error) {
	if !p.peekIs(TokenLT) {
		return nil, nil
	}
	p.lexer.PushCheckpoint()
	if _, err := p.next(); err != nil {
		p.lexer.PopCheckpoint()
		return nil, err
	}
	args, err := parseSep(p, p.parseType, TokenComma, false, 0)
	if err != nil || !p.peekIs(TokenGT) {
		if rerr := p.lexer.RestoreCheckpoint(); rerr != nil {
			return nil, rerr
		}
		return nil, nil
	}
	p.lexer.PopCheckpoint()
	if _, err := p.next(); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseTupleType() (Type, error) {
	start := p.startLoc()
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	types, err := parseSep(p, p.parseType, TokenComma, false, 0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	switch len(types) {
	case 0:
		return &UnitType{span: p.span(start)}, nil
	case 1:
		return types[0], nil
	default:
		return &TupleType{Elems: types, span: p.span(start)}, nil
	}
}

func (p *Parser) parseTypeBasic() (Type, error) {
	start := p.startLoc()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenInt:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &IntType{span: p.span(start)}, nil
	case TokenBool:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &BoolType{span: p.span(start)}, nil
	case TokenChar:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &CharType{span: p.span(start)}, nil
	case TokenString:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &StringType{span: p.span(start)}, nil
	case TokenIdent:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		typeArgs, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		return &NameType{Name: name, TypeArgs: typeArgs, span: p.span(start)}, nil
	case TokenLParen:
		return p.parseTupleType()
	default:
		return nil, p.unexpected("type")
	}
}

// ParseType parses a single type and does not require trailing EOF.
func (p *Parser) ParseType() (Type, error) {
	return p.parseType()
}

func (p *Parser) parseType() (Type, error) {
	start := p.startLoc()
	var inputs []Type
	rhs, err := p.parseTypeBasic()
	if err != nil {
		return nil, err
	}
	for p.peekIs(TokenArrow) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		inputs = append(inputs, rhs)
		rhs, err = p.parseTypeBasic()
		if err != nil {
			return nil, err
		}
	}
	for i := len(inputs) - 1; i >= 0; i-- {
		if tt, ok := inputs[i].(*TupleType); ok {
			rhs = &ArrowType{Inputs: tt.Elems, Output: rhs, span: p.span(start)}
		} else {
			rhs = &ArrowType{Inputs: []Type{inputs[i]}, Output: rhs, span: p.span(start)}
		}
	}
	return rhs, nil
}

func (p *Parser) parseHint() (Type, error) {
	if p.peekIs(TokenColon) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return p.parseType()
	}
	return &MetaType{}, nil
}

func (p *Parser) parsePatBasic(useHint bool) (Pat, error) {
	start := p.startLoc()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenIntLiteral:
		value := p.lexer.IntValue()
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitPat{Lit: &IntLit{Value: value, span: span}, span: span}, nil
	case TokenTrue:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitPat{Lit: &BoolLit{Value: true, span: span}, span: span}, nil
	case TokenFalse:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitPat{Lit: &BoolLit{Value: false, span: span}, span: span}, nil
	case TokenCharLiteral:
		value := p.lexer.CharValue()
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitPat{Lit: &CharLit{Value: value, span: span}, span: span}, nil
	case TokenStringLiteral:
		value := p.lexer.Lexeme()
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitPat{Lit: &StringLit{Value: value, span: span}, span: span}, nil
	case TokenWild:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &WildPat{span: p.span(start)}, nil
	case TokenMut, TokenIdent:
		isMut := false
		if tok.Kind == TokenMut {
			isMut = true
			if _, err := p.next(); err != nil {
				return nil, err
			}
		}
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		typeArgs, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}

		if p.peekIs(TokenLParen) {
			// constructor pattern
			if _, err := p.next(); err != nil {
				return nil, err
			}
			args, err := parseSep(p, func() (Pat, error) { return p.parsePat(true) }, TokenComma, false, 0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenRParen); err != nil {
				return nil, err
			}
			return &CtorPat{Name: name, TypeArgs: typeArgs, Args: args, span: p.span(start)}, nil
		}

		var hint Type = &MetaType{}
		if useHint {
			hint, err = p.parseHint()
			if err != nil {
				return nil, err
			}
		}

		if p.peekIs(TokenAt) {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			if typeArgs != nil {
				return nil, p.unexpected("'@' pattern with type arguments")
			}
			pat, err := p.parsePatBasic(true)
			if err != nil {
				return nil, err
			}
			return &AtPat{Name: name, Hint: hint, IsMut: isMut, Pat: pat, span: p.span(start)}, nil
		}

		return &NamePat{Name: name, TypeArgs: typeArgs, Hint: hint, IsMut: isMut, span: p.span(start)}, nil
	case TokenLParen:
		return p.parseTuplePat()
	default:
		return nil, p.unexpected("pattern")
	}
}

func (p *Parser) parseTuplePat() (Pat, error) {
	start := p.startLoc()
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	elems, err := parseSep(p, func() (Pat, error) { return p.parsePat(true) }, TokenComma, false, 0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	switch len(elems) {
	case 0:
		span := p.span(start)
		return &LitPat{Lit: &UnitLit{span: span}, span: span}, nil
	case 1:
		return elems[0], nil
	default:
		return &TuplePat{Elems: elems, span: p.span(start)}, nil
	}
}

func (p *Parser) parsePat(useHint bool) (Pat, error) {
	start := p.startLoc()
	pats, err := parseSep(p, func() (Pat, error) { return p.parsePatBasic(useHint) }, TokenPipe, false, 1)
	if err != nil {
		return nil, err
	}
	if len(pats) == 1 {
		return pats[0], nil
	}
	return &OrPat{Options: pats, span: p.span(start)}, nil
}

func (p *Parser) parseCond() (Cond, error) {
	start := p.startLoc()
	if p.peekIs(TokenLet) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		pat, err := p.parsePat(true)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenAssign); err != nil {
			return nil, err
		}
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		return &PatCond{Pat: pat, X: expr, span: p.span(start)}, nil
	}
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	return &ExprCond{X: expr, span: p.span(start)}, nil
}

func (p *Parser) parseClause() (Clause, error) {
	start := p.startLoc()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenCase:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		pat, err := p.parsePat(false)
		if err != nil {
			return nil, err
		}
		var guard Expr
		if p.peekIs(TokenIf) {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			guard, err = p.ParseExpr()
			if err != nil {
				return nil, err
			}
		}
		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		body, err := p.parseClauseBody()
		if err != nil {
			return nil, err
		}
		return &CaseClause{Pat: pat, Guard: guard, Body: body, span: p.span(start)}, nil
	case TokenDefault:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		body, err := p.parseClauseBody()
		if err != nil {
			return nil, err
		}
		return &DefaultClause{Body: body, span: p.span(start)}, nil
	default:
		return nil, p.unexpected("clause")
	}
}

// parseClauseBody collects the statement run of a switch clause, bounded by
// the next `case`, `default`, or closing brace.
func (p *Parser) parseClauseBody() (Expr, error) {
	start := p.startLoc()
	var stmts []Stmt
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenCase || tok.Kind == TokenDefault || tok.Kind == TokenRBrace {
			break
		}
		stmt, err := p.ParseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return newBlockExpr(stmts, p.span(start)), nil
}

func (p *Parser) parseAttrs() ([]Expr, error) {
	var attrs []Expr
	for p.peekIs(TokenAt) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		attr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}
