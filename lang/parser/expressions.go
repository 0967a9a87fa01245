package parser

// ParseExpr parses one expression and does not require trailing EOF.
func (p *Parser) ParseExpr() (Expr, error) {
	start := p.startLoc()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenIf:
		return p.parseIteExpr()
	case TokenSwitch:
		return p.parseSwitchExpr()
	case TokenFor:
		return p.parseForExpr()
	case TokenWhile:
		return p.parseWhileExpr()
	case TokenLoop:
		return p.parseLoopExpr()
	case TokenLBrace:
		return p.parseBlockExpr()
	case TokenBreak:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &BreakExpr{span: p.span(start)}, nil
	case TokenContinue:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &ContinueExpr{span: p.span(start)}, nil
	case TokenReturn:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		// The return value is optional; a failed attempt rolls back.
		var value Expr
		p.lexer.PushCheckpoint()
		expr, err := p.ParseExpr()
		if err != nil {
			if rerr := p.lexer.RestoreCheckpoint(); rerr != nil {
				return nil, rerr
			}
		} else {
			p.lexer.PopCheckpoint()
			value = expr
		}
		return &ReturnExpr{X: value, span: p.span(start)}, nil
	default:
		// `(` opens both tuples and lambda parameter lists, and a bare
		// pattern can begin a lambda. Try the lambda form first; on
		// failure restore and take the precedence ladder.
		p.lexer.PushCheckpoint()
		lam, err := p.parseLamExpr()
		if err == nil {
			p.lexer.PopCheckpoint()
			return lam, nil
		}
		if rerr := p.lexer.RestoreCheckpoint(); rerr != nil {
			return nil, rerr
		}
		return p.parseAssignExpr()
	}
}

func (p *Parser) parseLamExpr() (Expr, error) {
	start := p.startLoc()
	pat, err := p.parsePatBasic(true)
	if err != nil {
		return nil, err
	}
	var params []Pat
	if tp, ok := pat.(*TuplePat); ok {
		params = tp.Elems
	} else {
		params = []Pat{pat}
	}
	if err := p.expect(TokenFatArrow); err != nil {
		return nil, err
	}
	body, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	return &LamExpr{Params: params, Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseIteExpr() (Expr, error) {
	start := p.startLoc()
	if err := p.expect(TokenIf); err != nil {
		return nil, err
	}
	var branches []IteBranch
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}
	branches = append(branches, IteBranch{Cond: cond, Then: then})

	var elseBranch Expr
	for p.peekIs(TokenElse) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		if p.peekIs(TokenIf) {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			cond, err := p.parseCond()
			if err != nil {
				return nil, err
			}
			then, err := p.parseBlockExpr()
			if err != nil {
				return nil, err
			}
			branches = append(branches, IteBranch{Cond: cond, Then: then})
			continue
		}
		elseBranch, err = p.parseBlockExpr()
		if err != nil {
			return nil, err
		}
	}

	return &IteExpr{Branches: branches, Else: elseBranch, span: p.span(start)}, nil
}

func (p *Parser) parseSwitchExpr() (Expr, error) {
	start := p.startLoc()
	if err := p.expect(TokenSwitch); err != nil {
		return nil, err
	}
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	var clauses []Clause
	for !p.peekIs(TokenRBrace) {
		clause, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	if err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return &SwitchExpr{X: expr, Clauses: clauses, span: p.span(start)}, nil
}

func (p *Parser) parseForExpr() (Expr, error) {
	start := p.startLoc()
	if err := p.expect(TokenFor); err != nil {
		return nil, err
	}
	pat, err := p.parsePatBasic(true)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenIn); err != nil {
		return nil, err
	}
	iter, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}
	return &ForExpr{Pat: pat, Iter: iter, Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseWhileExpr() (Expr, error) {
	start := p.startLoc()
	if err := p.expect(TokenWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseCond()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}
	return &WhileExpr{Cond: cond, Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseLoopExpr() (Expr, error) {
	start := p.startLoc()
	if err := p.expect(TokenLoop); err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpr()
	if err != nil {
		return nil, err
	}
	return &LoopExpr{Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseBlockExpr() (Expr, error) {
	start := p.startLoc()
	if err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.peekIs(TokenRBrace) {
		stmt, err := p.ParseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return newBlockExpr(stmts, p.span(start)), nil
}

// parseTupleExpr handles the parenthesized form: unit, a single grouped
// expression (optionally with a `: Type` hint), or a tuple.
func (p *Parser) parseTupleExpr() (Expr, error) {
	start := p.startLoc()
	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	elem := func() (Expr, error) {
		elemStart := p.startLoc()
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if p.peekIs(TokenColon) {
			hint, err := p.parseHint()
			if err != nil {
				return nil, err
			}
			return &HintExpr{X: expr, Type: hint, span: p.span(elemStart)}, nil
		}
		return expr, nil
	}
	elems, err := parseSep(p, elem, TokenComma, false, 0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	switch len(elems) {
	case 0:
		span := p.span(start)
		return &LitExpr{Lit: &UnitLit{span: span}, span: span}, nil
	case 1:
		return elems[0], nil
	default:
		return &TupleExpr{Elems: elems, span: p.span(start)}, nil
	}
}

func (p *Parser) parsePrimaryExpr() (Expr, error) {
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
		return &LitExpr{Lit: &IntLit{Value: value, span: span}, span: span}, nil
	case TokenTrue:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitExpr{Lit: &BoolLit{Value: true, span: span}, span: span}, nil
	case TokenFalse:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitExpr{Lit: &BoolLit{Value: false, span: span}, span: span}, nil
	case TokenCharLiteral:
		value := p.lexer.CharValue()
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitExpr{Lit: &CharLit{Value: value, span: span}, span: span}, nil
	case TokenStringLiteral:
		value := p.lexer.Lexeme()
		if _, err := p.next(); err != nil {
			return nil, err
		}
		span := p.span(start)
		return &LitExpr{Lit: &StringLit{Value: value, span: span}, span: span}, nil
	case TokenIdent:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		typeArgs, err := p.parseTypeArgs()
		if err != nil {
			return nil, err
		}
		return &NameExpr{Name: name, TypeArgs: typeArgs, span: p.span(start)}, nil
	case TokenWild:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return &HoleExpr{span: p.span(start)}, nil
	case TokenLParen:
		return p.parseTupleExpr()
	default:
		return nil, p.unexpected("expression")
	}
}

func (p *Parser) parsePostfixExpr() (Expr, error) {
	start := p.startLoc()
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenQuestion:
			if _, err := p.next(); err != nil {
				return nil, err
			}
			expr = &UnaryExpr{Op: UnaryTry, X: expr, span: p.span(start)}
		case TokenDot:
			path, err := p.parsePath()
			if err != nil {
				return nil, err
			}
			typeArgs, err := p.parseTypeArgs()
			if err != nil {
				return nil, err
			}
			expr = &DotExpr{X: expr, Path: path, TypeArgs: typeArgs, span: p.span(start)}
		case TokenLBrack:
			if _, err := p.next(); err != nil {
				return nil, err
			}
			indices, err := parseSep(p, p.ParseExpr, TokenComma, false, 0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenRBrack); err != nil {
				return nil, err
			}
			expr = &IndexExpr{X: expr, Indices: indices, span: p.span(start)}
		case TokenLParen:
			if _, err := p.next(); err != nil {
				return nil, err
			}
			args, err := parseSep(p, p.ParseExpr, TokenComma, false, 0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenRParen); err != nil {
				return nil, err
			}
			expr = &AppExpr{Func: expr, Args: args, span: p.span(start)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseUnaryExpr() (Expr, error) {
	start := p.startLoc()
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var op UnaryOp
	switch tok.Kind {
	case TokenPlus:
		op = UnaryPos
	case TokenMinus:
		op = UnaryNeg
	case TokenAmp:
		op = UnaryAddr
	case TokenStar:
		op = UnaryDeref
	default:
		return p.parsePostfixExpr()
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	expr, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Op: op, X: expr, span: p.span(start)}, nil
}

func (p *Parser) parseMulExpr() (Expr, error) {
	start := p.startLoc()
	expr, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var op BinaryOp
		switch tok.Kind {
		case TokenStar:
			op = BinaryMul
		case TokenSlash:
			op = BinaryDiv
		case TokenPercent:
			op = BinaryMod
		default:
			return expr, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, L: expr, R: right, span: p.span(start)}
	}
}

func (p *Parser) parseAddExpr() (Expr, error) {
	start := p.startLoc()
	expr, err := p.parseMulExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var op BinaryOp
		switch tok.Kind {
		case TokenPlus:
			op = BinaryAdd
		case TokenMinus:
			op = BinarySub
		default:
			return expr, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseMulExpr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, L: expr, R: right, span: p.span(start)}
	}
}

func (p *Parser) parseRelExpr() (Expr, error) {
	start := p.startLoc()
	expr, err := p.parseAddExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var op BinaryOp
		switch tok.Kind {
		case TokenLT:
			op = BinaryLt
		case TokenGT:
			op = BinaryGt
		case TokenLE:
			op = BinaryLte
		case TokenGE:
			op = BinaryGte
		default:
			return expr, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseAddExpr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, L: expr, R: right, span: p.span(start)}
	}
}

func (p *Parser) parseEqExpr() (Expr, error) {
	start := p.startLoc()
	expr, err := p.parseRelExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var op BinaryOp
		switch tok.Kind {
		case TokenEQ:
			op = BinaryEq
		case TokenNE:
			op = BinaryNeq
		default:
			return expr, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseRelExpr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, L: expr, R: right, span: p.span(start)}
	}
}

func (p *Parser) parseAndExpr() (Expr, error) {
	start := p.startLoc()
	expr, err := p.parseEqExpr()
	if err != nil {
		return nil, err
	}
	for p.peekIs(TokenAnd) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseEqExpr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: BinaryAnd, L: expr, R: right, span: p.span(start)}
	}
	return expr, nil
}

func (p *Parser) parseOrExpr() (Expr, error) {
	start := p.startLoc()
	expr, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	for p.peekIs(TokenOr) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: BinaryOr, L: expr, R: right, span: p.span(start)}
	}
	return expr, nil
}

// parseAssignExpr folds the right-associative assignment ladder.
func (p *Parser) parseAssignExpr() (Expr, error) {
	start := p.startLoc()
	rhs, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	type pending struct {
		mode BinaryOp
		lhs  Expr
	}
	var exprs []pending
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var mode BinaryOp
		switch tok.Kind {
		case TokenAssign:
			mode = BinaryAssign
		case TokenPlusAssign:
			mode = BinaryAdd
		case TokenMinusAssign:
			mode = BinarySub
		case TokenStarAssign:
			mode = BinaryMul
		case TokenSlashAssign:
			mode = BinaryDiv
		case TokenPercentAssign:
			mode = BinaryMod
		default:
			for i := len(exprs) - 1; i >= 0; i-- {
				rhs = &AssignExpr{Mode: exprs[i].mode, L: exprs[i].lhs, R: rhs, span: p.span(start)}
			}
			return rhs, nil
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		exprs = append(exprs, pending{mode: mode, lhs: rhs})
		rhs, err = p.parseOrExpr()
		if err != nil {
			return nil, err
		}
	}
}
