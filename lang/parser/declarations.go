package parser

func (p *Parser) parseAccess() (Access, error) {
	tok, err := p.peek()
	if err != nil {
		return Public, err
	}
	switch tok.Kind {
	case TokenPrivate:
		if _, err := p.next(); err != nil {
			return Public, err
		}
		return Private, nil
	case TokenProtected:
		if _, err := p.next(); err != nil {
			return Public, err
		}
		return Protected, nil
	default:
		return Public, nil
	}
}

// parseTypeBound parses a `B + C + ...` bound disjunction (conjunction at
// the semantic level).
func (p *Parser) parseTypeBound() ([]Type, error) {
	return parseSep(p, p.parseType, TokenPlus, false, 1)
}

func (p *Parser) parseTypeParam(bounds *[]TypeBound) (string, error) {
	start := p.startLoc()
	ident, err := p.parseIdent()
	if err != nil {
		return "", err
	}
	if p.peekIs(TokenColon) {
		if _, err := p.next(); err != nil {
			return "", err
		}
		bound, err := p.parseTypeBound()
		if err != nil {
			return "", err
		}
		nameType := &NameType{Name: Name{Ident: ident}, span: p.span(start)}
		*bounds = append(*bounds, TypeBound{Type: nameType, Bounds: bound})
	}
	return ident, nil
}

func (p *Parser) parseTypeParams(bounds *[]TypeBound) ([]string, error) {
	if !p.peekIs(TokenLT) {
		return nil, nil
	}
	if _, err := p.next(); err != nil {
		return nil, err
	}
	params, err := parseSep(p, func() (string, error) { return p.parseTypeParam(bounds) }, TokenComma, false, 0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenGT); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseWhereBounds() ([]TypeBound, error) {
	return parseSep(p, func() (TypeBound, error) {
		typ, err := p.parseType()
		if err != nil {
			return TypeBound{}, err
		}
		if err := p.expect(TokenColon); err != nil {
			return TypeBound{}, err
		}
		bound, err := p.parseTypeBound()
		if err != nil {
			return TypeBound{}, err
		}
		return TypeBound{Type: typ, Bounds: bound}, nil
	}, TokenComma, true, 0)
}

// parseOptWhere merges a trailing `where` clause into the bound list
// collected from the type-parameter list.
func (p *Parser) parseOptWhere(bounds *[]TypeBound) error {
	if !p.peekIs(TokenWhere) {
		return nil
	}
	if _, err := p.next(); err != nil {
		return err
	}
	whereBounds, err := p.parseWhereBounds()
	if err != nil {
		return err
	}
	*bounds = append(*bounds, whereBounds...)
	return nil
}

// parseDeclBody parses `{ DECL* }`, or consumes the `;` that closes a
// bodyless declaration.
func (p *Parser) parseDeclBody() ([]Decl, error) {
	if p.peekIs(TokenLBrace) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		var body []Decl
		for !p.peekIs(TokenRBrace) {
			decl, err := p.ParseDecl()
			if err != nil {
				return nil, err
			}
			body = append(body, decl)
		}
		if err := p.expect(TokenRBrace); err != nil {
			return nil, err
		}
		return body, nil
	}
	return nil, p.expect(TokenSemicolon)
}

func (p *Parser) parseModuleDecl() (*ModuleDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenModule); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	var body []Decl
	for !p.peekIs(TokenRBrace) {
		decl, err := p.ParseDecl()
		if err != nil {
			return nil, err
		}
		body = append(body, decl)
	}
	if err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return &ModuleDecl{Ident: ident, Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseOpenDecl() (*OpenDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenOpen); err != nil {
		return nil, err
	}
	imp, err := p.parseImport()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &OpenDecl{Imp: imp, span: p.span(start)}, nil
}

func (p *Parser) parseClassDecl() (*ClassDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenClass); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var bounds []TypeBound
	typeParams, err := p.parseTypeParams(&bounds)
	if err != nil {
		return nil, err
	}
	if err := p.parseOptWhere(&bounds); err != nil {
		return nil, err
	}
	body, err := p.parseDeclBody()
	if err != nil {
		return nil, err
	}
	return &ClassDecl{Ident: ident, TypeParams: typeParams, Bounds: bounds, Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseEnumDecl() (*EnumDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenEnum); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var bounds []TypeBound
	typeParams, err := p.parseTypeParams(&bounds)
	if err != nil {
		return nil, err
	}
	if err := p.parseOptWhere(&bounds); err != nil {
		return nil, err
	}
	body, err := p.parseDeclBody()
	if err != nil {
		return nil, err
	}
	return &EnumDecl{Ident: ident, TypeParams: typeParams, Bounds: bounds, Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseTypealiasDecl() (*TypealiasDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenType); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var bounds []TypeBound
	typeParams, err := p.parseTypeParams(&bounds)
	if err != nil {
		return nil, err
	}
	var hint []Type
	if p.peekIs(TokenColon) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		hint, err = p.parseTypeBound()
		if err != nil {
			return nil, err
		}
	}
	if err := p.parseOptWhere(&bounds); err != nil {
		return nil, err
	}
	var aliased Type
	if p.peekIs(TokenAssign) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		aliased, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &TypealiasDecl{
		Ident:      ident,
		TypeParams: typeParams,
		Bounds:     bounds,
		Hint:       hint,
		Aliased:    aliased,
		span:       p.span(start),
	}, nil
}

func (p *Parser) parseInterfaceDecl() (*InterfaceDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenInterface); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var bounds []TypeBound
	typeParams, err := p.parseTypeParams(&bounds)
	if err != nil {
		return nil, err
	}
	if err := p.parseOptWhere(&bounds); err != nil {
		return nil, err
	}
	body, err := p.parseDeclBody()
	if err != nil {
		return nil, err
	}
	return &InterfaceDecl{Ident: ident, TypeParams: typeParams, Bounds: bounds, Body: body, span: p.span(start)}, nil
}

func (p *Parser) parseExtensionDecl() (*ExtensionDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenExtension); err != nil {
		return nil, err
	}
	var bounds []TypeBound
	typeParams, err := p.parseTypeParams(&bounds)
	if err != nil {
		return nil, err
	}
	base, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	iface, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if err := p.parseOptWhere(&bounds); err != nil {
		return nil, err
	}
	body, err := p.parseDeclBody()
	if err != nil {
		return nil, err
	}
	return &ExtensionDecl{
		TypeParams: typeParams,
		Bounds:     bounds,
		Base:       base,
		Iface:      iface,
		Body:       body,
		span:       p.span(start),
	}, nil
}

func (p *Parser) parseLetDecl() (*LetDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenLet); err != nil {
		return nil, err
	}
	pat, err := p.parsePatBasic(true)
	if err != nil {
		return nil, err
	}
	var expr Expr
	if p.peekIs(TokenAssign) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		expr, err = p.ParseExpr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &LetDecl{Pat: pat, X: expr, span: p.span(start)}, nil
}

// parseFuncTail parses the shared tail of func and init declarations:
// parameter list, optional return type, optional where clause, and a block
// body or closing semicolon.
func (p *Parser) parseFuncTail(bounds *[]TypeBound) ([]Pat, Type, Expr, error) {
	if err := p.expect(TokenLParen); err != nil {
		return nil, nil, nil, err
	}
	params, err := parseSep(p, func() (Pat, error) { return p.parsePat(true) }, TokenComma, false, 0)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, nil, nil, err
	}

	var ret Type = &MetaType{}
	if p.peekIs(TokenArrow) {
		if _, err := p.next(); err != nil {
			return nil, nil, nil, err
		}
		ret, err = p.parseType()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	if err := p.parseOptWhere(bounds); err != nil {
		return nil, nil, nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, nil, nil, err
	}
	var body Expr
	switch tok.Kind {
	case TokenLBrace:
		body, err = p.parseBlockExpr()
		if err != nil {
			return nil, nil, nil, err
		}
	case TokenSemicolon:
		if _, err := p.next(); err != nil {
			return nil, nil, nil, err
		}
	default:
		return nil, nil, nil, &ParseError{Kind: ParseExpectedButGot, Expected: "function body or ';'", Got: tok}
	}
	return params, ret, body, nil
}

func (p *Parser) parseFuncDecl() (*FuncDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenFunc); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var bounds []TypeBound
	typeParams, err := p.parseTypeParams(&bounds)
	if err != nil {
		return nil, err
	}
	params, ret, body, err := p.parseFuncTail(&bounds)
	if err != nil {
		return nil, err
	}
	return &FuncDecl{
		Ident:      ident,
		TypeParams: typeParams,
		Bounds:     bounds,
		Params:     params,
		Ret:        ret,
		Body:       body,
		span:       p.span(start),
	}, nil
}

func (p *Parser) parseInitDecl() (*InitDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenInit); err != nil {
		return nil, err
	}
	var ident string
	if p.peekIs(TokenIdent) {
		var err error
		ident, err = p.parseIdent()
		if err != nil {
			return nil, err
		}
	}
	var bounds []TypeBound
	typeParams, err := p.parseTypeParams(&bounds)
	if err != nil {
		return nil, err
	}
	params, ret, body, err := p.parseFuncTail(&bounds)
	if err != nil {
		return nil, err
	}
	return &InitDecl{
		Ident:      ident,
		TypeParams: typeParams,
		Bounds:     bounds,
		Params:     params,
		Ret:        ret,
		Body:       body,
		span:       p.span(start),
	}, nil
}

func (p *Parser) parseCtorDecl() (*CtorDecl, error) {
	start := p.startLoc()
	if err := p.expect(TokenCase); err != nil {
		return nil, err
	}
	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	var params []Type
	if p.peekIs(TokenLParen) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		params, err = parseSep(p, p.parseType, TokenComma, false, 0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	}
	return &CtorDecl{Ident: ident, Params: params, span: p.span(start)}, nil
}

// ParseDecl parses one declaration and does not require trailing EOF.
func (p *Parser) ParseDecl() (Decl, error) {
	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	access, err := p.parseAccess()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	var decl Decl
	switch tok.Kind {
	case TokenModule:
		decl, err = p.parseModuleDecl()
	case TokenOpen:
		decl, err = p.parseOpenDecl()
	case TokenClass:
		decl, err = p.parseClassDecl()
	case TokenEnum:
		decl, err = p.parseEnumDecl()
	case TokenType:
		decl, err = p.parseTypealiasDecl()
	case TokenInterface:
		decl, err = p.parseInterfaceDecl()
	case TokenExtension:
		decl, err = p.parseExtensionDecl()
	case TokenLet:
		decl, err = p.parseLetDecl()
	case TokenFunc:
		decl, err = p.parseFuncDecl()
	case TokenInit:
		decl, err = p.parseInitDecl()
	case TokenCase:
		decl, err = p.parseCtorDecl()
	default:
		return nil, p.unexpected("declaration")
	}
	if err != nil {
		return nil, err
	}
	decl.setAttrs(attrs)
	decl.setAccess(access)
	return decl, nil
}

// ParsePackage parses the whole compilation unit and verifies EOF.
func (p *Parser) ParsePackage() (*Package, error) {
	start := p.startLoc()
	var header []Import
	for p.peekIs(TokenImport) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		header = append(header, imp)
	}
	var body []Decl
	for !p.peekIs(TokenEOF) {
		decl, err := p.ParseDecl()
		if err != nil {
			return nil, err
		}
		body = append(body, decl)
	}
	if err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return &Package{Ident: p.pkgName, Header: header, Body: body, span: p.span(start)}, nil
}
