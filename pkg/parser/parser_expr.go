package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Expression parsing by precedence climbing.
//
// Precedence levels (from spi package):
//
//	PrecedenceOr         = 1
//	PrecedenceAnd        = 2
//	PrecedenceNot        = 3  (prefix NOT)
//	PrecedenceComparison = 4  (=, <>, <, >, <=, >=, IS, [NOT] IN, [NOT] BETWEEN, [NOT] LIKE)
//	PrecedenceAddition   = 5  (+, -, ||)
//	PrecedenceMultiply   = 6  (*, /, %)
//	PrecedenceUnary      = 7  (prefix - and +)
//	PrecedencePostfix    = 8  (expr::type)
//
// Binary operators are left associative: the right operand is parsed one
// level above the operator's own precedence.

// ParseExpr parses a single expression. On error the cursor is left where
// it was.
func (p *Parser) ParseExpr() (core.Expr, error) {
	saved := p.pos
	expr, err := p.parseExpressionWithPrecedence(spi.PrecedenceNone + 1)
	if err != nil {
		p.pos = saved
		return nil, err
	}
	return expr, nil
}

// parseExpressionWithPrecedence parses operators binding at least as
// tightly as minPrecedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) (core.Expr, error) {
	left, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}

	for {
		prec := p.getInfixPrecedence()
		if prec < minPrecedence || prec == spi.PrecedenceNone {
			return left, nil
		}
		left, err = p.parseInfixExpr(left, prec)
		if err != nil {
			return nil, err
		}
	}
}

// parsePrefixExpr parses prefix operators and primary expressions.
func (p *Parser) parsePrefixExpr() (core.Expr, error) {
	tok := p.peekToken()
	switch {
	case tok.IsWord(keyword.NOT):
		p.nextToken()
		expr, err := p.parseExpressionWithPrecedence(spi.PrecedenceNot)
		if err != nil {
			return nil, err
		}
		return &core.UnaryExpr{Op: token.KEYWORD, Expr: expr, OpPos: tok.Pos}, nil

	case tok.Type == token.MINUS || tok.Type == token.PLUS:
		p.nextToken()
		expr, err := p.parseExpressionWithPrecedence(spi.PrecedenceUnary)
		if err != nil {
			return nil, err
		}
		return &core.UnaryExpr{Op: tok.Type, Expr: expr, OpPos: tok.Pos}, nil

	default:
		return p.parsePrimary()
	}
}

// getInfixPrecedence returns the precedence of the next token as an infix
// operator, or PrecedenceNone.
func (p *Parser) getInfixPrecedence() int {
	tok := p.peekToken()
	switch tok.Type {
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return spi.PrecedenceComparison
	case token.PLUS, token.MINUS, token.DPIPE:
		return spi.PrecedenceAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return spi.PrecedenceMultiply
	case token.DCOLON:
		return spi.PrecedencePostfix
	case token.KEYWORD, token.IDENT:
		switch {
		case tok.IsWord(keyword.OR):
			return spi.PrecedenceOr
		case tok.IsWord(keyword.AND):
			return spi.PrecedenceAnd
		case tok.IsWord(keyword.IS), tok.IsWord(keyword.LIKE), tok.IsWord(keyword.IN), tok.IsWord(keyword.BETWEEN):
			return spi.PrecedenceComparison
		case tok.IsWord(keyword.NOT):
			// NOT as infix only for NOT IN, NOT LIKE, NOT BETWEEN.
			next := p.peekNthToken(1)
			if next.IsWord(keyword.LIKE) || next.IsWord(keyword.IN) || next.IsWord(keyword.BETWEEN) {
				return spi.PrecedenceComparison
			}
		}
	}
	return spi.PrecedenceNone
}

// parseInfixExpr parses the operator following left.
func (p *Parser) parseInfixExpr(left core.Expr, prec int) (core.Expr, error) {
	tok := p.nextToken()

	switch {
	case tok.IsWord(keyword.OR), tok.IsWord(keyword.AND):
		right, err := p.parseExpressionWithPrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		word := keyword.AND
		if tok.IsWord(keyword.OR) {
			word = keyword.OR
		}
		return &core.BinaryExpr{Left: left, Op: token.KEYWORD, Word: word, Right: right}, nil

	case tok.Type == token.DCOLON:
		typ, err := p.parseDataType()
		if err != nil {
			return nil, err
		}
		return &core.CastExpr{Expr: left, Type: typ, CastPos: left.Pos()}, nil

	case tok.IsWord(keyword.IS):
		return p.parseIsExpr(left)

	case tok.IsWord(keyword.NOT):
		next := p.nextToken()
		return p.parseNegatableExpr(left, next, true)

	case tok.Type == token.KEYWORD || tok.Type == token.IDENT:
		return p.parseNegatableExpr(left, tok, false)

	default:
		right, err := p.parseExpressionWithPrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		return &core.BinaryExpr{Left: left, Op: tok.Type, Right: right}, nil
	}
}

// parseIsExpr parses the rest of: expr IS [NOT] NULL.
func (p *Parser) parseIsExpr(left core.Expr) (core.Expr, error) {
	if p.parseKeyword(keyword.NULL) {
		return &core.IsNullExpr{Expr: left}, nil
	}
	if p.parseKeywords(keyword.NOT, keyword.NULL) {
		return &core.IsNullExpr{Expr: left, Not: true}, nil
	}
	return nil, p.expected("NULL or NOT NULL after IS")
}

// parseNegatableExpr parses LIKE, IN or BETWEEN after op was consumed.
func (p *Parser) parseNegatableExpr(left core.Expr, op token.Token, not bool) (core.Expr, error) {
	switch {
	case op.IsWord(keyword.LIKE):
		pattern, err := p.parseExpressionWithPrecedence(spi.PrecedenceComparison + 1)
		if err != nil {
			return nil, err
		}
		return &core.LikeExpr{Expr: left, Not: not, Pattern: pattern}, nil

	case op.IsWord(keyword.IN):
		if err := p.expectToken(token.LPAREN, "'(' after IN"); err != nil {
			return nil, err
		}
		values, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &core.InExpr{Expr: left, Not: not, Values: values}, nil

	case op.IsWord(keyword.BETWEEN):
		// The bounds bind tighter than AND so the separator is not consumed.
		low, err := p.parseExpressionWithPrecedence(spi.PrecedenceComparison + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(keyword.AND); err != nil {
			return nil, err
		}
		high, err := p.parseExpressionWithPrecedence(spi.PrecedenceComparison + 1)
		if err != nil {
			return nil, err
		}
		return &core.BetweenExpr{Expr: left, Not: not, Low: low, High: high}, nil

	default:
		return nil, &SyntaxError{Pos: op.Pos, Expected: "LIKE, IN or BETWEEN", Found: op}
	}
}

// parseExprList parses expr {, expr}.
func (p *Parser) parseExprList() ([]core.Expr, error) {
	var exprs []core.Expr
	for {
		e, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if !p.consumeToken(token.COMMA) {
			return exprs, nil
		}
	}
}

// ---------- Primary expressions ----------

// parsePrimary parses literals, names, function calls, CAST, * and
// parenthesized expressions.
func (p *Parser) parsePrimary() (core.Expr, error) {
	tok := p.peekToken()

	switch tok.Type {
	case token.NUMBER:
		p.nextToken()
		return &core.Literal{Type: core.LiteralNumber, Value: tok.Literal, ValuePos: tok.Pos}, nil

	case token.STRING:
		p.nextToken()
		return &core.Literal{Type: core.LiteralString, Value: tok.Literal, ValuePos: tok.Pos}, nil

	case token.STAR:
		p.nextToken()
		return &core.Wildcard{Star: tok.Pos}, nil

	case token.LPAREN:
		p.nextToken()
		inner, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &core.ParenExpr{Expr: inner, Lparen: tok.Pos}, nil
	}

	switch {
	case tok.IsWord(keyword.TRUE), tok.IsWord(keyword.FALSE):
		p.nextToken()
		value := keyword.FALSE
		if tok.IsWord(keyword.TRUE) {
			value = keyword.TRUE
		}
		return &core.Literal{Type: core.LiteralBool, Value: value, ValuePos: tok.Pos}, nil

	case tok.IsWord(keyword.NULL):
		p.nextToken()
		return &core.Literal{Type: core.LiteralNull, Value: keyword.NULL, ValuePos: tok.Pos}, nil

	case tok.IsWord(keyword.CAST) && p.peekNthToken(1).Type == token.LPAREN:
		return p.parseCast()

	case isIdentToken(tok):
		return p.parseNameExpr()
	}

	return nil, p.expected("an expression")
}

// parseCast parses CAST(expr AS type).
func (p *Parser) parseCast() (core.Expr, error) {
	castTok := p.nextToken()
	p.nextToken() // (

	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.AS); err != nil {
		return nil, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return &core.CastExpr{Expr: expr, Type: typ, CastPos: castTok.Pos}, nil
}

// parseNameExpr parses an identifier chain and what may follow it:
// a.b.c, t.*, or f(args).
func (p *Parser) parseNameExpr() (core.Expr, error) {
	first, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	name := &core.CompoundIdentifier{Parts: []*core.Identifier{first}}

	for p.peekToken().Type == token.DOT {
		next := p.peekNthToken(1)
		switch {
		case isIdentToken(next):
			p.nextToken()
			part, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			name.Parts = append(name.Parts, part)
		case next.Type == token.STAR:
			p.nextToken()
			p.nextToken()
			return &core.QualifiedWildcard{Table: name}, nil
		default:
			p.nextToken()
			return nil, p.expected("identifier or * after '.'")
		}
	}

	if p.peekToken().Type == token.LPAREN {
		return p.parseFuncCall(name)
	}
	if len(name.Parts) == 1 {
		return first, nil
	}
	return name, nil
}

// parseFuncCall parses the argument list of name(...).
func (p *Parser) parseFuncCall(name *core.CompoundIdentifier) (core.Expr, error) {
	p.nextToken() // (
	call := &core.FuncCall{Name: name}
	if p.consumeToken(token.RPAREN) {
		return call, nil
	}
	args, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if err := p.expectToken(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	call.Args = args
	return call, nil
}
