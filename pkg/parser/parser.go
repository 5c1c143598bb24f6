// Package parser turns SQL text into the AST of pkg/core.
//
// # Usage
//
//	d := dialect.MustGet("postgres")
//	tokens, err := parser.Tokenize("SELECT a FROM t", d)
//	if err != nil {
//	    // *parser.LexError
//	}
//	stmt, err := parser.Parse(tokens)
//	if err != nil {
//	    // *parser.SyntaxError
//	}
//
// Tokenizing needs a dialect, parsing does not: the dialect has already
// decided which words are reserved, and grammar words are matched by
// spelling whether they arrive as keywords or identifiers.
//
// # Grammar Overview
//
//	statement     → select | insert | copy | update | delete
//	              | create_table | alter_table
//	select        → SELECT select_list [FROM name] [WHERE expr]
//	                [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [LIMIT expr]
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Parser is a cursor over a token sequence. Helpers that fail leave the
// cursor where it was.
type Parser struct {
	tokens []token.Token
	pos    int
}

// NewParser creates a parser over tokens. A missing trailing EOF token is
// supplied.
func NewParser(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		var pos token.Position
		if len(tokens) > 0 {
			pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Type: token.EOF, Pos: pos})
	}
	return &Parser{tokens: tokens}
}

// Parse parses exactly one statement, optionally followed by a semicolon.
func Parse(tokens []token.Token) (core.Stmt, error) {
	p := NewParser(tokens)
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	p.consumeToken(token.SEMICOLON)
	if err := p.expectToken(token.EOF, "end of input"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// ParseStatements parses a semicolon-separated script. Empty statements
// are skipped.
func ParseStatements(tokens []token.Token) ([]core.Stmt, error) {
	p := NewParser(tokens)
	var stmts []core.Stmt
	for {
		for p.consumeToken(token.SEMICOLON) {
		}
		if p.peekToken().Type == token.EOF {
			return stmts, nil
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		// The \. line already ends a COPY statement.
		if _, isCopy := stmt.(*core.CopyStmt); !isCopy && p.peekToken().Type != token.EOF {
			if err := p.expectToken(token.SEMICOLON, "';' between statements"); err != nil {
				return nil, err
			}
		}
	}
}

// ParseSQL tokenizes src with d and parses one statement.
func ParseSQL(src string, d dialect.Dialect) (core.Stmt, error) {
	tokens, err := Tokenize(src, d)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseScript tokenizes src with d and parses every statement in it.
func ParseScript(src string, d dialect.Dialect) ([]core.Stmt, error) {
	tokens, err := Tokenize(src, d)
	if err != nil {
		return nil, err
	}
	return ParseStatements(tokens)
}

// ---------- Token Helpers ----------

// skipWhitespace returns the index of the first non-whitespace token at or
// after i.
func (p *Parser) skipWhitespace(i int) int {
	for i < len(p.tokens)-1 && p.tokens[i].IsWhitespace() {
		i++
	}
	return i
}

// peekToken returns the next significant token without consuming it.
func (p *Parser) peekToken() token.Token {
	return p.tokens[p.skipWhitespace(p.pos)]
}

// peekNthToken returns the n-th significant token ahead (0 is peekToken).
func (p *Parser) peekNthToken(n int) token.Token {
	i := p.skipWhitespace(p.pos)
	for ; n > 0; n-- {
		if p.tokens[i].Type == token.EOF {
			break
		}
		i = p.skipWhitespace(i + 1)
	}
	return p.tokens[i]
}

// nextToken consumes and returns the next significant token.
// EOF is never consumed.
func (p *Parser) nextToken() token.Token {
	i := p.skipWhitespace(p.pos)
	tok := p.tokens[i]
	if tok.Type != token.EOF {
		i++
	}
	p.pos = i
	return tok
}

// nextRawToken consumes the next token including whitespace.
func (p *Parser) nextRawToken() token.Token {
	tok := p.tokens[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

// peekRawToken returns the next token including whitespace.
func (p *Parser) peekRawToken() token.Token {
	return p.tokens[p.pos]
}

// consumeToken consumes the next token if it has type t.
func (p *Parser) consumeToken(t token.TokenType) bool {
	if p.peekToken().Type == t {
		p.nextToken()
		return true
	}
	return false
}

// expectToken consumes a token of type t or fails.
func (p *Parser) expectToken(t token.TokenType, expected string) error {
	if p.consumeToken(t) {
		return nil
	}
	return p.expected(expected)
}

// parseKeyword consumes the next token if it spells word.
func (p *Parser) parseKeyword(word string) bool {
	if p.peekToken().IsWord(word) {
		p.nextToken()
		return true
	}
	return false
}

// parseKeywords consumes a word sequence, all or nothing.
func (p *Parser) parseKeywords(words ...string) bool {
	saved := p.pos
	for _, w := range words {
		if !p.parseKeyword(w) {
			p.pos = saved
			return false
		}
	}
	return true
}

// expectKeyword consumes word or fails.
func (p *Parser) expectKeyword(word string) error {
	if p.parseKeyword(word) {
		return nil
	}
	return p.expected(word)
}

// expectKeywords consumes a word sequence or fails at the first mismatch.
func (p *Parser) expectKeywords(words ...string) error {
	saved := p.pos
	for _, w := range words {
		if err := p.expectKeyword(w); err != nil {
			p.pos = saved
			return err
		}
	}
	return nil
}

// expected builds a SyntaxError against the next significant token.
func (p *Parser) expected(what string) error {
	tok := p.peekToken()
	return &SyntaxError{Pos: tok.Pos, Expected: what, Found: tok}
}

// ---------- Names ----------

// parseIdentifier parses a single identifier. Reserved words are refused.
func (p *Parser) parseIdentifier() (*core.Identifier, error) {
	tok := p.peekToken()
	switch tok.Type {
	case token.IDENT:
		p.nextToken()
		return &core.Identifier{Name: tok.Literal, NamePos: tok.Pos}, nil
	case token.QUOTED_IDENT:
		p.nextToken()
		return &core.Identifier{Name: tok.Literal, Quoted: true, NamePos: tok.Pos}, nil
	default:
		return nil, p.expected("identifier")
	}
}

// parseObjectName parses a dotted name: ident {. ident}.
func (p *Parser) parseObjectName() (*core.CompoundIdentifier, error) {
	first, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	name := &core.CompoundIdentifier{Parts: []*core.Identifier{first}}
	for p.peekToken().Type == token.DOT && isIdentToken(p.peekNthToken(1)) {
		p.nextToken()
		part, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		name.Parts = append(name.Parts, part)
	}
	return name, nil
}

// parseParenIdentifiers parses (ident {, ident}).
func (p *Parser) parseParenIdentifiers() ([]*core.Identifier, error) {
	if err := p.expectToken(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var idents []*core.Identifier
	for {
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		idents = append(idents, id)
		if !p.consumeToken(token.COMMA) {
			break
		}
	}
	if err := p.expectToken(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return idents, nil
}

func isIdentToken(tok token.Token) bool {
	return tok.Type == token.IDENT || tok.Type == token.QUOTED_IDENT
}

// isClauseWord reports whether tok starts a clause and so cannot be read
// as an implicit alias, even when the dialect does not reserve it.
func isClauseWord(tok token.Token) bool {
	for _, w := range []string{keyword.FROM, keyword.WHERE, keyword.GROUP, keyword.HAVING, keyword.ORDER, keyword.LIMIT, keyword.UNION} {
		if tok.IsWord(w) {
			return true
		}
	}
	return false
}
