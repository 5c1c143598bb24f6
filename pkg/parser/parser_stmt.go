package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Statement parsing: dispatch, SELECT, INSERT, UPDATE, DELETE.
//
// Grammar:
//
//	select        → SELECT select_list [FROM name] [WHERE expr]
//	                [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [LIMIT expr]
//	select_list   → select_item ("," select_item)*
//	select_item   → "*" | name "." "*" | expr [[AS] identifier]
//	order_list    → order_item ("," order_item)*
//	order_item    → expr [ASC|DESC]
//	insert        → INSERT INTO name ["(" ident_list ")"] VALUES row ("," row)*
//	row           → "(" expr_list ")"
//	update        → UPDATE name SET assignment ("," assignment)* [WHERE expr]
//	assignment    → identifier "=" expr
//	delete        → DELETE [FROM name] [WHERE expr]

// ParseStatement parses one statement, dispatching on its first word.
// On error the cursor is left where it was.
func (p *Parser) ParseStatement() (core.Stmt, error) {
	saved := p.pos
	stmt, err := p.parseStatement()
	if err != nil {
		p.pos = saved
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseStatement() (core.Stmt, error) {
	tok := p.peekToken()
	switch {
	case tok.IsWord(keyword.SELECT):
		return stmtOrErr(p.parseSelect())
	case tok.IsWord(keyword.INSERT):
		return stmtOrErr(p.parseInsert())
	case tok.IsWord(keyword.COPY):
		return stmtOrErr(p.parseCopy())
	case tok.IsWord(keyword.UPDATE):
		return stmtOrErr(p.parseUpdate())
	case tok.IsWord(keyword.DELETE):
		return stmtOrErr(p.parseDelete())
	case tok.IsWord(keyword.CREATE):
		return stmtOrErr(p.parseCreate())
	case tok.IsWord(keyword.ALTER):
		return stmtOrErr(p.parseAlter())
	default:
		return nil, p.expected("a statement")
	}
}

// stmtOrErr drops the typed nil a failed sub-parser returns, so a failed
// parse never yields a non-nil core.Stmt.
func stmtOrErr[T core.Stmt](stmt T, err error) (core.Stmt, error) {
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseSelect parses a SELECT query. Each optional clause is independent.
func (p *Parser) parseSelect() (*core.SelectStmt, error) {
	start := p.nextToken().Pos
	stmt := &core.SelectStmt{Start: start}

	projection, err := p.parseSelectList()
	if err != nil {
		return nil, err
	}
	stmt.Projection = projection

	if p.parseKeyword(keyword.FROM) {
		if stmt.Relation, err = p.parseObjectName(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword(keyword.WHERE) {
		if stmt.Selection, err = p.ParseExpr(); err != nil {
			return nil, err
		}
	}
	if p.parseKeywords(keyword.GROUP, keyword.BY) {
		if stmt.GroupBy, err = p.parseExprList(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword(keyword.HAVING) {
		if stmt.Having, err = p.ParseExpr(); err != nil {
			return nil, err
		}
	}
	if p.parseKeywords(keyword.ORDER, keyword.BY) {
		if stmt.OrderBy, err = p.parseOrderByList(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword(keyword.LIMIT) {
		if stmt.Limit, err = p.ParseExpr(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseSelectList parses the projection.
func (p *Parser) parseSelectList() ([]core.Expr, error) {
	var items []core.Expr
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.consumeToken(token.COMMA) {
			return items, nil
		}
	}
}

// parseSelectItem parses expr [[AS] alias].
func (p *Parser) parseSelectItem() (core.Expr, error) {
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}

	if p.parseKeyword(keyword.AS) {
		alias, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &core.AliasedExpr{Expr: expr, Alias: alias}, nil
	}

	// Implicit alias: a bare identifier that does not open a clause.
	if next := p.peekToken(); isIdentToken(next) && !isClauseWord(next) {
		alias, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &core.AliasedExpr{Expr: expr, Alias: alias}, nil
	}
	return expr, nil
}

// parseOrderByList parses order_item {, order_item}.
func (p *Parser) parseOrderByList() ([]*core.OrderByExpr, error) {
	var items []*core.OrderByExpr
	for {
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		item := &core.OrderByExpr{Expr: expr, Asc: true}
		switch {
		case p.parseKeyword(keyword.ASC):
			item.Explicit = true
		case p.parseKeyword(keyword.DESC):
			item.Asc = false
			item.Explicit = true
		}
		items = append(items, item)
		if !p.consumeToken(token.COMMA) {
			return items, nil
		}
	}
}

// parseInsert parses INSERT INTO ... VALUES.
func (p *Parser) parseInsert() (*core.InsertStmt, error) {
	start := p.nextToken().Pos
	if err := p.expectKeyword(keyword.INTO); err != nil {
		return nil, err
	}
	table, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	stmt := &core.InsertStmt{Table: table, Start: start}

	if p.peekToken().Type == token.LPAREN {
		if stmt.Columns, err = p.parseParenIdentifiers(); err != nil {
			return nil, err
		}
	}

	if err := p.expectKeyword(keyword.VALUES); err != nil {
		return nil, err
	}
	for {
		if err := p.expectToken(token.LPAREN, "'(' to start a row"); err != nil {
			return nil, err
		}
		row, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, row)
		if !p.consumeToken(token.COMMA) {
			return stmt, nil
		}
	}
}

// parseUpdate parses UPDATE name SET ... [WHERE ...].
func (p *Parser) parseUpdate() (*core.UpdateStmt, error) {
	start := p.nextToken().Pos
	table, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(keyword.SET); err != nil {
		return nil, err
	}
	stmt := &core.UpdateStmt{Table: table, Start: start}

	for {
		col, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectToken(token.EQ, "'='"); err != nil {
			return nil, err
		}
		value, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Assignments = append(stmt.Assignments, &core.Assignment{Column: col, Value: value})
		if !p.consumeToken(token.COMMA) {
			break
		}
	}

	if p.parseKeyword(keyword.WHERE) {
		if stmt.Selection, err = p.ParseExpr(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// parseDelete parses DELETE [FROM name] [WHERE expr].
func (p *Parser) parseDelete() (*core.DeleteStmt, error) {
	start := p.nextToken().Pos
	stmt := &core.DeleteStmt{Start: start}

	var err error
	if p.parseKeyword(keyword.FROM) {
		if stmt.Relation, err = p.parseObjectName(); err != nil {
			return nil, err
		}
	}
	if p.parseKeyword(keyword.WHERE) {
		if stmt.Selection, err = p.ParseExpr(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}
