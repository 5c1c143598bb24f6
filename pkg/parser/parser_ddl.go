package parser

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// DDL parsing: CREATE TABLE and ALTER TABLE.
//
// Grammar:
//
//	create_table  → CREATE TABLE name "(" column_def ("," column_def)* ")"
//	column_def    → identifier data_type {column_option}
//	column_option → PRIMARY KEY | UNIQUE | DEFAULT expr | NULL | NOT NULL
//	alter_table   → ALTER TABLE [ONLY] name alter_op
//	alter_op      → ADD CONSTRAINT identifier table_key
//	              | DROP CONSTRAINT identifier
//	table_key     → PRIMARY KEY "(" ident_list ")"
//	              | UNIQUE [KEY] "(" ident_list ")"
//	              | KEY "(" ident_list ")"
//	              | FOREIGN KEY "(" ident_list ")" REFERENCES name "(" ident_list ")"

// parseCreate parses CREATE TABLE.
func (p *Parser) parseCreate() (*core.CreateTableStmt, error) {
	start := p.nextToken().Pos
	if err := p.expectKeyword(keyword.TABLE); err != nil {
		return nil, err
	}
	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	stmt := &core.CreateTableStmt{Name: name, Start: start}

	if err := p.expectToken(token.LPAREN, "'(' to start the column list"); err != nil {
		return nil, err
	}
	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)
		if !p.consumeToken(token.COMMA) {
			break
		}
	}
	if err := p.expectToken(token.RPAREN, "',' or ')'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseColumnDef parses one column definition. Options may appear in any
// order.
func (p *Parser) parseColumnDef() (*core.ColumnDef, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	typ, err := p.parseDataType()
	if err != nil {
		return nil, err
	}
	col := &core.ColumnDef{Name: name, Type: typ, AllowNull: true}

	for {
		switch {
		case p.parseKeywords(keyword.PRIMARY, keyword.KEY):
			col.IsPrimary = true
		case p.parseKeyword(keyword.UNIQUE):
			col.IsUnique = true
		case p.parseKeywords(keyword.NOT, keyword.NULL):
			col.AllowNull = false
		case p.parseKeyword(keyword.NULL):
			col.AllowNull = true
		case p.parseKeyword(keyword.DEFAULT):
			if col.Default, err = p.ParseExpr(); err != nil {
				return nil, err
			}
		default:
			return col, nil
		}
	}
}

// parseAlter parses ALTER TABLE.
func (p *Parser) parseAlter() (*core.AlterTableStmt, error) {
	start := p.nextToken().Pos
	if err := p.expectKeyword(keyword.TABLE); err != nil {
		return nil, err
	}
	stmt := &core.AlterTableStmt{Start: start, Only: p.parseKeyword(keyword.ONLY)}

	name, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	switch {
	case p.parseKeywords(keyword.ADD, keyword.CONSTRAINT):
		key, err := p.parseTableKey()
		if err != nil {
			return nil, err
		}
		stmt.Operation = &core.AddConstraint{Key: key}
	case p.parseKeywords(keyword.DROP, keyword.CONSTRAINT):
		cname, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		stmt.Operation = &core.DropConstraint{Name: cname}
	default:
		return nil, p.expected("ADD CONSTRAINT or DROP CONSTRAINT")
	}
	return stmt, nil
}

// parseTableKey parses a constraint name followed by its key definition.
func (p *Parser) parseTableKey() (*core.TableKey, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	key := &core.TableKey{Name: name}

	switch {
	case p.parseKeywords(keyword.PRIMARY, keyword.KEY):
		key.Kind = core.PrimaryKey
	case p.parseKeyword(keyword.UNIQUE):
		p.parseKeyword(keyword.KEY)
		key.Kind = core.UniqueKey
	case p.parseKeyword(keyword.KEY):
		key.Kind = core.Key
	case p.parseKeywords(keyword.FOREIGN, keyword.KEY):
		key.Kind = core.ForeignKey
	default:
		return nil, p.expected("PRIMARY KEY, UNIQUE, KEY or FOREIGN KEY")
	}

	if key.Columns, err = p.parseParenIdentifiers(); err != nil {
		return nil, err
	}
	if key.Kind != core.ForeignKey {
		return key, nil
	}

	if err := p.expectKeyword(keyword.REFERENCES); err != nil {
		return nil, err
	}
	if key.ForeignTable, err = p.parseObjectName(); err != nil {
		return nil, err
	}
	if key.ReferredColumns, err = p.parseParenIdentifiers(); err != nil {
		return nil, err
	}
	return key, nil
}
