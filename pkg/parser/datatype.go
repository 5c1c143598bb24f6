package parser

import (
	"strconv"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Data type grammar:
//
//	data_type → base_type {'[' ']'}
//	base_type → CHAR [(n)] | CHARACTER [VARYING] [(n)] | CHARACTER LARGE OBJECT [(n)]
//	          | VARCHAR [(n)] | CLOB [(n)] | BINARY [(n)] | VARBINARY [(n)] | BLOB [(n)]
//	          | DECIMAL | DEC | NUMERIC [(p [, s])] | FLOAT [(p)]
//	          | SMALLINT | INT | INTEGER | BIGINT | REAL | DOUBLE [PRECISION]
//	          | BOOLEAN | DATE | UUID | REGCLASS | TEXT | BYTEA
//	          | TIME [WITH|WITHOUT TIME ZONE] | TIMESTAMP [WITH|WITHOUT TIME ZONE]
//	          | name

// simpleTypeWords maps type words that take no modifiers to their kind.
var simpleTypeWords = map[string]core.DataTypeKind{
	keyword.UUID:     core.TypeUUID,
	keyword.SMALLINT: core.TypeSmallInt,
	keyword.INT:      core.TypeInt,
	keyword.INTEGER:  core.TypeInt,
	keyword.BIGINT:   core.TypeBigInt,
	keyword.REAL:     core.TypeReal,
	keyword.BOOLEAN:  core.TypeBoolean,
	keyword.DATE:     core.TypeDate,
	keyword.REGCLASS: core.TypeRegclass,
	keyword.TEXT:     core.TypeText,
	keyword.BYTEA:    core.TypeBytea,
}

// sizedTypeWords maps type words taking an optional length to their kind.
var sizedTypeWords = map[string]core.DataTypeKind{
	keyword.VARCHAR:   core.TypeVarchar,
	keyword.CLOB:      core.TypeClob,
	keyword.BINARY:    core.TypeBinary,
	keyword.VARBINARY: core.TypeVarbinary,
	keyword.BLOB:      core.TypeBlob,
}

// parseDataType parses a column or CAST target type.
func (p *Parser) parseDataType() (*core.DataType, error) {
	typ, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	for p.peekToken().Type == token.LBRACKET && p.peekNthToken(1).Type == token.RBRACKET {
		p.nextToken()
		p.nextToken()
		typ = &core.DataType{Kind: core.TypeArray, Elem: typ}
	}
	return typ, nil
}

func (p *Parser) parseBaseType() (*core.DataType, error) {
	tok := p.peekToken()

	for word, kind := range simpleTypeWords {
		if tok.IsWord(word) {
			p.nextToken()
			return &core.DataType{Kind: kind}, nil
		}
	}
	for word, kind := range sizedTypeWords {
		if tok.IsWord(word) {
			p.nextToken()
			return p.withLength(&core.DataType{Kind: kind})
		}
	}

	switch {
	case tok.IsWord(keyword.CHAR), tok.IsWord(keyword.CHARACTER):
		p.nextToken()
		switch {
		case p.parseKeyword(keyword.VARYING):
			return p.withLength(&core.DataType{Kind: core.TypeVarchar})
		case p.parseKeywords(keyword.LARGE, keyword.OBJECT):
			return p.withLength(&core.DataType{Kind: core.TypeClob})
		default:
			return p.withLength(&core.DataType{Kind: core.TypeChar})
		}

	case tok.IsWord(keyword.DECIMAL), tok.IsWord(keyword.DEC), tok.IsWord(keyword.NUMERIC):
		p.nextToken()
		return p.withPrecisionScale()

	case tok.IsWord(keyword.FLOAT):
		p.nextToken()
		typ := &core.DataType{Kind: core.TypeFloat}
		if p.peekToken().Type == token.LPAREN {
			n, err := p.parseParenInt()
			if err != nil {
				return nil, err
			}
			typ.Precision = &n
		}
		return typ, nil

	case tok.IsWord(keyword.DOUBLE):
		p.nextToken()
		p.parseKeyword(keyword.PRECISION)
		return &core.DataType{Kind: core.TypeDouble}, nil

	case tok.IsWord(keyword.TIME), tok.IsWord(keyword.TIMESTAMP):
		p.nextToken()
		typ := &core.DataType{Kind: core.TypeTime}
		if tok.IsWord(keyword.TIMESTAMP) {
			typ.Kind = core.TypeTimestamp
		}
		switch {
		case p.parseKeywords(keyword.WITH, keyword.TIME, keyword.ZONE):
			typ.WithTimeZone = true
		case p.parseKeywords(keyword.WITHOUT, keyword.TIME, keyword.ZONE):
		}
		return typ, nil

	case isIdentToken(tok):
		name, err := p.parseObjectName()
		if err != nil {
			return nil, err
		}
		return &core.DataType{Kind: core.TypeCustom, Custom: name}, nil
	}

	return nil, p.expected("a data type")
}

// withLength parses an optional (n) length modifier.
func (p *Parser) withLength(typ *core.DataType) (*core.DataType, error) {
	if p.peekToken().Type != token.LPAREN {
		return typ, nil
	}
	n, err := p.parseParenInt()
	if err != nil {
		return nil, err
	}
	typ.Length = &n
	return typ, nil
}

// withPrecisionScale parses the optional (p [, s]) of DECIMAL.
func (p *Parser) withPrecisionScale() (*core.DataType, error) {
	typ := &core.DataType{Kind: core.TypeDecimal}
	if !p.consumeToken(token.LPAREN) {
		return typ, nil
	}
	precision, err := p.parseInt()
	if err != nil {
		return nil, err
	}
	typ.Precision = &precision
	if p.consumeToken(token.COMMA) {
		scale, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		typ.Scale = &scale
	}
	if err := p.expectToken(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return typ, nil
}

// parseParenInt parses (n).
func (p *Parser) parseParenInt() (int, error) {
	if err := p.expectToken(token.LPAREN, "'('"); err != nil {
		return 0, err
	}
	n, err := p.parseInt()
	if err != nil {
		return 0, err
	}
	if err := p.expectToken(token.RPAREN, "')'"); err != nil {
		return 0, err
	}
	return n, nil
}

// parseInt parses an unsigned integer literal.
func (p *Parser) parseInt() (int, error) {
	tok := p.peekToken()
	if tok.Type != token.NUMBER {
		return 0, p.expected("an integer")
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return 0, p.expected("an integer")
	}
	p.nextToken()
	return n, nil
}
