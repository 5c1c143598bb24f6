package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// COPY with inline data, as written by pg_dump:
//
//	copy       → COPY name ["(" ident_list ")"] FROM STDIN ";" data
//	data       → {row "\n"} "\."
//	row        → cell {"\t" cell}
//
// The lexer hands the data lines over unscanned as one COPY_DATA token and
// the terminator as COPY_END. Cells are split on tabs only; the cell \N is
// SQL NULL.

// nullMarker is the COPY text-format spelling of NULL.
const nullMarker = `\N`

// parseCopy parses a COPY statement and its data block.
func (p *Parser) parseCopy() (*core.CopyStmt, error) {
	start := p.nextToken().Pos
	table, err := p.parseObjectName()
	if err != nil {
		return nil, err
	}
	stmt := &core.CopyStmt{Table: table, Start: start}

	if p.peekToken().Type == token.LPAREN {
		if stmt.Columns, err = p.parseParenIdentifiers(); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeywords(keyword.FROM, keyword.STDIN); err != nil {
		return nil, err
	}
	if err := p.expectToken(token.SEMICOLON, "';' after FROM STDIN"); err != nil {
		return nil, err
	}

	if stmt.Rows, err = p.parseCopyData(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseCopyData reads the data block the lexer captured after the
// command line and the \. that ends it.
func (p *Parser) parseCopyData() ([][]core.CopyValue, error) {
	// Spaces after the semicolon and the line break that ends the command
	// line are not data.
	for isSpaces(p.peekRawToken()) {
		p.nextRawToken()
	}
	if isNewline(p.peekRawToken()) {
		p.nextRawToken()
	}

	var rows [][]core.CopyValue
	if tok := p.peekRawToken(); tok.Type == token.COPY_DATA {
		p.nextRawToken()
		rows = splitCopyRows(tok.Literal)
	}
	if tok := p.peekRawToken(); tok.Type != token.COPY_END {
		return nil, &SyntaxError{Pos: tok.Pos, Expected: `\. to end the COPY data`, Found: tok}
	}
	p.nextRawToken()
	return rows, nil
}

// splitCopyRows splits raw data lines into rows of tab-separated cells.
func splitCopyRows(data string) [][]core.CopyValue {
	data = strings.TrimSuffix(data, "\n")
	lines := strings.Split(data, "\n")
	rows := make([][]core.CopyValue, 0, len(lines))
	for _, line := range lines {
		cells := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
		row := make([]core.CopyValue, 0, len(cells))
		for _, cell := range cells {
			if cell == nullMarker {
				row = append(row, core.CopyValue{Null: true})
			} else {
				row = append(row, core.CopyValue{Value: cell})
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func isSpaces(tok token.Token) bool {
	return tok.Type == token.WHITESPACE && tok.Literal != "" && strings.Trim(tok.Literal, " ") == ""
}

func isNewline(tok token.Token) bool {
	return tok.Type == token.WHITESPACE && (tok.Literal == "\n" || tok.Literal == "\r\n" || tok.Literal == "\r")
}
