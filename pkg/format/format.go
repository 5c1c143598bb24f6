package format

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// Render returns the canonical single-line SQL text of n in dialect d.
// The text parses back, under the same dialect, to an equivalent tree.
func Render(n core.Node, d dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	return newPrinter(d).Render(n)
}

// MustRender is like Render but panics on error.
func MustRender(n core.Node, d dialect.Dialect) string {
	s, err := Render(n, d)
	if err != nil {
		panic(fmt.Sprintf("format: %v", err))
	}
	return s
}

// Script renders statements one per line, each followed by ";". A COPY
// statement already ends with its \. line and gets no semicolon.
func Script(stmts []core.Stmt, d dialect.Dialect) (string, error) {
	var sb strings.Builder
	for _, stmt := range stmts {
		s, err := Render(stmt, d)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
		sb.WriteString(terminator(stmt))
	}
	return sb.String(), nil
}

// PrettyScript is Script with the Pretty layout and a blank line
// between statements.
func PrettyScript(stmts []core.Stmt, d dialect.Dialect) (string, error) {
	var sb strings.Builder
	for i, stmt := range stmts {
		s, err := Pretty(stmt, d)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.TrimSuffix(s, "\n"))
		sb.WriteString(terminator(stmt))
	}
	return sb.String(), nil
}

func terminator(stmt core.Stmt) string {
	if _, ok := stmt.(*core.CopyStmt); ok {
		return "\n"
	}
	return ";\n"
}

// Pretty formats a statement over several lines, one clause per line.
// Statements without a multi-line layout are rendered as by Render.
// The result ends with a newline.
func Pretty(stmt core.Stmt, d dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	p := newPrinter(d)
	if err := p.formatStmt(stmt); err != nil {
		return "", err
	}
	return p.String(), nil
}
