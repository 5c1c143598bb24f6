// Package format renders AST nodes back to SQL text through a dialect's
// rendering hooks.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
)

const indentSize = 2

// Printer renders nodes with one dialect. It implements spi.RenderOps so
// hooks render their children through the same dialect, and carries an
// indenting buffer for the multi-line layout.
type Printer struct {
	dialect     dialect.Dialect
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

var _ spi.RenderOps = (*Printer)(nil)

func newPrinter(d dialect.Dialect) *Printer {
	return &Printer{
		dialect:     d,
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// Render implements spi.RenderOps.
func (p *Printer) Render(n core.Node) (string, error) {
	return dialect.Route(p.dialect, p, n)
}

// RenderList implements spi.RenderOps.
func (p *Printer) RenderList(nodes ...core.Node) (string, error) {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		s, err := p.Render(n)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

// DialectName implements spi.RenderOps.
func (p *Printer) DialectName() string {
	return p.dialect.Name()
}

// String returns the formatted output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// kw prints a clause keyword sequence separated by spaces.
func (p *Printer) kw(words ...string) {
	p.write(strings.Join(words, " "))
}

// writeNode renders n and writes it at the current position.
func (p *Printer) writeNode(n core.Node) error {
	s, err := p.Render(n)
	if err != nil {
		return err
	}
	p.write(s)
	return nil
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index,
// sep is the separator string, multiline adds newlines after separators.
func (p *Printer) formatList(count int, format func(i int) error, sep string, multiline bool) error {
	for i := 0; i < count; i++ {
		if err := format(i); err != nil {
			return err
		}
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.writeln()
			}
		}
	}
	return nil
}
