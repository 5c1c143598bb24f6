// Package dialect provides the SQL dialect contract used by the tokenizer
// and the renderer.
//
// A Dialect decides which words are reserved, which characters may start
// and continue an identifier, and how each AST node is turned back into
// SQL text. Base is the baseline implementation; concrete dialects in
// pkg/dialects/* embed it and override individual hooks.
package dialect

import (
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
)

// Dialect is the capability set of a SQL dialect.
// Implementations must be immutable and safe for concurrent use.
type Dialect interface {
	// Name is the registry name of the dialect.
	Name() string

	// Keywords is the set of reserved words.
	Keywords() *keyword.Set

	// IsIdentifierStart reports whether ch may begin an identifier.
	IsIdentifierStart(ch rune) bool

	// IsIdentifierPart reports whether ch may continue an identifier.
	IsIdentifierPart(ch rune) bool

	// RenderNode renders expressions, statements and data types.
	RenderNode(r spi.RenderOps, n core.Node) (string, error)

	// Narrow hooks for auxiliary structures. Each one is reached for every
	// occurrence of its structure, including occurrences nested in a
	// statement rendered by RenderNode.
	RenderAssignment(r spi.RenderOps, a *core.Assignment) (string, error)
	RenderColumnDef(r spi.RenderOps, c *core.ColumnDef) (string, error)
	RenderOrderBy(r spi.RenderOps, o *core.OrderByExpr) (string, error)
	RenderAlterOperation(r spi.RenderOps, op core.AlterOperation) (string, error)
	RenderTableKey(r spi.RenderOps, k *core.TableKey) (string, error)
}

// Route renders n with d, sending auxiliary structures to their narrow
// hook and everything else to RenderNode.
func Route(d Dialect, r spi.RenderOps, n core.Node) (string, error) {
	switch n := n.(type) {
	case *core.Assignment:
		return d.RenderAssignment(r, n)
	case *core.ColumnDef:
		return d.RenderColumnDef(r, n)
	case *core.OrderByExpr:
		return d.RenderOrderBy(r, n)
	case core.AlterOperation:
		return d.RenderAlterOperation(r, n)
	case *core.TableKey:
		return d.RenderTableKey(r, n)
	default:
		return d.RenderNode(r, n)
	}
}

// Base is the baseline dialect. It implements every rendering hook with
// the generic SQL text form.
type Base struct {
	name       string
	keywords   *keyword.Set
	startExtra string // non-letter runes allowed at identifier start
	partExtra  string // non-alphanumeric runes allowed inside identifiers
	asciiOnly  bool
}

// Name implements Dialect.
func (b *Base) Name() string { return b.name }

// Keywords implements Dialect.
func (b *Base) Keywords() *keyword.Set { return b.keywords }

// IsIdentifierStart implements Dialect.
func (b *Base) IsIdentifierStart(ch rune) bool {
	return b.isLetter(ch) || strings.ContainsRune(b.startExtra, ch)
}

// IsIdentifierPart implements Dialect.
func (b *Base) IsIdentifierPart(ch rune) bool {
	return b.isLetter(ch) || isDigit(ch) || strings.ContainsRune(b.partExtra, ch)
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (b *Base) IsReservedWord(word string) bool {
	return b.keywords.Contains(word)
}

// NeedsQuotes reports whether name must be quoted to read back as the
// same identifier: it is reserved, spells a literal, or breaks the
// identifier character rules.
func (b *Base) NeedsQuotes(name string) bool {
	if name == "" || b.IsReservedWord(name) || isLiteralWord(name) {
		return true
	}
	for i, ch := range name {
		if (i == 0 && !b.IsIdentifierStart(ch)) || (i > 0 && !b.IsIdentifierPart(ch)) {
			return true
		}
	}
	return false
}

// isLiteralWord reports whether an unquoted word would parse as a literal
// even where the dialect does not reserve it.
func isLiteralWord(word string) bool {
	return strings.EqualFold(word, keyword.TRUE) ||
		strings.EqualFold(word, keyword.FALSE) ||
		strings.EqualFold(word, keyword.NULL)
}

// QuoteIdentifier quotes an identifier with double quotes, doubling any
// embedded quote.
func (b *Base) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (b *Base) isLetter(ch rune) bool {
	if b.asciiOnly {
		return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
	}
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// Builder provides a fluent API for constructing a Base.
type Builder struct {
	base  *Base
	lists [][]string
}

// NewBase creates a builder for a baseline dialect with the given name.
// Identifiers default to ASCII letters and @ at the start, and ASCII
// letters, digits, @ and _ afterwards.
func NewBase(name string) *Builder {
	return &Builder{
		base: &Base{
			name:       name,
			startExtra: "@",
			partExtra:  "@_",
			asciiOnly:  true,
		},
	}
}

// Keywords adds reserved word lists.
func (b *Builder) Keywords(lists ...[]string) *Builder {
	b.lists = append(b.lists, lists...)
	return b
}

// IdentifierChars sets the non-alphanumeric characters accepted at the
// start of and inside identifiers.
func (b *Builder) IdentifierChars(start, part string) *Builder {
	b.base.startExtra = start
	b.base.partExtra = part
	return b
}

// UnicodeLetters accepts any Unicode letter in identifiers instead of
// ASCII letters only.
func (b *Builder) UnicodeLetters() *Builder {
	b.base.asciiOnly = false
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Base {
	b.base.keywords = keyword.NewSet(b.lists...)
	return b.base
}

var _ Dialect = (*Base)(nil)
