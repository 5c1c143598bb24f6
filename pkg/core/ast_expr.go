package core

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// ---------- Names ----------

// Identifier is a single name, optionally double-quoted in the source.
type Identifier struct {
	Name    string
	Quoted  bool
	NamePos token.Position
}

func (*Identifier) exprNode() {}

// Pos implements Node.
func (i *Identifier) Pos() token.Position { return i.NamePos }

// CompoundIdentifier is a dotted name such as schema.table.column.
// Parts keep source order.
type CompoundIdentifier struct {
	Parts []*Identifier
}

func (*CompoundIdentifier) exprNode() {}

// Pos implements Node.
func (c *CompoundIdentifier) Pos() token.Position {
	if len(c.Parts) > 0 {
		return c.Parts[0].Pos()
	}
	return token.Position{}
}

// Names returns the unquoted segment names in order.
func (c *CompoundIdentifier) Names() []string {
	names := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		names[i] = p.Name
	}
	return names
}

// String joins the segment names with dots, without quoting.
func (c *CompoundIdentifier) String() string {
	return strings.Join(c.Names(), ".")
}

// Last returns the final segment, or nil for an empty name.
func (c *CompoundIdentifier) Last() *Identifier {
	if len(c.Parts) == 0 {
		return nil
	}
	return c.Parts[len(c.Parts)-1]
}

// NewCompoundIdentifier builds an unquoted dotted name from its segments.
func NewCompoundIdentifier(parts ...string) *CompoundIdentifier {
	c := &CompoundIdentifier{Parts: make([]*Identifier, len(parts))}
	for i, p := range parts {
		c.Parts[i] = &Identifier{Name: p}
	}
	return c
}

// Wildcard is a bare * in a projection or function argument.
type Wildcard struct {
	Star token.Position
}

func (*Wildcard) exprNode() {}

// Pos implements Node.
func (w *Wildcard) Pos() token.Position { return w.Star }

// QualifiedWildcard is t.* in a projection.
type QualifiedWildcard struct {
	Table *CompoundIdentifier
}

func (*QualifiedWildcard) exprNode() {}

// Pos implements Node.
func (q *QualifiedWildcard) Pos() token.Position {
	if q.Table != nil {
		return q.Table.Pos()
	}
	return token.Position{}
}

// ---------- Literals ----------

// Literal represents a literal value.
// Value holds the number text verbatim, the unescaped string body,
// TRUE/FALSE for booleans and NULL for null.
type Literal struct {
	Type     LiteralType
	Value    string
	ValuePos token.Position
}

func (*Literal) exprNode() {}

// Pos implements Node.
func (l *Literal) Pos() token.Position { return l.ValuePos }

// LiteralType represents the type of a literal.
type LiteralType int

// LiteralType constants for SQL literal value types.
const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// String returns the name of the literal type.
func (t LiteralType) String() string {
	switch t {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralNull:
		return "null"
	default:
		return "unknown"
	}
}

// ---------- Operators ----------

// UnaryExpr is a prefix operator applied to an expression: NOT, - or +.
type UnaryExpr struct {
	Op    token.TokenType // MINUS, PLUS, or KEYWORD for NOT
	Expr  Expr
	OpPos token.Position
}

func (*UnaryExpr) exprNode() {}

// Pos implements Node.
func (u *UnaryExpr) Pos() token.Position { return u.OpPos }

// IsNot reports whether the operator is logical negation.
func (u *UnaryExpr) IsNot() bool { return u.Op == token.KEYWORD }

// BinaryExpr represents a binary expression.
// Logical AND and OR are stored with Op KEYWORD and the word in Word.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Word  string // AND or OR when Op is KEYWORD
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// Pos implements Node.
func (b *BinaryExpr) Pos() token.Position {
	if b.Left != nil {
		return b.Left.Pos()
	}
	return token.Position{}
}

// Operator returns the SQL spelling of the operator.
func (b *BinaryExpr) Operator() string {
	if b.Op == token.KEYWORD {
		return b.Word
	}
	return b.Op.String()
}

// IsNullExpr is e IS [NOT] NULL.
type IsNullExpr struct {
	Expr Expr
	Not  bool
}

func (*IsNullExpr) exprNode() {}

// Pos implements Node.
func (i *IsNullExpr) Pos() token.Position { return i.Expr.Pos() }

// LikeExpr is e [NOT] LIKE pattern.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Pattern Expr
}

func (*LikeExpr) exprNode() {}

// Pos implements Node.
func (l *LikeExpr) Pos() token.Position { return l.Expr.Pos() }

// InExpr is e [NOT] IN (v, ...).
type InExpr struct {
	Expr   Expr
	Not    bool
	Values []Expr
}

func (*InExpr) exprNode() {}

// Pos implements Node.
func (i *InExpr) Pos() token.Position { return i.Expr.Pos() }

// BetweenExpr is e [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*BetweenExpr) exprNode() {}

// Pos implements Node.
func (b *BetweenExpr) Pos() token.Position { return b.Expr.Pos() }

// ---------- Other expressions ----------

// CastExpr is CAST(e AS type).
type CastExpr struct {
	Expr    Expr
	Type    *DataType
	CastPos token.Position
}

func (*CastExpr) exprNode() {}

// Pos implements Node.
func (c *CastExpr) Pos() token.Position { return c.CastPos }

// ParenExpr is a parenthesized expression. It is kept in the tree so the
// rendered text keeps the source grouping.
type ParenExpr struct {
	Expr   Expr
	Lparen token.Position
}

func (*ParenExpr) exprNode() {}

// Pos implements Node.
func (p *ParenExpr) Pos() token.Position { return p.Lparen }

// FuncCall is a function invocation name(args).
type FuncCall struct {
	Name *CompoundIdentifier
	Args []Expr
}

func (*FuncCall) exprNode() {}

// Pos implements Node.
func (f *FuncCall) Pos() token.Position { return f.Name.Pos() }

// AliasedExpr is a projection item with an alias: e AS alias.
type AliasedExpr struct {
	Expr  Expr
	Alias *Identifier
}

func (*AliasedExpr) exprNode() {}

// Pos implements Node.
func (a *AliasedExpr) Pos() token.Position { return a.Expr.Pos() }
