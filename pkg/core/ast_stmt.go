package core

import "github.com/leapstack-labs/sqlfront/pkg/token"

// ---------- Statement Types ----------

// SelectStmt represents a SELECT query. A nil clause was absent in the
// source; every clause is independent of the others.
type SelectStmt struct {
	Projection []Expr
	Relation   *CompoundIdentifier // FROM
	Selection  Expr                // WHERE
	GroupBy    []Expr
	Having     Expr
	OrderBy    []*OrderByExpr
	Limit      Expr
	Start      token.Position
}

func (*SelectStmt) stmtNode() {}

// Pos implements Node.
func (s *SelectStmt) Pos() token.Position { return s.Start }

// InsertStmt is INSERT INTO table [(columns)] VALUES (row), ...
// Rows and their values keep source order.
type InsertStmt struct {
	Table   *CompoundIdentifier
	Columns []*Identifier
	Values  [][]Expr
	Start   token.Position
}

func (*InsertStmt) stmtNode() {}

// Pos implements Node.
func (s *InsertStmt) Pos() token.Position { return s.Start }

// CopyStmt is COPY table [(columns)] FROM STDIN followed by an inline
// tab-separated data block.
type CopyStmt struct {
	Table   *CompoundIdentifier
	Columns []*Identifier
	Rows    [][]CopyValue
	Start   token.Position
}

func (*CopyStmt) stmtNode() {}

// Pos implements Node.
func (s *CopyStmt) Pos() token.Position { return s.Start }

// CopyValue is one cell of a COPY data row. Value is the raw cell text;
// Null marks the \N marker.
type CopyValue struct {
	Value string
	Null  bool
}

// String returns the cell as it appears in the data block.
func (v CopyValue) String() string {
	if v.Null {
		return `\N`
	}
	return v.Value
}

// UpdateStmt is UPDATE table SET col = e, ... [WHERE e].
type UpdateStmt struct {
	Table       *CompoundIdentifier
	Assignments []*Assignment
	Selection   Expr
	Start       token.Position
}

func (*UpdateStmt) stmtNode() {}

// Pos implements Node.
func (s *UpdateStmt) Pos() token.Position { return s.Start }

// DeleteStmt is DELETE [FROM relation] [WHERE e].
type DeleteStmt struct {
	Relation  *CompoundIdentifier
	Selection Expr
	Start     token.Position
}

func (*DeleteStmt) stmtNode() {}

// Pos implements Node.
func (s *DeleteStmt) Pos() token.Position { return s.Start }

// Assignment is col = value inside UPDATE ... SET.
type Assignment struct {
	Column *Identifier
	Value  Expr
}

// Pos implements Node.
func (a *Assignment) Pos() token.Position { return a.Column.Pos() }

// OrderByExpr is one ORDER BY item. Asc is true unless DESC was written.
type OrderByExpr struct {
	Expr Expr
	Asc  bool
	// Explicit records whether ASC or DESC was spelled out.
	Explicit bool
}

// Pos implements Node.
func (o *OrderByExpr) Pos() token.Position { return o.Expr.Pos() }
