package core

import "github.com/leapstack-labs/sqlfront/pkg/token"

// Node is the base interface for all AST nodes.
// Auxiliary structures such as ColumnDef implement Node too, so a renderer
// can route them through the same callback as expressions and statements.
type Node interface {
	// Pos returns the position of the first token of the node, or the zero
	// Position when the node was built by hand.
	Pos() token.Position
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}
