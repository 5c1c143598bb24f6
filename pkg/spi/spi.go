// Package spi provides Service Provider Interface types through which
// dialect rendering hooks call back into the renderer without circular
// dependencies.
package spi

import "github.com/leapstack-labs/sqlfront/pkg/core"

// RenderOps exposes renderer operations to dialect hooks.
//
// Render always routes through the dialect the renderer was started with,
// so a hook rendering a child node picks up that dialect's overrides even
// when the hook itself belongs to the baseline.
type RenderOps interface {
	// Render returns the text of a child node.
	Render(n core.Node) (string, error)

	// RenderList renders nodes and joins them with ", ".
	RenderList(nodes ...core.Node) (string, error)

	// DialectName is the name of the active dialect.
	DialectName() string
}

// Precedence constants for operator precedence parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, IN, BETWEEN, IS
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +
	PrecedencePostfix    = 8 // ()
)
