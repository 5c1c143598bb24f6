package dialect

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Parentheses are added only where the parser would otherwise group the
// text differently, so a parsed tree renders back without new ParenExpr
// nodes while a hand-built tree keeps its shape.

// primaryPrecedence binds tighter than any operator.
const primaryPrecedence = spi.PrecedencePostfix + 1

// precedence returns how tightly the top operator of e binds.
func precedence(e core.Expr) int {
	switch e := e.(type) {
	case *core.BinaryExpr:
		return binaryPrecedence(e)
	case *core.UnaryExpr:
		if e.IsNot() {
			return spi.PrecedenceNot
		}
		return spi.PrecedenceUnary
	case *core.IsNullExpr, *core.LikeExpr, *core.InExpr, *core.BetweenExpr:
		return spi.PrecedenceComparison
	default:
		return primaryPrecedence
	}
}

func binaryPrecedence(e *core.BinaryExpr) int {
	switch e.Op {
	case token.KEYWORD:
		if e.Word == keyword.OR {
			return spi.PrecedenceOr
		}
		return spi.PrecedenceAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return spi.PrecedenceComparison
	case token.PLUS, token.MINUS, token.DPIPE:
		return spi.PrecedenceAddition
	case token.STAR, token.SLASH, token.PERCENT:
		return spi.PrecedenceMultiply
	default:
		return spi.PrecedenceNone
	}
}

// isPrefix reports whether e starts with a prefix operator. A prefix
// operator can open any operand, whatever its own precedence.
func isPrefix(e core.Expr) bool {
	_, ok := e.(*core.UnaryExpr)
	return ok
}

// openEnd returns the lowest precedence at which a prefix operator on the
// right edge of e would go on to absorb an operator written after e, or
// primaryPrecedence when the right edge is closed.
func openEnd(e core.Expr) int {
	switch e := e.(type) {
	case *core.UnaryExpr:
		own := precedence(e)
		if wrapOperand(e.Expr, own) {
			return own
		}
		return min(own, openEnd(e.Expr))
	case *core.BinaryExpr:
		if wrapRight(e.Right, binaryPrecedence(e)) {
			return primaryPrecedence
		}
		return openEnd(e.Right)
	case *core.LikeExpr:
		if wrapRight(e.Pattern, spi.PrecedenceComparison) {
			return primaryPrecedence
		}
		return openEnd(e.Pattern)
	case *core.BetweenExpr:
		if wrapRight(e.High, spi.PrecedenceComparison) {
			return primaryPrecedence
		}
		return openEnd(e.High)
	default:
		return primaryPrecedence
	}
}

// wrapLeft reports whether e needs parentheses as the left operand of an
// infix operator binding at prec.
func wrapLeft(e core.Expr, prec int) bool {
	return precedence(e) < prec || openEnd(e) <= prec
}

// wrapRight reports whether e needs parentheses as the right operand of a
// left-associative infix operator binding at prec.
func wrapRight(e core.Expr, prec int) bool {
	return !isPrefix(e) && precedence(e) <= prec
}

// wrapOperand reports whether e needs parentheses as the operand of a
// prefix operator binding at prec.
func wrapOperand(e core.Expr, prec int) bool {
	return !isPrefix(e) && precedence(e) < prec
}

// renderOperand renders e, parenthesized when wrap is set.
func renderOperand(r spi.RenderOps, e core.Expr, wrap bool) (string, error) {
	s, err := r.Render(e)
	if err != nil {
		return "", err
	}
	if wrap {
		return "(" + s + ")", nil
	}
	return s, nil
}
