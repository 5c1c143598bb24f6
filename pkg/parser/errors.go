package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// SyntaxError is returned for the first token the grammar cannot accept.
type SyntaxError struct {
	Pos      token.Position
	Expected string
	Found    token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: expected %s, found %s",
		e.Pos.Line, e.Pos.Column, e.Expected, e.Found)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Char    rune
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedChar      = "unexpected character %q"
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnterminatedIdent   = "unterminated quoted identifier"
	ErrUnterminatedComment = "unterminated block comment"
)
