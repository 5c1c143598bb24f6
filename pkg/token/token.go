// Package token defines the lexical tokens produced by the tokenizer.
//
// Keywords are not individual token types: which words are reserved is a
// property of the dialect, so every reserved word scans as a KEYWORD token
// carrying its canonical spelling.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL
	WHITESPACE // spaces, tab, newline or comment

	// Words and literals
	KEYWORD      // reserved word of the active dialect
	IDENT        // identifier
	QUOTED_IDENT //nolint:revive // "identifier"
	NUMBER       // 123, 45.67
	STRING       // 'hello'

	// COPY ... FROM STDIN data
	COPY_DATA //nolint:revive // raw data lines
	COPY_END  //nolint:revive // \.

	// Operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	PERCENT   // %
	DPIPE     // ||
	EQ        // =
	NE        // != or <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	LBRACE    // {
	RBRACE    // }
	COLON     // :
	DCOLON    // ::
	AMPERSAND // &
	SEMICOLON // ;
	BACKSLASH // \
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	WHITESPACE: "WHITESPACE",

	KEYWORD:      "KEYWORD",
	IDENT:        "IDENT",
	QUOTED_IDENT: "QUOTED_IDENT",
	NUMBER:       "NUMBER",
	STRING:       "STRING",

	COPY_DATA: "COPY_DATA",
	COPY_END:  "COPY_END",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	PERCENT:   "%",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	LBRACE:    "{",
	RBRACE:    "}",
	COLON:     ":",
	DCOLON:    "::",
	AMPERSAND: "&",
	SEMICOLON: ";",
	BACKSLASH: `\`,
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= BACKSLASH
}

// Operators maps operator spellings to their token types.
// The tokenizer matches them longest prefix first.
var Operators = map[string]TokenType{
	"<=": LE,
	">=": GE,
	"<>": NE,
	"!=": NE,
	"||": DPIPE,
	"::": DCOLON,
	"+":  PLUS,
	"-":  MINUS,
	"*":  STAR,
	"/":  SLASH,
	"%":  PERCENT,
	"=":  EQ,
	"<":  LT,
	">":  GT,
	".":  DOT,
	",":  COMMA,
	"(":  LPAREN,
	")":  RPAREN,
	"[":  LBRACKET,
	"]":  RBRACKET,
	"{":  LBRACE,
	"}":  RBRACE,
	":":  COLON,
	"&":  AMPERSAND,
	";":  SEMICOLON,
	`\`:  BACKSLASH,
}

// MaxOperatorLen is the length of the longest spelling in Operators.
const MaxOperatorLen = 2

// Token represents a lexical token with position information.
//
// Literal holds the source spelling, except for STRING and QUOTED_IDENT
// where it holds the unescaped body. Keyword holds the canonical upper-case
// spelling of a KEYWORD token and is empty otherwise.
type Token struct {
	Type    TokenType
	Literal string
	Keyword string
	Pos     Position
}

// IsWord reports whether the token spells the word w, either as a reserved
// keyword or as an unquoted identifier (a soft keyword).
func (t Token) IsWord(w string) bool {
	switch t.Type {
	case KEYWORD:
		return t.Keyword == w
	case IDENT:
		return strings.EqualFold(t.Literal, w)
	default:
		return false
	}
}

// IsWhitespace returns true for whitespace and comment tokens.
func (t Token) IsWhitespace() bool {
	return t.Type == WHITESPACE
}

// Raw returns the source text the token was scanned from.
func (t Token) Raw() string {
	switch t.Type {
	case STRING:
		return "'" + strings.ReplaceAll(t.Literal, "'", "''") + "'"
	case QUOTED_IDENT:
		return `"` + strings.ReplaceAll(t.Literal, `"`, `""`) + `"`
	default:
		return t.Literal
	}
}

// String describes the token for error messages.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case KEYWORD:
		return "keyword " + t.Keyword
	case IDENT, QUOTED_IDENT, NUMBER, STRING:
		return fmt.Sprintf("%s %s", strings.ToLower(t.Type.String()), t.Raw())
	case WHITESPACE:
		return "whitespace"
	case COPY_DATA:
		return "COPY data"
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}
