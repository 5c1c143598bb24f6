package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// copyState tracks a COPY ... FROM STDIN command so that the data lines
// after it are read raw instead of as SQL.
type copyState int

const (
	copyNone    copyState = iota
	copyCommand           // COPY seen at the start of a statement
	copyStdin             // last significant token was STDIN
	copyPending           // ";" after STDIN, data starts after the line break
	copyData              // inside the data block
)

// Lexer tokenizes SQL input for one dialect.
type Lexer struct {
	input   string
	pos     int  // byte offset of ch
	readPos int  // byte offset after ch
	ch      rune // current char under examination
	line    int  // line of ch (1-based)
	col     int  // column of ch in runes (1-based)

	dialect dialect.Dialect

	stmtStart bool // no significant token since the last statement ended
	copy      copyState
}

// NewLexer creates a Lexer for the given input. The dialect decides
// identifier characters and reserved words.
func NewLexer(input string, d dialect.Dialect) *Lexer {
	l := &Lexer{
		input:     input,
		line:      1,
		col:       1,
		dialect:   d,
		stmtStart: true,
	}
	l.decode()
	return l
}

// Tokenize scans src into tokens, ending with a single EOF token.
// Whitespace and comments are kept as WHITESPACE tokens. The first
// unrecognizable character aborts the scan with a *LexError.
func Tokenize(src string, d dialect.Dialect) ([]token.Token, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	l := NewLexer(src, d)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// decode loads the rune at readPos into ch.
func (l *Lexer) decode() {
	l.pos = l.readPos
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.readPos = l.pos + w
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.eof() {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.decode()
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
//
// After COPY ... FROM STDIN ; and its line break, the lines up to one that
// starts with \. are returned unscanned as a single COPY_DATA token,
// followed by a COPY_END token for the \. itself.
func (l *Lexer) NextToken() (token.Token, error) {
	if l.copy == copyPending && !l.eof() && l.ch != ' ' && l.ch != '\n' && l.ch != '\r' {
		l.copy = copyData
	}
	if l.copy == copyData {
		return l.readCopyData(), nil
	}
	tok, err := l.scan()
	if err != nil {
		return token.Token{}, err
	}
	l.track(tok)
	return tok, nil
}

// track advances the COPY state machine past tok.
func (l *Lexer) track(tok token.Token) {
	if tok.IsWhitespace() {
		if l.copy == copyPending && isLineBreak(tok.Literal) {
			l.copy = copyData
		}
		return
	}
	switch {
	case tok.Type == token.SEMICOLON:
		if l.copy == copyStdin {
			l.copy = copyPending
		} else {
			l.copy = copyNone
		}
		l.stmtStart = true
		return
	case l.stmtStart && tok.IsWord(keyword.COPY):
		l.copy = copyCommand
	case (l.copy == copyCommand || l.copy == copyStdin) && tok.IsWord(keyword.STDIN):
		l.copy = copyStdin
	case l.copy == copyStdin:
		l.copy = copyCommand
	}
	l.stmtStart = false
}

// readCopyData reads raw lines until a line starting with \. and returns
// them as one COPY_DATA token. At the \. line it returns COPY_END. Data
// running to the end of input is returned as COPY_DATA, then EOF.
func (l *Lexer) readCopyData() token.Token {
	pos := l.currentPos()
	start := l.pos
	for !l.eof() && !l.atCopyEnd() {
		for !l.eof() && l.ch != '\n' {
			l.readChar()
		}
		l.readChar()
	}
	if l.pos > start {
		return token.Token{Type: token.COPY_DATA, Literal: l.input[start:l.pos], Pos: pos}
	}
	l.copy = copyNone
	if l.eof() {
		return token.Token{Type: token.EOF, Pos: pos}
	}
	l.readChar() // \
	l.readChar() // .
	l.stmtStart = true
	return token.Token{Type: token.COPY_END, Literal: `\.`, Pos: pos}
}

// atCopyEnd reports whether the line at the cursor is the end-of-data
// marker: \. alone, or followed by spaces or a semicolon.
func (l *Lexer) atCopyEnd() bool {
	rest := l.input[l.pos:]
	if !strings.HasPrefix(rest, `\.`) {
		return false
	}
	if len(rest) == 2 {
		return true
	}
	switch rest[2] {
	case '\n', '\r', ' ', ';':
		return true
	}
	return false
}

func isLineBreak(s string) bool {
	return s == "\n" || s == "\r\n" || s == "\r"
}

// scan reads one SQL token.
func (l *Lexer) scan() (token.Token, error) {
	pos := l.currentPos()
	start := l.pos

	if l.eof() {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}

	switch ch := l.ch; {
	case ch == ' ':
		for l.ch == ' ' && !l.eof() {
			l.readChar()
		}
		return l.whitespace(start, pos), nil

	case ch == '\r' && l.peekChar() == '\n':
		l.readChar()
		l.readChar()
		return l.whitespace(start, pos), nil

	case ch == '\n' || ch == '\t' || ch == '\r' || unicode.IsSpace(ch):
		l.readChar()
		return l.whitespace(start, pos), nil

	case ch == '-' && l.peekChar() == '-':
		for !l.eof() && l.ch != '\n' {
			l.readChar()
		}
		return l.whitespace(start, pos), nil

	case ch == '/' && l.peekChar() == '*':
		return l.readBlockComment(start, pos)

	case l.dialect.IsIdentifierStart(ch):
		return l.readWord(start, pos), nil

	case ch == '\'':
		body, err := l.readQuoted('\'', ErrUnterminatedString, pos)
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.STRING, Literal: body, Pos: pos}, nil

	case ch == '"':
		body, err := l.readQuoted('"', ErrUnterminatedIdent, pos)
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.QUOTED_IDENT, Literal: body, Pos: pos}, nil

	case isDigit(ch) || (ch == '.' && isDigit(l.peekChar())):
		return l.readNumber(start, pos), nil
	}

	if tok, ok := l.readOperator(pos); ok {
		return tok, nil
	}

	return token.Token{}, &LexError{
		Pos:     pos,
		Char:    l.ch,
		Message: fmt.Sprintf(ErrUnexpectedChar, l.ch),
	}
}

func (l *Lexer) whitespace(start int, pos token.Position) token.Token {
	return token.Token{Type: token.WHITESPACE, Literal: l.input[start:l.pos], Pos: pos}
}

// readBlockComment reads /* ... */ including the delimiters.
func (l *Lexer) readBlockComment(start int, pos token.Position) (token.Token, error) {
	l.readChar() // /
	l.readChar() // *
	for !l.eof() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return l.whitespace(start, pos), nil
		}
		l.readChar()
	}
	return token.Token{}, &LexError{Pos: pos, Char: '/', Message: ErrUnterminatedComment}
}

// readWord reads an identifier and classifies it against the dialect's
// reserved words.
func (l *Lexer) readWord(start int, pos token.Position) token.Token {
	for !l.eof() && l.dialect.IsIdentifierPart(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.pos]
	if canonical, ok := l.dialect.Keywords().Lookup(word); ok {
		return token.Token{Type: token.KEYWORD, Literal: word, Keyword: canonical, Pos: pos}
	}
	return token.Token{Type: token.IDENT, Literal: word, Pos: pos}
}

// readQuoted reads a quote-delimited body. A doubled quote is an escaped
// quote character.
func (l *Lexer) readQuoted(quote rune, msg string, pos token.Position) (string, error) {
	var sb strings.Builder
	l.readChar() // opening quote
	for {
		if l.eof() {
			return "", &LexError{Pos: pos, Char: quote, Message: msg}
		}
		if l.ch == quote {
			if l.peekChar() == quote {
				sb.WriteRune(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			return sb.String(), nil
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
}

// readNumber reads digits with at most one decimal point.
func (l *Lexer) readNumber(start int, pos token.Position) token.Token {
	for isDigit(l.ch) && !l.eof() {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) && !l.eof() {
			l.readChar()
		}
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

// readOperator matches the longest operator spelling at the current position.
func (l *Lexer) readOperator(pos token.Position) (token.Token, bool) {
	for n := token.MaxOperatorLen; n > 0; n-- {
		if l.pos+n > len(l.input) {
			continue
		}
		lit := l.input[l.pos : l.pos+n]
		if tt, ok := token.Operators[lit]; ok {
			for range utf8.RuneCountInString(lit) {
				l.readChar()
			}
			return token.Token{Type: tt, Literal: lit, Pos: pos}, true
		}
	}
	return token.Token{}, false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
