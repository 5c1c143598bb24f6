package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/leapstack-labs/sqlfront/internal/astdump"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Request is the body of every POST endpoint.
type Request struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect,omitempty"` // source; server default when empty
	To      string `json:"to,omitempty"`      // output; source when empty
	Pretty  bool   `json:"pretty,omitempty"`
}

// ParseResponse is returned by POST /v1/parse.
type ParseResponse struct {
	Dialect    string           `json:"dialect"`
	Statements []astdump.Object `json:"statements"`
}

// FormatResponse is returned by POST /v1/format.
type FormatResponse struct {
	Dialect    string `json:"dialect"`
	To         string `json:"to"`
	Statements int    `json:"statements"`
	SQL        string `json:"sql"`
}

// Token is one entry of TokensResponse.
type Token struct {
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Keyword string   `json:"keyword,omitempty"`
	Pos     Position `json:"pos"`
}

// TokensResponse is returned by POST /v1/tokens.
type TokensResponse struct {
	Dialect string  `json:"dialect"`
	Tokens  []Token `json:"tokens"`
}

// DialectInfo describes a registered dialect.
type DialectInfo struct {
	Name     string `json:"name"`
	Keywords int    `json:"keywords"`
}

// DialectsResponse is returned by GET /v1/dialects.
type DialectsResponse struct {
	Default  string        `json:"default"`
	Dialects []DialectInfo `json:"dialects"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDialects(w http.ResponseWriter, _ *http.Request) {
	resp := DialectsResponse{Default: s.dialect}
	for _, name := range dialect.List() {
		resp.Dialects = append(resp.Dialects, DialectInfo{
			Name:     name,
			Keywords: dialect.MustGet(name).Keywords().Len(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, src, ok := s.decode(w, r)
	if !ok {
		return
	}
	stmts, err := parser.ParseScript(req.SQL, src)
	if err != nil {
		fail(w, r, err)
		return
	}
	docs, err := astdump.DumpAll(stmts, src)
	if err != nil {
		fail(w, r, err)
		return
	}
	if docs == nil {
		docs = []astdump.Object{}
	}
	writeJSON(w, http.StatusOK, ParseResponse{Dialect: src.Name(), Statements: docs})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	req, src, ok := s.decode(w, r)
	if !ok {
		return
	}
	dst := src
	if req.To != "" {
		d, err := lookupDialect(req.To)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, requestError("%v", err))
			return
		}
		dst = d
	}

	stmts, err := parser.ParseScript(req.SQL, src)
	if err != nil {
		fail(w, r, err)
		return
	}
	out, err := renderScript(stmts, dst, req.Pretty)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, FormatResponse{
		Dialect:    src.Name(),
		To:         dst.Name(),
		Statements: len(stmts),
		SQL:        out,
	})
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	req, src, ok := s.decode(w, r)
	if !ok {
		return
	}
	toks, err := parser.Tokenize(req.SQL, src)
	if err != nil {
		fail(w, r, err)
		return
	}
	resp := TokensResponse{Dialect: src.Name(), Tokens: make([]Token, 0, len(toks))}
	for _, tok := range toks {
		if tok.Type == token.EOF || tok.IsWhitespace() {
			continue
		}
		resp.Tokens = append(resp.Tokens, Token{
			Type:    tok.Type.String(),
			Text:    tok.Raw(),
			Keyword: tok.Keyword,
			Pos:     *position(tok.Pos),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode reads the request body and resolves its source dialect. On
// failure the error response is already written.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*Request, dialect.Dialect, bool) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, requestError("body exceeds %d bytes", maxErr.Limit))
			return nil, nil, false
		}
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		writeError(w, r, http.StatusBadRequest, requestError("invalid request body: %v", err))
		return nil, nil, false
	}

	name := req.Dialect
	if name == "" {
		name = s.dialect
	}
	d, err := lookupDialect(name)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, requestError("%v", err))
		return nil, nil, false
	}
	return &req, d, true
}

func lookupDialect(name string) (dialect.Dialect, error) {
	d, ok := dialect.Get(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %s)", name, strings.Join(dialect.List(), ", "))
	}
	return d, nil
}

func renderScript(stmts []core.Stmt, d dialect.Dialect, pretty bool) (string, error) {
	if pretty {
		return format.PrettyScript(stmts, d)
	}
	return format.Script(stmts, d)
}
