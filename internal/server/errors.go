package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// Error kinds reported to clients.
const (
	KindLex         = "lex"
	KindSyntax      = "syntax"
	KindUnsupported = "unsupported"
	KindRequest     = "request"
)

// Position locates an error in the submitted SQL.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Pos       *Position `json:"pos,omitempty"`
	Expected  string    `json:"expected,omitempty"`
	Found     string    `json:"found,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func requestError(format string, args ...any) ErrorBody {
	return ErrorBody{Kind: KindRequest, Message: fmt.Sprintf(format, args...)}
}

func position(p token.Position) *Position {
	return &Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

// classify maps a pipeline error to a status and body.
func classify(err error) (int, ErrorBody) {
	var lexErr *parser.LexError
	var synErr *parser.SyntaxError
	var unsErr *dialect.UnsupportedError

	switch {
	case errors.As(err, &lexErr):
		return http.StatusUnprocessableEntity, ErrorBody{
			Kind:    KindLex,
			Message: lexErr.Error(),
			Pos:     position(lexErr.Pos),
		}
	case errors.As(err, &synErr):
		return http.StatusUnprocessableEntity, ErrorBody{
			Kind:     KindSyntax,
			Message:  synErr.Error(),
			Pos:      position(synErr.Pos),
			Expected: synErr.Expected,
			Found:    synErr.Found.Raw(),
		}
	case errors.As(err, &unsErr):
		return http.StatusUnprocessableEntity, ErrorBody{
			Kind:    KindUnsupported,
			Message: unsErr.Error(),
		}
	default:
		return http.StatusBadRequest, requestError("%v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorBody) {
	body.RequestID = RequestID(r.Context())
	writeJSON(w, status, ErrorResponse{Error: body})
}

// fail writes err as classified by classify.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	writeError(w, r, status, body)
}
