package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
)

// ErrNotConnected is returned by operations that need an open connection.
var ErrNotConnected = errors.New("database connection not established")

// copySkipReason explains why COPY statements are never sent to a database.
const copySkipReason = "COPY ... FROM stdin carries inline data and cannot be prepared"

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and Verify implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		b.logger().Debug("closing database connection")
		return b.DB.Close()
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// Verify prepares sqlStr and closes the prepared statement again.
func (b *BaseSQLAdapter) Verify(ctx context.Context, sqlStr string) (Result, error) {
	if b.DB == nil {
		return Result{}, ErrNotConnected
	}

	stmt, err := b.DB.PrepareContext(ctx, sqlStr)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("verify: %w", ctxErr)
		}
		b.logger().Debug("statement refused", slog.String("sql", sqlStr), slog.String("error", err.Error()))
		return Result{SQL: sqlStr, Status: core.VerifyFailed, Reason: err.Error()}, nil
	}
	if err := stmt.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to close prepared statement: %w", err)
	}
	return Result{SQL: sqlStr, Status: core.VerifyOK}, nil
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// VerifyStatement renders stmt in the adapter's dialect and verifies it.
// COPY statements are reported as skipped without touching the database.
func VerifyStatement(ctx context.Context, a Adapter, stmt core.Stmt) (Result, error) {
	d, ok := dialect.Get(a.DialectName())
	if !ok {
		return Result{}, fmt.Errorf("adapter dialect %q is not registered", a.DialectName())
	}
	text, err := format.Render(stmt, d)
	if err != nil {
		return Result{}, fmt.Errorf("render for %s: %w", d.Name(), err)
	}
	if _, isCopy := stmt.(*core.CopyStmt); isCopy {
		return Result{SQL: text, Status: core.VerifySkipped, Reason: copySkipReason}, nil
	}
	return a.Verify(ctx, text)
}

// VerifyAll verifies statements in order and stops at the first
// connection error. Statements the database refuses do not stop the run.
func VerifyAll(ctx context.Context, a Adapter, stmts []core.Stmt) ([]Result, error) {
	results := make([]Result, 0, len(stmts))
	for _, stmt := range stmts {
		res, err := VerifyStatement(ctx, a, stmt)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
