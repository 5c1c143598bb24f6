// Package postgres provides a PostgreSQL verifier backed by pgx.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/sqlfront/pkg/adapter"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "postgres"
}

// Connect establishes a connection to PostgreSQL.
// cfg.DSN is used as given; without it a key=value DSN is built from
// cfg.Options.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildPostgresDSN(cfg.Options)
	}

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("invalid postgres DSN: %w", err)
	}
	a.Logger.Debug("connecting to postgres",
		slog.String("host", connConfig.Host),
		slog.String("database", connConfig.Database))

	db := stdlib.OpenDB(*connConfig)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// dsnDefaults are applied when Options leaves a key unset.
var dsnDefaults = map[string]string{
	"host":    "localhost",
	"port":    "5432",
	"sslmode": "disable",
}

// buildPostgresDSN constructs a key=value connection string. Keys are
// written in sorted order; values containing spaces are quoted.
func buildPostgresDSN(options map[string]string) string {
	merged := make(map[string]string, len(dsnDefaults)+len(options))
	for k, v := range dsnDefaults {
		merged[k] = v
	}
	for k, v := range options {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+quoteDSNValue(merged[k]))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
