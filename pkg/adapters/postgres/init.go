// Package postgres provides a PostgreSQL verifier backed by pgx.
//
// This file registers the PostgreSQL adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/sqlfront/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/sqlfront/pkg/adapter"

	// Statements are rendered in the postgres dialect before verification.
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
)

func init() {
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
