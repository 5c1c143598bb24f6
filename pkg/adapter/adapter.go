// Package adapter provides the live-database verifier contract.
//
// A verifier asks a real database engine to prepare each rendered
// statement, which checks that the engine accepts the SQL without
// executing it. Concrete backends are in pkg/adapters/ subdirectories and
// register themselves with Register in their init functions.
package adapter

import (
	"context"

	"github.com/leapstack-labs/sqlfront/pkg/core"
)

// Config is an alias for core.AdapterConfig.
type Config = core.AdapterConfig

// Result is an alias for core.VerifyResult.
type Result = core.VerifyResult

// Adapter defines the interface every verifier backend implements.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Verify asks the database to prepare sql. A statement the database
	// refuses is reported as a failed Result, not as an error; the error
	// is reserved for connection problems.
	Verify(ctx context.Context, sql string) (Result, error)

	// DialectName returns the registered dialect statements are rendered
	// in before they are sent to this database.
	DialectName() string
}
