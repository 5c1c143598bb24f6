// Package postgres provides the PostgreSQL SQL dialect definition.
// This package is pure Go with no database driver dependencies; the live
// verifier lives in pkg/adapters/postgres.
package postgres

import (
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
)

func init() {
	dialect.Register(Postgres)
}

// Keywords added on top of keyword.Core.
var Keywords = []string{
	keyword.ALTER, keyword.ONLY, keyword.VALUES, keyword.DEFAULT,
	keyword.ZONE, keyword.REGCLASS, keyword.TEXT, keyword.BYTEA,
	keyword.TRUE, keyword.FALSE, keyword.COPY, keyword.STDIN,
	keyword.PRIMARY, keyword.KEY, keyword.UNIQUE, keyword.UUID,
	keyword.ADD, keyword.CONSTRAINT, keyword.FOREIGN, keyword.REFERENCES,
}

// Dialect is the PostgreSQL dialect. It shares the baseline rendering
// except for column definitions.
type Dialect struct {
	*dialect.Base
}

// Postgres is the registered PostgreSQL dialect.
var Postgres = &Dialect{
	Base: dialect.NewBase("postgres").
		Keywords(keyword.Core, Keywords).
		Build(),
}

// RenderColumnDef writes column constraints in the order pg_dump emits them:
// name type [DEFAULT e] [NOT NULL] [UNIQUE] [PRIMARY KEY].
func (d *Dialect) RenderColumnDef(r spi.RenderOps, c *core.ColumnDef) (string, error) {
	name, typ, err := dialect.ColumnNameAndType(r, c)
	if err != nil {
		return "", err
	}

	parts := []string{name, typ}
	if c.Default != nil {
		def, err := r.Render(c.Default)
		if err != nil {
			return "", err
		}
		parts = append(parts, "DEFAULT", def)
	}
	if !c.AllowNull {
		parts = append(parts, "NOT NULL")
	}
	if c.IsUnique {
		parts = append(parts, "UNIQUE")
	}
	if c.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
	}
	return strings.Join(parts, " "), nil
}

var _ dialect.Dialect = (*Dialect)(nil)
