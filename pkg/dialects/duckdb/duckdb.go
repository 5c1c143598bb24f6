// Package duckdb provides the DuckDB SQL dialect definition.
// This package is pure Go with no database driver dependencies; the live
// verifier lives in pkg/adapters/duckdb.
package duckdb

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
)

func init() {
	dialect.Register(DuckDB)
}

// Keywords added on top of keyword.Core. Besides the words the grammar
// uses, DuckDB reserves its join and pivot vocabulary.
var Keywords = []string{
	keyword.VALUES, keyword.DEFAULT, keyword.TRUE, keyword.FALSE,
	keyword.COPY, keyword.STDIN, keyword.PRIMARY, keyword.KEY,
	keyword.UNIQUE, keyword.UUID, keyword.ADD, keyword.ALTER,
	keyword.CONSTRAINT, keyword.FOREIGN, keyword.REFERENCES, keyword.ZONE,
	keyword.QUALIFY, keyword.ILIKE, keyword.PIVOT, keyword.UNPIVOT,
	keyword.ASOF, keyword.POSITIONAL, keyword.SEMI, keyword.ANTI,
}

// Dialect is the DuckDB dialect.
type Dialect struct {
	*dialect.Base
}

// DuckDB is the registered DuckDB dialect. Identifiers may start with an
// underscore and contain $.
var DuckDB = &Dialect{
	Base: dialect.NewBase("duckdb").
		Keywords(keyword.Core, Keywords).
		IdentifierChars("_", "_$").
		UnicodeLetters().
		Build(),
}

// RenderTableKey refuses the plain KEY form, which DuckDB does not parse.
func (d *Dialect) RenderTableKey(r spi.RenderOps, k *core.TableKey) (string, error) {
	if k.Kind == core.Key {
		return "", dialect.Unsupported(d.Name(), "KEY table constraint")
	}
	return d.Base.RenderTableKey(r, k)
}

var _ dialect.Dialect = (*Dialect)(nil)
