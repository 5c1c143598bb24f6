// Package ansi provides a strict ANSI SQL dialect.
//
// It reserves the SQL-92 words the grammar uses, accepts only letters at
// the start of an identifier, and refuses the non-standard constructs
// COPY ... FROM STDIN and plain KEY table constraints.
package ansi

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
)

func init() {
	dialect.Register(ANSI)
}

// Keywords added on top of keyword.Core.
var Keywords = []string{
	keyword.VALUES, keyword.DEFAULT, keyword.PRIMARY, keyword.KEY,
	keyword.UNIQUE, keyword.FOREIGN, keyword.REFERENCES, keyword.CONSTRAINT,
	keyword.ADD, keyword.ALTER, keyword.TRUE, keyword.FALSE, keyword.ZONE,
}

// Dialect is the ANSI dialect.
type Dialect struct {
	*dialect.Base
}

// ANSI is the registered ANSI dialect.
var ANSI = &Dialect{
	Base: dialect.NewBase("ansi").
		Keywords(keyword.Core, Keywords).
		IdentifierChars("", "_").
		Build(),
}

// RenderNode refuses COPY and delegates everything else to the baseline.
func (d *Dialect) RenderNode(r spi.RenderOps, n core.Node) (string, error) {
	if _, ok := n.(*core.CopyStmt); ok {
		return "", dialect.Unsupported(d.Name(), "COPY ... FROM STDIN")
	}
	return d.Base.RenderNode(r, n)
}

// RenderTableKey refuses the plain KEY form, which has no ANSI spelling.
func (d *Dialect) RenderTableKey(r spi.RenderOps, k *core.TableKey) (string, error) {
	if k.Kind == core.Key {
		return "", dialect.Unsupported(d.Name(), "KEY table constraint")
	}
	return d.Base.RenderTableKey(r, k)
}

var _ dialect.Dialect = (*Dialect)(nil)
