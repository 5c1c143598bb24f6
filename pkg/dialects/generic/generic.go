// Package generic provides the generic SQL dialect: the baseline rendering
// with a permissive keyword set that also reserves the Hive-style external
// table words.
package generic

import (
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
)

func init() {
	dialect.Register(Generic)
}

// Keywords added on top of keyword.Core.
var Keywords = []string{
	keyword.PARQUET, keyword.LOCATION, keyword.HEADER, keyword.OBJECT,
}

// Dialect is the generic SQL dialect. Every hook is the baseline.
type Dialect struct {
	*dialect.Base
}

// Generic is the registered generic dialect.
var Generic = &Dialect{
	Base: dialect.NewBase("generic").
		Keywords(keyword.Core, Keywords).
		Build(),
}
