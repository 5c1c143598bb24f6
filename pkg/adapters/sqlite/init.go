package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/sqlfront/pkg/adapter"

	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
)

func init() {
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
