package ansi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

func TestANSI_Identifiers(t *testing.T) {
	assert.False(t, ansi.ANSI.IsIdentifierStart('@'))
	assert.False(t, ansi.ANSI.IsIdentifierStart('_'))
	assert.True(t, ansi.ANSI.IsIdentifierPart('_'))
	assert.False(t, ansi.ANSI.IsIdentifierPart('@'))
}

func TestANSI_RendersStandardStatements(t *testing.T) {
	sql := "SELECT a, b FROM t WHERE a BETWEEN 1 AND 2 ORDER BY b DESC"
	stmt, err := parser.ParseSQL(sql, ansi.ANSI)
	require.NoError(t, err)

	got, err := format.Render(stmt, ansi.ANSI)
	require.NoError(t, err)
	assert.Equal(t, sql, got)
}

func TestANSI_RefusesNonStandardConstructs(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		construct string
	}{
		{"copy", "COPY t FROM stdin;\n1\n\\.", "COPY ... FROM STDIN"},
		{"plain key", "ALTER TABLE t ADD CONSTRAINT k KEY (a)", "KEY table constraint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := parser.ParseSQL(tt.sql, postgres.Postgres)
			require.NoError(t, err)

			_, err = format.Render(stmt, ansi.ANSI)
			require.ErrorIs(t, err, dialect.ErrUnsupported)
			var unsupported *dialect.UnsupportedError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tt.construct, unsupported.Construct)

			_, err = format.Render(stmt, postgres.Postgres)
			assert.NoError(t, err)
		})
	}
}
