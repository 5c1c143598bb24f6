package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

func TestPostgres_Registered(t *testing.T) {
	d, ok := dialect.Get("postgres")
	require.True(t, ok)
	assert.Same(t, postgres.Postgres, d)
	assert.Equal(t, "postgres", d.Name())
}

func TestPostgres_Keywords(t *testing.T) {
	kw := postgres.Postgres.Keywords()
	for _, w := range []string{"SELECT", "copy", "Stdin", "REGCLASS", "only", "BYTEA"} {
		assert.True(t, kw.Contains(w), w)
	}
	for _, w := range []string{"PARQUET", "LOCATION", "HEADER", "OBJECT", "SELECTOR"} {
		assert.False(t, kw.Contains(w), w)
	}
}

func TestPostgres_ColumnConstraintOrder(t *testing.T) {
	stmt, err := parser.ParseSQL(
		"CREATE TABLE t (id INT PRIMARY KEY UNIQUE NOT NULL DEFAULT 1)", postgres.Postgres)
	require.NoError(t, err)

	got, err := format.Render(stmt, postgres.Postgres)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t (id INT DEFAULT 1 NOT NULL UNIQUE PRIMARY KEY)", got)
}

func TestPostgres_DumpStatements(t *testing.T) {
	tests := []string{
		"CREATE TABLE public.actor (actor_id INT DEFAULT nextval(CAST('public.actor_actor_id_seq' AS REGCLASS)) NOT NULL, first_name VARCHAR(45) NOT NULL, last_update TIMESTAMP DEFAULT now() NOT NULL)",
		"ALTER TABLE ONLY public.actor ADD CONSTRAINT actor_pkey PRIMARY KEY (actor_id)",
		"SELECT CAST(a AS BYTEA), CAST(b AS UUID), CAST(c AS TEXT[]) FROM t",
	}

	for _, sql := range tests {
		t.Run(sql, func(t *testing.T) {
			stmt, err := parser.ParseSQL(sql, postgres.Postgres)
			require.NoError(t, err)
			got, err := format.Render(stmt, postgres.Postgres)
			require.NoError(t, err)
			assert.Equal(t, sql, got)
		})
	}
}

func TestPostgres_RegclassCast(t *testing.T) {
	stmt, err := parser.ParseSQL("SELECT nextval('public.seq'::regclass)", postgres.Postgres)
	require.NoError(t, err)
	got, err := format.Render(stmt, postgres.Postgres)
	require.NoError(t, err)
	assert.Equal(t, "SELECT nextval(CAST('public.seq' AS REGCLASS))", got)
}
