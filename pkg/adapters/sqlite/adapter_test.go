package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/adapter"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

func TestPragmas(t *testing.T) {
	assert.Empty(t, pragmas(nil))
	assert.Equal(t,
		[]string{"PRAGMA busy_timeout = 500", "PRAGMA foreign_keys = ON"},
		pragmas(map[string]string{"foreign_keys": "ON", "busy_timeout": "500"}))
}

func TestAdapter_Registered(t *testing.T) {
	adp, err := adapter.NewAdapter(adapter.Config{Type: "sqlite"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "generic", adp.DialectName())
}

func TestAdapter_ConnectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.db")
	adp := New(nil)
	require.NoError(t, adp.Connect(context.Background(), adapter.Config{
		Path:    path,
		Options: map[string]string{"foreign_keys": "ON"},
	}))
	defer adp.Close()

	var fk int
	require.NoError(t, adp.DB.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestAdapter_ConnectBadPragma(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), adapter.Config{Options: map[string]string{"journal_mode": "'"}})
	assert.Error(t, err)
	assert.False(t, adp.IsConnected())
}

func TestAdapter_VerifyScript(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, adapter.Config{}))
	defer adp.Close()

	_, err := adp.DB.ExecContext(ctx, "CREATE TABLE customer (id INTEGER PRIMARY KEY, name TEXT)")
	require.NoError(t, err)

	stmts, err := parser.ParseScript(
		"SELECT id, name FROM customer WHERE id = 1;\n"+
			"UPDATE customer SET name = 'x' WHERE id = 2;\n"+
			"DELETE FROM orders;\n",
		generic.Generic)
	require.NoError(t, err)

	results, err := adapter.VerifyAll(ctx, adp, stmts)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, core.VerifyOK, results[0].Status)
	assert.Equal(t, core.VerifyOK, results[1].Status)
	assert.Equal(t, core.VerifyFailed, results[2].Status)
	assert.Contains(t, results[2].Reason, "orders")
}
