package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/internal/cli"
	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/testutil"
)

// run executes the sqlfront root command in-process.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	root := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestParse_JSON(t *testing.T) {
	out, _, err := run(t, "SELECT a FROM t; DELETE FROM t", "-o", "json", "parse")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "SelectStmt", docs[0]["node"])
	assert.Equal(t, "DeleteStmt", docs[1]["node"])
}

func TestParse_YAML(t *testing.T) {
	out, _, err := run(t, "SELECT a FROM t", "-o", "text", "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "node: SelectStmt")
	assert.NotContains(t, out, "```")

	out, _, err = run(t, "SELECT a FROM t", "-o", "markdown", "parse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "```yaml\n"), out)
}

func TestParse_ReportsErrorWithSource(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"bad.sql": "SELECT a FROM"})

	_, _, err := run(t, "", "parse", filepath.Join(dir, "bad.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.sql: syntax error at line 1")
}

func TestUnknownDialect(t *testing.T) {
	_, _, err := run(t, "SELECT 1", "-d", "oracle", "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)
	assert.Contains(t, err.Error(), "postgres")
}

func TestFmt_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name:  "canonical",
			stdin: "select a,b from t where a=1",
			args:  []string{"fmt"},
			want:  "SELECT a, b FROM t WHERE a = 1;\n",
		},
		{
			name:  "transpile",
			stdin: "CREATE TABLE t (id INT PRIMARY KEY UNIQUE NOT NULL DEFAULT 1)",
			args:  []string{"fmt", "--to", "postgres"},
			want:  "CREATE TABLE t (id INT DEFAULT 1 NOT NULL UNIQUE PRIMARY KEY);\n",
		},
		{
			name:  "target dialect from flag",
			stdin: "CREATE TABLE t (id INT PRIMARY KEY UNIQUE NOT NULL DEFAULT 1)",
			args:  []string{"--target-dialect", "postgres", "fmt"},
			want:  "CREATE TABLE t (id INT DEFAULT 1 NOT NULL UNIQUE PRIMARY KEY);\n",
		},
		{
			name:  "pretty",
			stdin: "SELECT a, b FROM t; DELETE FROM t",
			args:  []string{"fmt", "--pretty"},
			want:  "SELECT\n  a,\n  b\nFROM t;\n\nDELETE FROM t;\n",
		},
		{
			name:  "copy",
			stdin: "COPY t (a) FROM stdin;\n1\n\\.\n",
			args:  []string{"-d", "postgres", "fmt"},
			want:  "COPY t (a) FROM stdin; \n1\n\\.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.stdin, append([]string{"-o", "text"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFmt_Unsupported(t *testing.T) {
	_, _, err := run(t, "COPY t FROM stdin;\n1\n\\.\n", "fmt", "--to", "ansi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot render COPY")
}

func TestFmt_Check(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"clean.sql": "SELECT a FROM t;\n",
		"messy.sql": "select a from t",
	})

	out, _, err := run(t, "", "-o", "text", "fmt", "--check", filepath.Join(dir, "clean.sql"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 file(s) formatted")

	out, _, err = run(t, "", "-o", "text", "fmt", "--check", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "messy.sql")
	assert.NotContains(t, out, "clean.sql")
}

func TestFmt_Write(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.sql":     "select a from t",
		"sub/b.sql": "DELETE FROM t;\n",
	})

	out, _, err := run(t, "", "-o", "text", "fmt", "--write", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "formatted "+filepath.Join(dir, "a.sql"))
	assert.NotContains(t, out, "b.sql")

	assert.Equal(t, "SELECT a FROM t;\n", testutil.ReadFile(t, filepath.Join(dir, "a.sql")))
	assert.Equal(t, "DELETE FROM t;\n", testutil.ReadFile(t, filepath.Join(dir, "sub", "b.sql")))
}

func TestFmt_FlagErrors(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"a.sql": "SELECT 1;\n"})

	_, _, err := run(t, "SELECT 1", "fmt", "--write")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "need file arguments")

	_, _, err = run(t, "", "fmt", "--check", "--write", filepath.Join(dir, "a.sql"))
	require.Error(t, err)

	_, _, err = run(t, "", "fmt", filepath.Join(dir, "missing.sql"))
	require.Error(t, err)
}

func TestFmt_MultipleFiles(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.sql": "select 1",
		"b.sql": "select 2",
	})

	out, _, err := run(t, "", "-o", "json", "fmt", dir)
	require.NoError(t, err)

	var results []struct {
		File    string `json:"file"`
		SQL     string `json:"sql"`
		Changed bool   `json:"changed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "a.sql"), results[0].File)
	assert.Equal(t, "SELECT 2;\n", results[1].SQL)
	assert.True(t, results[1].Changed)
}

func TestTokens(t *testing.T) {
	type row struct {
		Type    string `json:"type"`
		Text    string `json:"text"`
		Keyword string `json:"keyword"`
	}
	tokens := func(t *testing.T, args ...string) []row {
		t.Helper()
		out, _, err := run(t, "SELECT parquet FROM t", append([]string{"-o", "json"}, args...)...)
		require.NoError(t, err)
		var rows []row
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		return rows
	}

	generic := tokens(t, "tokens")
	require.Len(t, generic, 4)
	assert.Equal(t, row{Type: "KEYWORD", Text: "parquet", Keyword: "PARQUET"}, generic[1])

	pg := tokens(t, "-d", "postgres", "tokens")
	require.Len(t, pg, 4)
	assert.Equal(t, row{Type: "IDENT", Text: "parquet"}, pg[1])

	all := tokens(t, "tokens", "--all")
	assert.Len(t, all, 7)
}

func TestTokens_Table(t *testing.T) {
	out, _, err := run(t, "SELECT a", "-o", "text", "tokens")
	require.NoError(t, err)
	assert.Contains(t, out, "KEYWORD")
	assert.Contains(t, out, `"SELECT"`)
	assert.Contains(t, out, "1:8")
	testutil.AssertNoANSI(t, out)
}

func TestTokens_LexError(t *testing.T) {
	_, _, err := run(t, "SELECT #", "tokens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lexer error at line 1, column 8")
}

func TestCheck(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"good.sql": "SELECT 1; SELECT 2;",
		"bad.sql":  "SELECT FROM WHERE",
		"lex.sql":  "SELECT #",
	})

	out, _, err := run(t, "", "-o", "text", "-j", "2", "check", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 file(s)")
	assert.Contains(t, out, "✓ "+filepath.Join(dir, "good.sql")+": 2 statement(s)")
	assert.Contains(t, out, "✗ "+filepath.Join(dir, "bad.sql")+": syntax error")
	assert.Contains(t, out, "✗ "+filepath.Join(dir, "lex.sql")+": lexer error")

	out, _, err = run(t, "", "check", filepath.Join(dir, "good.sql"))
	require.NoError(t, err)
	assert.Contains(t, out, "2 statement(s)")
}

func TestCheck_JSON(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.sql": "SELECT 1;",
		"b.sql": "SELECT",
	})

	out, _, err := run(t, "", "-o", "json", "check", dir)
	require.Error(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, float64(1), results[0]["statements"])
	assert.NotContains(t, results[0], "error")
	assert.Contains(t, results[1], "error")
}

func TestCheck_Verify(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"sqlfront.yaml": "verify:\n  type: sqlite\n  path: \":memory:\"\n",
		"ok.sql":        "SELECT 1;\nCOPY t FROM stdin;\n1\n\\.\n",
		"missing.sql":   "SELECT a FROM missing_table;",
	})
	cfg := filepath.Join(dir, "sqlfront.yaml")

	out, _, err := run(t, "", "--config", cfg, "-o", "text", "check", "--verify", filepath.Join(dir, "ok.sql"))
	require.NoError(t, err)
	assert.Contains(t, out, "statement 2 skipped")

	out, _, err = run(t, "", "--config", cfg, "-o", "text", "check", "--verify", filepath.Join(dir, "missing.sql"))
	require.Error(t, err)
	assert.Contains(t, out, "missing_table")
}

func TestCheck_VerifyNeedsConfig(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"a.sql": "SELECT 1;"})

	_, _, err := run(t, "", "check", "--verify", filepath.Join(dir, "a.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify.type")
}

func TestDialects(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "dialects")
	require.NoError(t, err)

	var infos []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	byName := map[string]map[string]any{}
	for _, info := range infos {
		byName[info["name"].(string)] = info
	}
	require.Contains(t, byName, "postgres")
	assert.Equal(t, "Postgres", byName["postgres"]["title"])
	assert.Greater(t, byName["postgres"]["keywords"], float64(0))
	assert.NotContains(t, byName["postgres"], "words")
}

func TestDialects_Keywords(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "dialects", "POSTGRES", "--keywords")
	require.NoError(t, err)

	var infos []struct {
		Name  string   `json:"name"`
		Words []string `json:"words"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "postgres", infos[0].Name)
	assert.Contains(t, infos[0].Words, "COPY")
	assert.NotContains(t, infos[0].Words, "PARQUET")

	out, _, err = run(t, "", "-o", "text", "dialects", "generic", "-k")
	require.NoError(t, err)
	assert.Contains(t, out, "Generic keywords")
	assert.Contains(t, out, "PARQUET")

	_, _, err = run(t, "", "dialects", "oracle")
	assert.Error(t, err)
}

func TestConfigFileDialect(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"sqlfront.yaml": "dialect: postgres\noutput: text\n",
	})
	cfg := filepath.Join(dir, "sqlfront.yaml")

	out, _, err := run(t, "SELECT 'x'::regclass", "--config", cfg, "fmt")
	require.NoError(t, err)
	assert.Equal(t, "SELECT CAST('x' AS REGCLASS);\n", out)
}

func TestVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := run(t, "SELECT 1", "-v", "-o", "text", "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "SelectStmt")
	assert.Contains(t, errOut, "level=DEBUG")
	assert.NotContains(t, out, "level=DEBUG")
}

func TestCompletion(t *testing.T) {
	out, _, err := run(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlfront")
}

func TestMain(m *testing.M) {
	// Keep config discovery away from any sqlfront.yaml above the repo.
	dir, err := os.MkdirTemp("", "sqlfront-commands")
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
