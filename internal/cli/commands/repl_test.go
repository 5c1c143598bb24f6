package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	_ "github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
)

func newSession() (*replSession, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	s := &replSession{
		src:    dialect.MustGet("generic"),
		dst:    dialect.MustGet("generic"),
		out:    &out,
		errOut: &errOut,
	}
	return s, &out, &errOut
}

func feedAll(s *replSession, lines ...string) bool {
	for _, line := range lines {
		if s.feed(line) {
			return true
		}
	}
	return false
}

func TestREPL_MultiLineStatement(t *testing.T) {
	s, out, errOut := newSession()

	assert.False(t, feedAll(s, "select a,", "  b from t"))
	assert.Empty(t, out.String(), "no output before the semicolon")
	assert.Positive(t, s.buf.Len())

	assert.False(t, s.feed("where a=1;"))
	assert.Equal(t, "SELECT a, b FROM t WHERE a = 1;\n", out.String())
	assert.Empty(t, errOut.String())
	assert.Zero(t, s.buf.Len())
}

func TestREPL_CopyWaitsForTerminator(t *testing.T) {
	s, out, _ := newSession()

	feedAll(s, "COPY t (a) FROM stdin;", "1")
	assert.Empty(t, out.String())

	s.feed(`\.`)
	assert.Equal(t, "COPY t (a) FROM stdin; \n1\n\\.\n", out.String())
}

func TestREPL_Errors(t *testing.T) {
	s, out, errOut := newSession()

	s.feed("SELECT FROM;")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error: syntax error")

	errOut.Reset()
	s.feed("SELECT 1;")
	assert.Equal(t, "SELECT 1;\n", out.String(), "session continues after an error")
	assert.Empty(t, errOut.String())
}

func TestREPL_DotCommands(t *testing.T) {
	s, out, errOut := newSession()

	s.feed(".to postgres")
	assert.Equal(t, "postgres", s.dst.Name())

	out.Reset()
	s.feed(".to")
	assert.Equal(t, "postgres\n", out.String())

	s.feed(".dialect POSTGRES")
	assert.Equal(t, "postgres", s.src.Name())

	s.feed(".dialect oracle")
	assert.Contains(t, errOut.String(), `unknown dialect "oracle"`)
	assert.Equal(t, "postgres", s.src.Name())

	out.Reset()
	s.feed(".pretty")
	assert.True(t, s.pretty)
	assert.Equal(t, "pretty: on\n", out.String())
	s.feed(".pretty off")
	assert.False(t, s.pretty)

	errOut.Reset()
	s.feed(".bogus")
	assert.Contains(t, errOut.String(), "Unknown command: .bogus")

	out.Reset()
	s.feed(".help")
	assert.Contains(t, out.String(), ".pretty")

	assert.True(t, s.feed(".quit"))
	assert.True(t, s.feed(".EXIT"))
}

func TestREPL_Pretty(t *testing.T) {
	s, out, _ := newSession()

	s.feed(".pretty on")
	out.Reset()
	s.feed("SELECT a, b FROM t;")
	assert.Equal(t, "SELECT\n  a,\n  b\nFROM t;\n", out.String())
}

func TestREPL_DotInsideStatementIsSQL(t *testing.T) {
	s, _, errOut := newSession()

	s.feed("SELECT t")
	assert.False(t, s.feed(".quit"), "dot-commands only apply to an empty buffer")
	assert.Empty(t, errOut.String())
}

func TestKeywordCompleter(t *testing.T) {
	c := newKeywordCompleter(dialect.MustGet("postgres"))
	require.NotNil(t, c)

	names := map[string]bool{}
	for _, child := range c.GetChildren() {
		names[string(child.GetName())] = true
	}
	assert.True(t, names[".dialect "])
	assert.True(t, names["COPY "])
	assert.False(t, names["PARQUET "])
}
