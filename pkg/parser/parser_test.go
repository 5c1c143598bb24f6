package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/generic"
	"github.com/leapstack-labs/sqlfront/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

func mustParse(t *testing.T, sql string, d dialect.Dialect) core.Stmt {
	t.Helper()
	stmt, err := ParseSQL(sql, d)
	require.NoError(t, err, "parse %q", sql)
	require.NotNil(t, stmt)
	return stmt
}

func mustParseSelect(t *testing.T, sql string) *core.SelectStmt {
	t.Helper()
	stmt, ok := mustParse(t, sql, generic.Generic).(*core.SelectStmt)
	require.True(t, ok, "expected *core.SelectStmt")
	return stmt
}

func mustParseExpr(t *testing.T, src string) core.Expr {
	t.Helper()
	tokens, err := Tokenize(src, generic.Generic)
	require.NoError(t, err)
	p := NewParser(tokens)
	expr, err := p.ParseExpr()
	require.NoError(t, err, "parse %q", src)
	assert.Equal(t, token.EOF, p.peekToken().Type, "unconsumed input in %q", src)
	return expr
}

func syntaxError(t *testing.T, err error) *SyntaxError {
	t.Helper()
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	return synErr
}

func identName(t *testing.T, e core.Expr) string {
	t.Helper()
	id, ok := e.(*core.Identifier)
	require.True(t, ok, "expected *core.Identifier, got %T", e)
	return id.Name
}

// ---------- SELECT ----------

func TestParseSelect_Basic(t *testing.T) {
	stmt, ok := mustParse(t, "SELECT id, fname, lname FROM customer WHERE id = 1 LIMIT 5", postgres.Postgres).(*core.SelectStmt)
	require.True(t, ok)

	require.Len(t, stmt.Projection, 3)
	assert.Equal(t, "id", identName(t, stmt.Projection[0]))
	assert.Equal(t, "fname", identName(t, stmt.Projection[1]))
	assert.Equal(t, "lname", identName(t, stmt.Projection[2]))
	assert.Equal(t, []string{"customer"}, stmt.Relation.Names())

	where, ok := stmt.Selection.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.EQ, where.Op)
	assert.Equal(t, "id", identName(t, where.Left))
	assert.Equal(t, &core.Literal{Type: core.LiteralNumber, Value: "1", ValuePos: where.Right.Pos()}, where.Right)

	limit, ok := stmt.Limit.(*core.Literal)
	require.True(t, ok)
	assert.Equal(t, "5", limit.Value)
	assert.Nil(t, stmt.GroupBy)
	assert.Nil(t, stmt.Having)
	assert.Nil(t, stmt.OrderBy)
}

func TestParseSelect_ClausesAreIndependent(t *testing.T) {
	tests := []struct {
		sql                                          string
		from, where, groupBy, having, orderBy, limit bool
	}{
		{sql: "SELECT 1"},
		{sql: "SELECT a FROM t", from: true},
		{sql: "SELECT a WHERE a > 1", where: true},
		{sql: "SELECT a GROUP BY a", groupBy: true},
		{sql: "SELECT a HAVING a > 1", having: true},
		{sql: "SELECT a ORDER BY a", orderBy: true},
		{sql: "SELECT a LIMIT 1", limit: true},
		{sql: "SELECT a FROM t LIMIT 1", from: true, limit: true},
		{sql: "SELECT a WHERE a = 1 ORDER BY a", where: true, orderBy: true},
		{sql: "SELECT count(a) FROM t GROUP BY b HAVING count(a) > 2", from: true, groupBy: true, having: true},
		{
			sql:  "SELECT a FROM t WHERE a = 1 GROUP BY a HAVING a > 0 ORDER BY a DESC LIMIT 10",
			from: true, where: true, groupBy: true, having: true, orderBy: true, limit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt := mustParseSelect(t, tt.sql)
			assert.Equal(t, tt.from, stmt.Relation != nil, "FROM")
			assert.Equal(t, tt.where, stmt.Selection != nil, "WHERE")
			assert.Equal(t, tt.groupBy, stmt.GroupBy != nil, "GROUP BY")
			assert.Equal(t, tt.having, stmt.Having != nil, "HAVING")
			assert.Equal(t, tt.orderBy, stmt.OrderBy != nil, "ORDER BY")
			assert.Equal(t, tt.limit, stmt.Limit != nil, "LIMIT")
		})
	}
}

func TestParseSelect_CompoundIdentifierOrder(t *testing.T) {
	stmt := mustParseSelect(t, "SELECT a.b.c FROM db.schema.tbl")

	require.Len(t, stmt.Projection, 1)
	name, ok := stmt.Projection[0].(*core.CompoundIdentifier)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, name.Names())
	assert.Equal(t, []string{"db", "schema", "tbl"}, stmt.Relation.Names())
}

func TestParseSelect_ProjectionItems(t *testing.T) {
	stmt := mustParseSelect(t, `SELECT *, t.*, a AS x, b y, "Quoted Col", count(*), now() FROM t`)
	require.Len(t, stmt.Projection, 7)

	assert.IsType(t, &core.Wildcard{}, stmt.Projection[0])

	qw, ok := stmt.Projection[1].(*core.QualifiedWildcard)
	require.True(t, ok)
	assert.Equal(t, []string{"t"}, qw.Table.Names())

	explicit, ok := stmt.Projection[2].(*core.AliasedExpr)
	require.True(t, ok)
	assert.Equal(t, "a", identName(t, explicit.Expr))
	assert.Equal(t, "x", explicit.Alias.Name)

	implicit, ok := stmt.Projection[3].(*core.AliasedExpr)
	require.True(t, ok)
	assert.Equal(t, "y", implicit.Alias.Name)

	quoted, ok := stmt.Projection[4].(*core.Identifier)
	require.True(t, ok)
	assert.True(t, quoted.Quoted)
	assert.Equal(t, "Quoted Col", quoted.Name)

	count, ok := stmt.Projection[5].(*core.FuncCall)
	require.True(t, ok)
	assert.Equal(t, []string{"count"}, count.Name.Names())
	require.Len(t, count.Args, 1)
	assert.IsType(t, &core.Wildcard{}, count.Args[0])

	now, ok := stmt.Projection[6].(*core.FuncCall)
	require.True(t, ok)
	assert.Empty(t, now.Args)
}

func TestParseSelect_OrderBy(t *testing.T) {
	stmt := mustParseSelect(t, "SELECT a FROM t ORDER BY a, b ASC, c DESC")
	require.Len(t, stmt.OrderBy, 3)

	assert.True(t, stmt.OrderBy[0].Asc)
	assert.False(t, stmt.OrderBy[0].Explicit)
	assert.True(t, stmt.OrderBy[1].Asc)
	assert.True(t, stmt.OrderBy[1].Explicit)
	assert.False(t, stmt.OrderBy[2].Asc)
	assert.True(t, stmt.OrderBy[2].Explicit)
}

func TestParseSelect_ClauseWordIsNotAnAlias(t *testing.T) {
	_, err := ParseSQL("SELECT a UNION", generic.Generic)
	synErr := syntaxError(t, err)
	assert.Equal(t, "end of input", synErr.Expected)
}

func TestParseSelect_MissingProjection(t *testing.T) {
	for _, d := range []dialect.Dialect{generic.Generic, postgres.Postgres} {
		t.Run(d.Name(), func(t *testing.T) {
			stmt, err := ParseSQL("SELECT FROM", d)
			require.Error(t, err)
			assert.Nil(t, stmt, "no partial tree")

			synErr := syntaxError(t, err)
			assert.Equal(t, "an expression", synErr.Expected)
			assert.Equal(t, token.KEYWORD, synErr.Found.Type)
			assert.Equal(t, keyword.FROM, synErr.Found.Keyword)
			assert.Equal(t, token.Position{Line: 1, Column: 8, Offset: 7}, synErr.Pos)
			assert.Equal(t, "syntax error at line 1, column 8: expected an expression, found keyword FROM", err.Error())
		})
	}
}

// ---------- Expressions ----------

func TestParseExpr_Precedence(t *testing.T) {
	t.Run("multiplication binds tighter", func(t *testing.T) {
		e, ok := mustParseExpr(t, "1 + 2 * 3").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, token.PLUS, e.Op)
		right, ok := e.Right.(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, token.STAR, right.Op)
	})

	t.Run("left associative", func(t *testing.T) {
		e, ok := mustParseExpr(t, "a - b - c").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, "c", identName(t, e.Right))
		left, ok := e.Left.(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, "a", identName(t, left.Left))
		assert.Equal(t, "b", identName(t, left.Right))
	})

	t.Run("AND binds tighter than OR", func(t *testing.T) {
		e, ok := mustParseExpr(t, "a OR b AND c").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, keyword.OR, e.Operator())
		right, ok := e.Right.(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, keyword.AND, right.Operator())
	})

	t.Run("NOT covers a comparison", func(t *testing.T) {
		e, ok := mustParseExpr(t, "NOT a = b").(*core.UnaryExpr)
		require.True(t, ok)
		assert.True(t, e.IsNot())
		assert.IsType(t, &core.BinaryExpr{}, e.Expr)
	})

	t.Run("unary minus binds tighter than multiplication", func(t *testing.T) {
		e, ok := mustParseExpr(t, "-a * b").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, token.STAR, e.Op)
		neg, ok := e.Left.(*core.UnaryExpr)
		require.True(t, ok)
		assert.Equal(t, token.MINUS, neg.Op)
	})

	t.Run("parentheses", func(t *testing.T) {
		e, ok := mustParseExpr(t, "(1 + 2) * 3").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, token.STAR, e.Op)
		assert.IsType(t, &core.ParenExpr{}, e.Left)
	})

	t.Run("concatenation", func(t *testing.T) {
		e, ok := mustParseExpr(t, "fname || ' ' || lname").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, "||", e.Operator())
		assert.IsType(t, &core.BinaryExpr{}, e.Left)
	})

	t.Run("not equal spellings", func(t *testing.T) {
		a, ok := mustParseExpr(t, "a <> b").(*core.BinaryExpr)
		require.True(t, ok)
		b, ok := mustParseExpr(t, "a != b").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, token.NE, a.Op)
		assert.Equal(t, token.NE, b.Op)
	})
}

func TestParseExpr_Predicates(t *testing.T) {
	t.Run("IS NULL", func(t *testing.T) {
		e, ok := mustParseExpr(t, "a IS NULL").(*core.IsNullExpr)
		require.True(t, ok)
		assert.False(t, e.Not)
	})

	t.Run("IS NOT NULL", func(t *testing.T) {
		e, ok := mustParseExpr(t, "a IS NOT NULL").(*core.IsNullExpr)
		require.True(t, ok)
		assert.True(t, e.Not)
	})

	t.Run("NOT LIKE", func(t *testing.T) {
		e, ok := mustParseExpr(t, "name NOT LIKE 'a%'").(*core.LikeExpr)
		require.True(t, ok)
		assert.True(t, e.Not)
		assert.Equal(t, "a%", e.Pattern.(*core.Literal).Value)
	})

	t.Run("IN", func(t *testing.T) {
		e, ok := mustParseExpr(t, "id IN (1, 2, 3)").(*core.InExpr)
		require.True(t, ok)
		assert.False(t, e.Not)
		assert.Len(t, e.Values, 3)
	})

	t.Run("NOT IN", func(t *testing.T) {
		e, ok := mustParseExpr(t, "id NOT IN (1)").(*core.InExpr)
		require.True(t, ok)
		assert.True(t, e.Not)
	})

	t.Run("BETWEEN keeps the outer AND", func(t *testing.T) {
		e, ok := mustParseExpr(t, "a BETWEEN 1 AND 2 AND b").(*core.BinaryExpr)
		require.True(t, ok)
		assert.Equal(t, keyword.AND, e.Operator())
		between, ok := e.Left.(*core.BetweenExpr)
		require.True(t, ok)
		assert.Equal(t, "1", between.Low.(*core.Literal).Value)
		assert.Equal(t, "2", between.High.(*core.Literal).Value)
	})

	t.Run("NOT BETWEEN", func(t *testing.T) {
		e, ok := mustParseExpr(t, "a NOT BETWEEN 1 AND 2").(*core.BetweenExpr)
		require.True(t, ok)
		assert.True(t, e.Not)
	})

	t.Run("IS without NULL", func(t *testing.T) {
		tokens, err := Tokenize("a IS 1", generic.Generic)
		require.NoError(t, err)
		_, err = NewParser(tokens).ParseExpr()
		synErr := syntaxError(t, err)
		assert.Equal(t, "NULL or NOT NULL after IS", synErr.Expected)
	})
}

func TestParseExpr_Literals(t *testing.T) {
	tests := []struct {
		src   string
		typ   core.LiteralType
		value string
	}{
		{"42", core.LiteralNumber, "42"},
		{"'it''s'", core.LiteralString, "it's"},
		{"TRUE", core.LiteralBool, keyword.TRUE},
		{"false", core.LiteralBool, keyword.FALSE},
		{"NULL", core.LiteralNull, keyword.NULL},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lit, ok := mustParseExpr(t, tt.src).(*core.Literal)
			require.True(t, ok)
			assert.Equal(t, tt.typ, lit.Type)
			assert.Equal(t, tt.value, lit.Value)
		})
	}
}

func TestParseExpr_Casts(t *testing.T) {
	t.Run("CAST", func(t *testing.T) {
		e, ok := mustParseExpr(t, "CAST(a AS VARCHAR(10))").(*core.CastExpr)
		require.True(t, ok)
		assert.Equal(t, core.TypeVarchar, e.Type.Kind)
		require.NotNil(t, e.Type.Length)
		assert.Equal(t, 10, *e.Type.Length)
	})

	t.Run("postfix cast", func(t *testing.T) {
		e, ok := mustParseExpr(t, "a::int + 1").(*core.BinaryExpr)
		require.True(t, ok)
		cast, ok := e.Left.(*core.CastExpr)
		require.True(t, ok)
		assert.Equal(t, core.TypeInt, cast.Type.Kind)
	})

	t.Run("postfix cast to array", func(t *testing.T) {
		e, ok := mustParseExpr(t, "'{a,b}'::text[]").(*core.CastExpr)
		require.True(t, ok)
		assert.Equal(t, core.TypeArray, e.Type.Kind)
		assert.Equal(t, core.TypeText, e.Type.Elem.Kind)
	})
}

func TestParseDataTypes(t *testing.T) {
	intp := core.IntPtr
	tests := []struct {
		src  string
		want *core.DataType
	}{
		{"INT", &core.DataType{Kind: core.TypeInt}},
		{"integer", &core.DataType{Kind: core.TypeInt}},
		{"CHARACTER VARYING(255)", &core.DataType{Kind: core.TypeVarchar, Length: intp(255)}},
		{"CHARACTER LARGE OBJECT", &core.DataType{Kind: core.TypeClob}},
		{"CHAR(2)", &core.DataType{Kind: core.TypeChar, Length: intp(2)}},
		{"NUMERIC(10,2)", &core.DataType{Kind: core.TypeDecimal, Precision: intp(10), Scale: intp(2)}},
		{"DEC", &core.DataType{Kind: core.TypeDecimal}},
		{"FLOAT(24)", &core.DataType{Kind: core.TypeFloat, Precision: intp(24)}},
		{"DOUBLE PRECISION", &core.DataType{Kind: core.TypeDouble}},
		{"TIMESTAMP WITH TIME ZONE", &core.DataType{Kind: core.TypeTimestamp, WithTimeZone: true}},
		{"TIMESTAMP WITHOUT TIME ZONE", &core.DataType{Kind: core.TypeTimestamp}},
		{"uuid", &core.DataType{Kind: core.TypeUUID}},
		{"int[][]", &core.DataType{Kind: core.TypeArray, Elem: &core.DataType{Kind: core.TypeArray, Elem: &core.DataType{Kind: core.TypeInt}}}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, err := Tokenize(tt.src, postgres.Postgres)
			require.NoError(t, err)
			p := NewParser(tokens)
			got, err := p.parseDataType()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, token.EOF, p.peekToken().Type)
		})
	}
}

func TestParseDataTypes_Custom(t *testing.T) {
	tokens, err := Tokenize("public.mpaa_rating", postgres.Postgres)
	require.NoError(t, err)
	got, err := NewParser(tokens).parseDataType()
	require.NoError(t, err)
	assert.Equal(t, core.TypeCustom, got.Kind)
	assert.Equal(t, []string{"public", "mpaa_rating"}, got.Custom.Names())
}

// ---------- DML ----------

func TestParseInsert(t *testing.T) {
	stmt, ok := mustParse(t, "INSERT INTO customer (id, name) VALUES (1, 'a'), (2, 'b'), (3, NULL)", generic.Generic).(*core.InsertStmt)
	require.True(t, ok)

	assert.Equal(t, []string{"customer"}, stmt.Table.Names())
	require.Len(t, stmt.Columns, 2)
	assert.Equal(t, "id", stmt.Columns[0].Name)
	assert.Equal(t, "name", stmt.Columns[1].Name)

	require.Len(t, stmt.Values, 3)
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, stmt.Values[i][0].(*core.Literal).Value, "row %d", i)
	}
	assert.Equal(t, core.LiteralNull, stmt.Values[2][1].(*core.Literal).Type)
}

func TestParseInsert_WithoutColumns(t *testing.T) {
	stmt, ok := mustParse(t, "INSERT INTO t VALUES (1)", generic.Generic).(*core.InsertStmt)
	require.True(t, ok)
	assert.Nil(t, stmt.Columns)
	assert.Len(t, stmt.Values, 1)
}

func TestParseUpdate(t *testing.T) {
	stmt, ok := mustParse(t, "UPDATE customer SET name = 'x', active = FALSE WHERE id = 1", postgres.Postgres).(*core.UpdateStmt)
	require.True(t, ok)

	assert.Equal(t, []string{"customer"}, stmt.Table.Names())
	require.Len(t, stmt.Assignments, 2)
	assert.Equal(t, "name", stmt.Assignments[0].Column.Name)
	assert.Equal(t, "active", stmt.Assignments[1].Column.Name)
	assert.NotNil(t, stmt.Selection)
}

func TestParseDelete(t *testing.T) {
	stmt, ok := mustParse(t, "DELETE FROM customer WHERE id = 1", generic.Generic).(*core.DeleteStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"customer"}, stmt.Relation.Names())
	assert.NotNil(t, stmt.Selection)

	bare, ok := mustParse(t, "DELETE", generic.Generic).(*core.DeleteStmt)
	require.True(t, ok)
	assert.Nil(t, bare.Relation)
	assert.Nil(t, bare.Selection)
}

// ---------- COPY ----------

func TestParseCopy(t *testing.T) {
	sql := "COPY public.actor (actor_id, first_name, last_update) FROM stdin;\n" +
		"1\tPENELOPE\t2006-02-15 09:34:33\n" +
		"2\t\\N\t2006-02-15 09:34:33\n" +
		"\\.\n"

	stmt, ok := mustParse(t, sql, postgres.Postgres).(*core.CopyStmt)
	require.True(t, ok)

	assert.Equal(t, []string{"public", "actor"}, stmt.Table.Names())
	require.Len(t, stmt.Columns, 3)
	assert.Equal(t, "last_update", stmt.Columns[2].Name)

	assert.Equal(t, [][]core.CopyValue{
		{{Value: "1"}, {Value: "PENELOPE"}, {Value: "2006-02-15 09:34:33"}},
		{{Value: "2"}, {Null: true}, {Value: "2006-02-15 09:34:33"}},
	}, stmt.Rows)
}

func TestParseCopy_Cells(t *testing.T) {
	tests := []struct {
		name string
		data string
		want [][]core.CopyValue
	}{
		{"no rows", "\\.", nil},
		{"empty cell", "1\t\tx\n\\.", [][]core.CopyValue{{{Value: "1"}, {Value: ""}, {Value: "x"}}}},
		{"quoted text", "'a b'\t\"c\"\n\\.", [][]core.CopyValue{{{Value: "'a b'"}, {Value: `"c"`}}}},
		{"crlf", "1\r\n2\r\n\\.", [][]core.CopyValue{{{Value: "1"}}, {{Value: "2"}}}},
		{"spaces kept", "a  b\n\\.", [][]core.CopyValue{{{Value: "a  b"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := "COPY t FROM stdin;\n" + tt.data
			stmt, err := ParseSQL(sql, generic.Generic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt.(*core.CopyStmt).Rows)
		})
	}
}

func TestParseCopy_RawCells(t *testing.T) {
	tests := []struct {
		name string
		data string
		want [][]core.CopyValue
	}{
		{"apostrophe", "O'Brien\tNY\n", [][]core.CopyValue{{{Value: "O'Brien"}, {Value: "NY"}}}},
		{"non-ascii letters", "José\tgröße\n", [][]core.CopyValue{{{Value: "José"}, {Value: "größe"}}}},
		{"comment markers", "a--b\tc\nx/*y\tz\n", [][]core.CopyValue{
			{{Value: "a--b"}, {Value: "c"}},
			{{Value: "x/*y"}, {Value: "z"}},
		}},
		{"punctuation", "what?\t$5\t#!~\n", [][]core.CopyValue{{{Value: "what?"}, {Value: "$5"}, {Value: "#!~"}}}},
		{"url", "http://example.com/a?b\n", [][]core.CopyValue{{{Value: "http://example.com/a?b"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseSQL("COPY t (a, b) FROM stdin;\n"+tt.data+"\\.", generic.Generic)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stmt.(*core.CopyStmt).Rows)
		})
	}
}

func TestParseCopy_FollowedByStatement(t *testing.T) {
	sql := "COPY t (a) FROM stdin;\n1\n\\.\n\nSELECT a FROM t;"
	stmts, err := ParseScript(sql, postgres.Postgres)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.IsType(t, &core.CopyStmt{}, stmts[0])
	assert.IsType(t, &core.SelectStmt{}, stmts[1])
}

func TestParseCopy_Errors(t *testing.T) {
	t.Run("missing terminator", func(t *testing.T) {
		_, err := ParseSQL("COPY t FROM stdin;\n1\t2\n", postgres.Postgres)
		synErr := syntaxError(t, err)
		assert.Equal(t, `\. to end the COPY data`, synErr.Expected)
		assert.Equal(t, token.EOF, synErr.Found.Type)
	})

	t.Run("missing STDIN", func(t *testing.T) {
		_, err := ParseSQL("COPY t FROM 'file.csv';", postgres.Postgres)
		synErr := syntaxError(t, err)
		assert.Equal(t, keyword.STDIN, synErr.Expected)
	})

	t.Run("missing semicolon", func(t *testing.T) {
		_, err := ParseSQL("COPY t FROM stdin\n1\n\\.", postgres.Postgres)
		synErr := syntaxError(t, err)
		assert.Equal(t, "';' after FROM STDIN", synErr.Expected)
	})
}

// ---------- DDL ----------

func TestParseCreateTable(t *testing.T) {
	sql := `CREATE TABLE public.customer (
		id INT PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		active BOOLEAN DEFAULT TRUE NOT NULL,
		note TEXT NULL,
		tags TEXT[]
	)`
	stmt, ok := mustParse(t, sql, postgres.Postgres).(*core.CreateTableStmt)
	require.True(t, ok)

	assert.Equal(t, []string{"public", "customer"}, stmt.Name.Names())
	require.Len(t, stmt.Columns, 5)

	id := stmt.Columns[0]
	assert.Equal(t, "id", id.Name.Name)
	assert.True(t, id.IsPrimary)
	assert.True(t, id.AllowNull)

	email := stmt.Columns[1]
	assert.Equal(t, core.TypeVarchar, email.Type.Kind)
	assert.True(t, email.IsUnique)
	assert.False(t, email.AllowNull)

	active := stmt.Columns[2]
	require.NotNil(t, active.Default)
	assert.Equal(t, core.LiteralBool, active.Default.(*core.Literal).Type)
	assert.False(t, active.AllowNull)

	assert.True(t, stmt.Columns[3].AllowNull)
	assert.Equal(t, core.TypeArray, stmt.Columns[4].Type.Kind)
}

func TestParseCreateTable_Errors(t *testing.T) {
	_, err := ParseSQL("CREATE TABLE t ()", generic.Generic)
	synErr := syntaxError(t, err)
	assert.Equal(t, "identifier", synErr.Expected)

	_, err = ParseSQL("CREATE TABLE t (a INT b INT)", generic.Generic)
	synErr = syntaxError(t, err)
	assert.Equal(t, "',' or ')'", synErr.Expected)
}

func TestParseAlterTable(t *testing.T) {
	t.Run("foreign key", func(t *testing.T) {
		sql := "ALTER TABLE ONLY public.film_actor ADD CONSTRAINT film_actor_actor_id_fkey " +
			"FOREIGN KEY (actor_id) REFERENCES public.actor(actor_id)"
		stmt, ok := mustParse(t, sql, postgres.Postgres).(*core.AlterTableStmt)
		require.True(t, ok)

		assert.True(t, stmt.Only)
		assert.Equal(t, []string{"public", "film_actor"}, stmt.Name.Names())
		add, ok := stmt.Operation.(*core.AddConstraint)
		require.True(t, ok)
		assert.Equal(t, core.ForeignKey, add.Key.Kind)
		assert.Equal(t, "film_actor_actor_id_fkey", add.Key.Name.Name)
		assert.Equal(t, []string{"public", "actor"}, add.Key.ForeignTable.Names())
		require.Len(t, add.Key.ReferredColumns, 1)
		assert.Equal(t, "actor_id", add.Key.ReferredColumns[0].Name)
	})

	t.Run("key kinds", func(t *testing.T) {
		tests := []struct {
			sql  string
			kind core.TableKeyKind
		}{
			{"ALTER TABLE t ADD CONSTRAINT pk PRIMARY KEY (a, b)", core.PrimaryKey},
			{"ALTER TABLE t ADD CONSTRAINT uq UNIQUE (a)", core.UniqueKey},
			{"ALTER TABLE t ADD CONSTRAINT uq UNIQUE KEY (a)", core.UniqueKey},
			{"ALTER TABLE t ADD CONSTRAINT k KEY (a)", core.Key},
		}
		for _, tt := range tests {
			stmt, ok := mustParse(t, tt.sql, generic.Generic).(*core.AlterTableStmt)
			require.True(t, ok)
			assert.False(t, stmt.Only)
			assert.Equal(t, tt.kind, stmt.Operation.(*core.AddConstraint).Key.Kind, tt.sql)
		}
	})

	t.Run("drop constraint", func(t *testing.T) {
		stmt, ok := mustParse(t, "ALTER TABLE t DROP CONSTRAINT pk", generic.Generic).(*core.AlterTableStmt)
		require.True(t, ok)
		drop, ok := stmt.Operation.(*core.DropConstraint)
		require.True(t, ok)
		assert.Equal(t, "pk", drop.Name.Name)
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, err := ParseSQL("ALTER TABLE t RENAME TO u", generic.Generic)
		synErr := syntaxError(t, err)
		assert.Equal(t, "ADD CONSTRAINT or DROP CONSTRAINT", synErr.Expected)
	})
}

// ---------- Statements ----------

func TestParse_Statements(t *testing.T) {
	stmts, err := ParseScript("SELECT 1;; INSERT INTO t VALUES (1);\nDELETE FROM t;", generic.Generic)
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.IsType(t, &core.SelectStmt{}, stmts[0])
	assert.IsType(t, &core.InsertStmt{}, stmts[1])
	assert.IsType(t, &core.DeleteStmt{}, stmts[2])

	stmts, err = ParseScript("  -- nothing here\n", generic.Generic)
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected string
	}{
		{"unknown statement", "DROP TABLE t", "a statement"},
		{"trailing input", "SELECT a FROM t t2 t3", "end of input"},
		{"missing INTO", "INSERT customer VALUES (1)", keyword.INTO},
		{"missing SET", "UPDATE t a = 1", keyword.SET},
		{"unclosed paren", "SELECT (a FROM t", "')'"},
		{"reserved word as name", "SELECT a FROM select", "identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := ParseSQL(tt.sql, generic.Generic)
			assert.Nil(t, stmt)
			synErr := syntaxError(t, err)
			assert.Equal(t, tt.expected, synErr.Expected)
		})
	}

	_, err := ParseScript("SELECT 1 SELECT 2", generic.Generic)
	synErr := syntaxError(t, err)
	assert.Equal(t, "';' between statements", synErr.Expected)
}

func TestParser_FailedParseKeepsCursor(t *testing.T) {
	newParser := func(t *testing.T, src string) *Parser {
		t.Helper()
		tokens, err := Tokenize(src, generic.Generic)
		require.NoError(t, err)
		return NewParser(tokens)
	}

	exprs := []string{"CAST(1 FOO)", "x NOT LIKE", "a.", "a + (b", "f(1,"}
	for _, src := range exprs {
		t.Run("expr "+src, func(t *testing.T) {
			p := newParser(t, src)
			_, err := p.ParseExpr()
			require.Error(t, err)
			assert.Equal(t, 0, p.pos)
		})
	}

	stmts := []string{"SELECT a FROM", "INSERT INTO t VALUES (1", "COPY t FROM stdin;\n1\n", "ALTER TABLE t ADD"}
	for _, src := range stmts {
		t.Run("statement "+src, func(t *testing.T) {
			p := newParser(t, src)
			_, err := p.ParseStatement()
			require.Error(t, err)
			assert.Equal(t, 0, p.pos)
		})
	}

	t.Run("after consumed input", func(t *testing.T) {
		p := newParser(t, "1, x NOT LIKE")
		_, err := p.ParseExpr()
		require.NoError(t, err)
		require.True(t, p.consumeToken(token.COMMA))
		saved := p.pos
		_, err = p.ParseExpr()
		require.Error(t, err)
		assert.Equal(t, saved, p.pos)
	})
}

func TestParse_LexErrorPassesThrough(t *testing.T) {
	stmt, err := ParseSQL("SELECT #", generic.Generic)
	assert.Nil(t, stmt)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestNewParser_SuppliesEOF(t *testing.T) {
	tokens := []token.Token{
		{Type: token.KEYWORD, Literal: "SELECT", Keyword: keyword.SELECT, Pos: token.Position{Line: 1, Column: 1}},
		{Type: token.WHITESPACE, Literal: " ", Pos: token.Position{Line: 1, Column: 7, Offset: 6}},
		{Type: token.NUMBER, Literal: "1", Pos: token.Position{Line: 1, Column: 8, Offset: 7}},
	}
	stmt, err := Parse(tokens)
	require.NoError(t, err)
	assert.IsType(t, &core.SelectStmt{}, stmt)
	assert.Len(t, tokens, 3, "caller slice is not modified")
}
