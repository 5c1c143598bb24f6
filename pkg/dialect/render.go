package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/spi"
)

// RenderNode implements Dialect with the generic SQL text form.
func (b *Base) RenderNode(r spi.RenderOps, n core.Node) (string, error) {
	switch n := n.(type) {
	case core.Expr:
		return b.renderExpr(r, n)
	case *core.SelectStmt:
		return b.renderSelect(r, n)
	case *core.InsertStmt:
		return b.renderInsert(r, n)
	case *core.CopyStmt:
		return b.renderCopy(r, n)
	case *core.UpdateStmt:
		return b.renderUpdate(r, n)
	case *core.DeleteStmt:
		return b.renderDelete(r, n)
	case *core.CreateTableStmt:
		return b.renderCreateTable(r, n)
	case *core.AlterTableStmt:
		return b.renderAlterTable(r, n)
	case *core.DataType:
		return b.renderDataType(r, n)
	case nil:
		return "", fmt.Errorf("render: nil node")
	default:
		// Auxiliary structures handed to RenderNode directly still reach
		// the narrow hooks of this dialect.
		if isAuxiliary(n) {
			return Route(b, r, n)
		}
		return "", Unsupported(b.name, fmt.Sprintf("%T", n))
	}
}

func isAuxiliary(n core.Node) bool {
	switch n.(type) {
	case *core.Assignment, *core.ColumnDef, *core.OrderByExpr, core.AlterOperation, *core.TableKey:
		return true
	}
	return false
}

// RenderAssignment implements Dialect: col = value.
func (b *Base) RenderAssignment(r spi.RenderOps, a *core.Assignment) (string, error) {
	col, err := r.Render(a.Column)
	if err != nil {
		return "", err
	}
	val, err := r.Render(a.Value)
	if err != nil {
		return "", err
	}
	return col + " = " + val, nil
}

// RenderColumnDef implements Dialect:
// name type[ PRIMARY KEY][ UNIQUE][ DEFAULT e][ NOT NULL].
func (b *Base) RenderColumnDef(r spi.RenderOps, c *core.ColumnDef) (string, error) {
	name, typ, err := ColumnNameAndType(r, c)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" ")
	sb.WriteString(typ)
	if c.IsPrimary {
		sb.WriteString(" PRIMARY KEY")
	}
	if c.IsUnique {
		sb.WriteString(" UNIQUE")
	}
	if c.Default != nil {
		def, err := r.Render(c.Default)
		if err != nil {
			return "", err
		}
		sb.WriteString(" DEFAULT ")
		sb.WriteString(def)
	}
	if !c.AllowNull {
		sb.WriteString(" NOT NULL")
	}
	return sb.String(), nil
}

// ColumnNameAndType renders the leading "name type" pair of a column
// definition. Dialects overriding RenderColumnDef share it.
func ColumnNameAndType(r spi.RenderOps, c *core.ColumnDef) (string, string, error) {
	name, err := r.Render(c.Name)
	if err != nil {
		return "", "", err
	}
	typ, err := r.Render(c.Type)
	if err != nil {
		return "", "", err
	}
	return name, typ, nil
}

// RenderOrderBy implements Dialect. ASC is written only when it was
// spelled out in the source.
func (b *Base) RenderOrderBy(r spi.RenderOps, o *core.OrderByExpr) (string, error) {
	expr, err := r.Render(o.Expr)
	if err != nil {
		return "", err
	}
	switch {
	case !o.Asc:
		return expr + " DESC", nil
	case o.Explicit:
		return expr + " ASC", nil
	default:
		return expr, nil
	}
}

// RenderAlterOperation implements Dialect.
func (b *Base) RenderAlterOperation(r spi.RenderOps, op core.AlterOperation) (string, error) {
	switch op := op.(type) {
	case *core.AddConstraint:
		key, err := r.Render(op.Key)
		if err != nil {
			return "", err
		}
		return "ADD CONSTRAINT " + key, nil
	case *core.DropConstraint:
		name, err := r.Render(op.Name)
		if err != nil {
			return "", err
		}
		return "DROP CONSTRAINT " + name, nil
	default:
		return "", Unsupported(b.name, fmt.Sprintf("alter operation %T", op))
	}
}

// RenderTableKey implements Dialect.
func (b *Base) RenderTableKey(r spi.RenderOps, k *core.TableKey) (string, error) {
	name, err := r.Render(k.Name)
	if err != nil {
		return "", err
	}
	cols, err := renderIdents(r, k.Columns)
	if err != nil {
		return "", err
	}
	text := fmt.Sprintf("%s %s (%s)", name, k.Kind, cols)
	if k.Kind != core.ForeignKey {
		return text, nil
	}

	table, err := r.Render(k.ForeignTable)
	if err != nil {
		return "", err
	}
	referred, err := renderIdents(r, k.ReferredColumns)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s REFERENCES %s(%s)", text, table, referred), nil
}

func renderIdents(r spi.RenderOps, idents []*core.Identifier) (string, error) {
	nodes := make([]core.Node, len(idents))
	for i, id := range idents {
		nodes[i] = id
	}
	return r.RenderList(nodes...)
}

func renderExprs(r spi.RenderOps, exprs []core.Expr) (string, error) {
	nodes := make([]core.Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return r.RenderList(nodes...)
}

// ---------- Expressions ----------

func (b *Base) renderExpr(r spi.RenderOps, e core.Expr) (string, error) {
	switch e := e.(type) {
	case *core.Identifier:
		if e.Quoted || b.NeedsQuotes(e.Name) {
			return b.QuoteIdentifier(e.Name), nil
		}
		return e.Name, nil

	case *core.CompoundIdentifier:
		parts := make([]string, len(e.Parts))
		for i, p := range e.Parts {
			s, err := r.Render(p)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, "."), nil

	case *core.Wildcard:
		return "*", nil

	case *core.QualifiedWildcard:
		table, err := r.Render(e.Table)
		if err != nil {
			return "", err
		}
		return table + ".*", nil

	case *core.Literal:
		return renderLiteral(e), nil

	case *core.UnaryExpr:
		inner, err := renderOperand(r, e.Expr, wrapOperand(e.Expr, precedence(e)))
		if err != nil {
			return "", err
		}
		if e.IsNot() {
			return "NOT " + inner, nil
		}
		op := e.Op.String()
		// "- -1" must not collapse into the comment marker "--".
		if strings.HasPrefix(inner, "-") || strings.HasPrefix(inner, "+") {
			return op + " " + inner, nil
		}
		return op + inner, nil

	case *core.BinaryExpr:
		prec := binaryPrecedence(e)
		left, err := renderOperand(r, e.Left, wrapLeft(e.Left, prec))
		if err != nil {
			return "", err
		}
		right, err := renderOperand(r, e.Right, wrapRight(e.Right, prec))
		if err != nil {
			return "", err
		}
		return left + " " + e.Operator() + " " + right, nil

	case *core.IsNullExpr:
		inner, err := renderOperand(r, e.Expr, wrapLeft(e.Expr, spi.PrecedenceComparison))
		if err != nil {
			return "", err
		}
		if e.Not {
			return inner + " IS NOT NULL", nil
		}
		return inner + " IS NULL", nil

	case *core.CastExpr:
		inner, err := r.Render(e.Expr)
		if err != nil {
			return "", err
		}
		typ, err := r.Render(e.Type)
		if err != nil {
			return "", err
		}
		return "CAST(" + inner + " AS " + typ + ")", nil

	case *core.ParenExpr:
		inner, err := r.Render(e.Expr)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case *core.FuncCall:
		name, err := r.Render(e.Name)
		if err != nil {
			return "", err
		}
		args, err := renderExprs(r, e.Args)
		if err != nil {
			return "", err
		}
		return name + "(" + args + ")", nil

	case *core.LikeExpr:
		inner, err := renderOperand(r, e.Expr, wrapLeft(e.Expr, spi.PrecedenceComparison))
		if err != nil {
			return "", err
		}
		pattern, err := renderOperand(r, e.Pattern, wrapRight(e.Pattern, spi.PrecedenceComparison))
		if err != nil {
			return "", err
		}
		return inner + not(e.Not) + " LIKE " + pattern, nil

	case *core.InExpr:
		inner, err := renderOperand(r, e.Expr, wrapLeft(e.Expr, spi.PrecedenceComparison))
		if err != nil {
			return "", err
		}
		values, err := renderExprs(r, e.Values)
		if err != nil {
			return "", err
		}
		return inner + not(e.Not) + " IN (" + values + ")", nil

	case *core.BetweenExpr:
		inner, err := renderOperand(r, e.Expr, wrapLeft(e.Expr, spi.PrecedenceComparison))
		if err != nil {
			return "", err
		}
		low, err := renderOperand(r, e.Low, wrapRight(e.Low, spi.PrecedenceComparison))
		if err != nil {
			return "", err
		}
		high, err := renderOperand(r, e.High, wrapRight(e.High, spi.PrecedenceComparison))
		if err != nil {
			return "", err
		}
		return inner + not(e.Not) + " BETWEEN " + low + " AND " + high, nil

	case *core.AliasedExpr:
		inner, err := r.Render(e.Expr)
		if err != nil {
			return "", err
		}
		alias, err := r.Render(e.Alias)
		if err != nil {
			return "", err
		}
		return inner + " AS " + alias, nil

	default:
		return "", Unsupported(b.name, fmt.Sprintf("expression %T", e))
	}
}

func not(negated bool) string {
	if negated {
		return " NOT"
	}
	return ""
}

func renderLiteral(l *core.Literal) string {
	switch l.Type {
	case core.LiteralString:
		return "'" + strings.ReplaceAll(l.Value, "'", "''") + "'"
	case core.LiteralBool:
		return strings.ToUpper(l.Value)
	case core.LiteralNull:
		return "NULL"
	default:
		return l.Value
	}
}

// ---------- Statements ----------

// CheckInsert reports an INSERT that has no rows or an empty row.
func CheckInsert(s *core.InsertStmt) error {
	if len(s.Values) == 0 {
		return Incomplete("INSERT without VALUES rows")
	}
	for i, row := range s.Values {
		if len(row) == 0 {
			return Incomplete(fmt.Sprintf("INSERT row %d has no values", i+1))
		}
	}
	return nil
}

func (b *Base) renderSelect(r spi.RenderOps, s *core.SelectStmt) (string, error) {
	if len(s.Projection) == 0 {
		return "", Incomplete("SELECT without a projection")
	}
	var sb strings.Builder

	proj, err := renderExprs(r, s.Projection)
	if err != nil {
		return "", err
	}
	sb.WriteString("SELECT ")
	sb.WriteString(proj)

	if s.Relation != nil {
		rel, err := r.Render(s.Relation)
		if err != nil {
			return "", err
		}
		sb.WriteString(" FROM ")
		sb.WriteString(rel)
	}
	if s.Selection != nil {
		where, err := r.Render(s.Selection)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	if len(s.GroupBy) > 0 {
		group, err := renderExprs(r, s.GroupBy)
		if err != nil {
			return "", err
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(group)
	}
	if s.Having != nil {
		having, err := r.Render(s.Having)
		if err != nil {
			return "", err
		}
		sb.WriteString(" HAVING ")
		sb.WriteString(having)
	}
	if len(s.OrderBy) > 0 {
		items := make([]core.Node, len(s.OrderBy))
		for i, o := range s.OrderBy {
			items[i] = o
		}
		order, err := r.RenderList(items...)
		if err != nil {
			return "", err
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
	}
	if s.Limit != nil {
		limit, err := r.Render(s.Limit)
		if err != nil {
			return "", err
		}
		sb.WriteString(" LIMIT ")
		sb.WriteString(limit)
	}
	return sb.String(), nil
}

func (b *Base) renderInsert(r spi.RenderOps, s *core.InsertStmt) (string, error) {
	if err := CheckInsert(s); err != nil {
		return "", err
	}
	table, err := r.Render(s.Table)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	if len(s.Columns) > 0 {
		cols, err := renderIdents(r, s.Columns)
		if err != nil {
			return "", err
		}
		sb.WriteString(" (")
		sb.WriteString(cols)
		sb.WriteString(")")
	}
	sb.WriteString(" VALUES ")
	for i, row := range s.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		values, err := renderExprs(r, row)
		if err != nil {
			return "", err
		}
		sb.WriteString("(")
		sb.WriteString(values)
		sb.WriteString(")")
	}
	return sb.String(), nil
}

func (b *Base) renderCopy(r spi.RenderOps, s *core.CopyStmt) (string, error) {
	table, err := r.Render(s.Table)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("COPY ")
	sb.WriteString(table)
	if len(s.Columns) > 0 {
		cols, err := renderIdents(r, s.Columns)
		if err != nil {
			return "", err
		}
		sb.WriteString(" (")
		sb.WriteString(cols)
		sb.WriteString(")")
	}
	sb.WriteString(" FROM stdin; ")
	for _, row := range s.Rows {
		sb.WriteString("\n")
		for i, v := range row {
			if i > 0 {
				sb.WriteString("\t")
			}
			sb.WriteString(v.String())
		}
	}
	sb.WriteString("\n\\.")
	return sb.String(), nil
}

func (b *Base) renderUpdate(r spi.RenderOps, s *core.UpdateStmt) (string, error) {
	if len(s.Assignments) == 0 {
		return "", Incomplete("UPDATE without SET assignments")
	}
	table, err := r.Render(s.Table)
	if err != nil {
		return "", err
	}
	items := make([]core.Node, len(s.Assignments))
	for i, a := range s.Assignments {
		items[i] = a
	}
	set, err := r.RenderList(items...)
	if err != nil {
		return "", err
	}

	text := "UPDATE " + table + " SET " + set
	if s.Selection != nil {
		where, err := r.Render(s.Selection)
		if err != nil {
			return "", err
		}
		text += " WHERE " + where
	}
	return text, nil
}

func (b *Base) renderDelete(r spi.RenderOps, s *core.DeleteStmt) (string, error) {
	text := "DELETE"
	if s.Relation != nil {
		rel, err := r.Render(s.Relation)
		if err != nil {
			return "", err
		}
		text += " FROM " + rel
	}
	if s.Selection != nil {
		where, err := r.Render(s.Selection)
		if err != nil {
			return "", err
		}
		text += " WHERE " + where
	}
	return text, nil
}

func (b *Base) renderCreateTable(r spi.RenderOps, s *core.CreateTableStmt) (string, error) {
	name, err := r.Render(s.Name)
	if err != nil {
		return "", err
	}
	cols := make([]core.Node, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c
	}
	body, err := r.RenderList(cols...)
	if err != nil {
		return "", err
	}
	return "CREATE TABLE " + name + " (" + body + ")", nil
}

func (b *Base) renderAlterTable(r spi.RenderOps, s *core.AlterTableStmt) (string, error) {
	name, err := r.Render(s.Name)
	if err != nil {
		return "", err
	}
	op, err := r.Render(s.Operation)
	if err != nil {
		return "", err
	}
	if s.Only {
		return "ALTER TABLE ONLY " + name + " " + op, nil
	}
	return "ALTER TABLE " + name + " " + op, nil
}

// ---------- Data types ----------

var simpleTypes = map[core.DataTypeKind]string{
	core.TypeUUID:     "UUID",
	core.TypeSmallInt: "SMALLINT",
	core.TypeInt:      "INT",
	core.TypeBigInt:   "BIGINT",
	core.TypeReal:     "REAL",
	core.TypeDouble:   "DOUBLE PRECISION",
	core.TypeBoolean:  "BOOLEAN",
	core.TypeDate:     "DATE",
	core.TypeRegclass: "REGCLASS",
	core.TypeText:     "TEXT",
	core.TypeBytea:    "BYTEA",
}

var sizedTypes = map[core.DataTypeKind]string{
	core.TypeChar:      "CHAR",
	core.TypeVarchar:   "VARCHAR",
	core.TypeClob:      "CLOB",
	core.TypeBinary:    "BINARY",
	core.TypeVarbinary: "VARBINARY",
	core.TypeBlob:      "BLOB",
}

func (b *Base) renderDataType(r spi.RenderOps, t *core.DataType) (string, error) {
	if name, ok := simpleTypes[t.Kind]; ok {
		return name, nil
	}
	if name, ok := sizedTypes[t.Kind]; ok {
		if t.Length != nil {
			return fmt.Sprintf("%s(%d)", name, *t.Length), nil
		}
		return name, nil
	}

	switch t.Kind {
	case core.TypeDecimal:
		switch {
		case t.Precision != nil && t.Scale != nil:
			return fmt.Sprintf("DECIMAL(%d,%d)", *t.Precision, *t.Scale), nil
		case t.Precision != nil:
			return fmt.Sprintf("DECIMAL(%d)", *t.Precision), nil
		default:
			return "DECIMAL", nil
		}
	case core.TypeFloat:
		if t.Precision != nil {
			return fmt.Sprintf("FLOAT(%d)", *t.Precision), nil
		}
		return "FLOAT", nil
	case core.TypeTime, core.TypeTimestamp:
		name := "TIME"
		if t.Kind == core.TypeTimestamp {
			name = "TIMESTAMP"
		}
		if t.WithTimeZone {
			name += " WITH TIME ZONE"
		}
		return name, nil
	case core.TypeCustom:
		if t.Custom == nil {
			return "", fmt.Errorf("render: custom data type without a name")
		}
		return r.Render(t.Custom)
	case core.TypeArray:
		if t.Elem == nil {
			return "", fmt.Errorf("render: array data type without an element type")
		}
		elem, err := r.Render(t.Elem)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	default:
		return "", Unsupported(b.name, fmt.Sprintf("data type %d", t.Kind))
	}
}
