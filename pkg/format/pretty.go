package format

import (
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/keyword"
)

func (p *Printer) formatStmt(stmt core.Stmt) error {
	switch stmt := stmt.(type) {
	case *core.SelectStmt:
		return p.formatSelectStmt(stmt)
	case *core.InsertStmt:
		return p.formatInsertStmt(stmt)
	case *core.CreateTableStmt:
		return p.formatCreateTableStmt(stmt)
	default:
		return p.writeNode(stmt)
	}
}

func (p *Printer) formatSelectStmt(stmt *core.SelectStmt) error {
	if len(stmt.Projection) == 0 {
		return dialect.Incomplete("SELECT without a projection")
	}
	p.kw(keyword.SELECT)
	p.writeln()

	p.indent()
	err := p.formatList(len(stmt.Projection), func(i int) error {
		return p.writeNode(stmt.Projection[i])
	}, ",", true)
	if err != nil {
		return err
	}
	p.writeln()
	p.dedent()

	if stmt.Relation != nil {
		p.kw(keyword.FROM)
		p.write(" ")
		if err := p.writeNode(stmt.Relation); err != nil {
			return err
		}
		p.writeln()
	}
	if stmt.Selection != nil {
		if err := p.formatClause([]string{keyword.WHERE}, stmt.Selection); err != nil {
			return err
		}
	}
	if len(stmt.GroupBy) > 0 {
		if err := p.formatClauseList([]string{keyword.GROUP, keyword.BY}, exprNodes(stmt.GroupBy)); err != nil {
			return err
		}
	}
	if stmt.Having != nil {
		if err := p.formatClause([]string{keyword.HAVING}, stmt.Having); err != nil {
			return err
		}
	}
	if len(stmt.OrderBy) > 0 {
		items := make([]core.Node, len(stmt.OrderBy))
		for i, o := range stmt.OrderBy {
			items[i] = o
		}
		if err := p.formatClauseList([]string{keyword.ORDER, keyword.BY}, items); err != nil {
			return err
		}
	}
	if stmt.Limit != nil {
		// LIMIT is inline: keyword and value on one line.
		p.kw(keyword.LIMIT)
		p.write(" ")
		if err := p.writeNode(stmt.Limit); err != nil {
			return err
		}
		p.writeln()
	}
	return nil
}

// formatClause prints a keyword line followed by an indented expression.
func (p *Printer) formatClause(words []string, n core.Node) error {
	p.kw(words...)
	p.writeln()
	p.indent()
	if err := p.writeNode(n); err != nil {
		return err
	}
	p.writeln()
	p.dedent()
	return nil
}

// formatClauseList prints a keyword line followed by one item per line.
func (p *Printer) formatClauseList(words []string, items []core.Node) error {
	p.kw(words...)
	p.writeln()
	p.indent()
	err := p.formatList(len(items), func(i int) error {
		return p.writeNode(items[i])
	}, ",", true)
	if err != nil {
		return err
	}
	p.writeln()
	p.dedent()
	return nil
}

func (p *Printer) formatInsertStmt(stmt *core.InsertStmt) error {
	if err := dialect.CheckInsert(stmt); err != nil {
		return err
	}
	p.kw(keyword.INSERT, keyword.INTO)
	p.write(" ")
	if err := p.writeNode(stmt.Table); err != nil {
		return err
	}
	if len(stmt.Columns) > 0 {
		cols := make([]core.Node, len(stmt.Columns))
		for i, c := range stmt.Columns {
			cols[i] = c
		}
		list, err := p.RenderList(cols...)
		if err != nil {
			return err
		}
		p.write(" (" + list + ")")
	}
	p.writeln()
	p.kw(keyword.VALUES)
	p.writeln()

	p.indent()
	err := p.formatList(len(stmt.Values), func(i int) error {
		row, err := p.RenderList(exprNodes(stmt.Values[i])...)
		if err != nil {
			return err
		}
		p.write("(" + row + ")")
		return nil
	}, ",", true)
	if err != nil {
		return err
	}
	p.writeln()
	p.dedent()
	return nil
}

func (p *Printer) formatCreateTableStmt(stmt *core.CreateTableStmt) error {
	p.kw(keyword.CREATE, keyword.TABLE)
	p.write(" ")
	if err := p.writeNode(stmt.Name); err != nil {
		return err
	}
	p.write(" (")
	p.writeln()

	p.indent()
	err := p.formatList(len(stmt.Columns), func(i int) error {
		return p.writeNode(stmt.Columns[i])
	}, ",", true)
	if err != nil {
		return err
	}
	p.writeln()
	p.dedent()
	p.write(")")
	p.writeln()
	return nil
}

func exprNodes(exprs []core.Expr) []core.Node {
	nodes := make([]core.Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}
