package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/astdump"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [files...]",
		Short: "Print the syntax tree of SQL statements",
		Long: `Parse SQL and print the syntax tree of every statement.

Reads standard input when no file is given. Directories are searched
for .sql files.

Output adapts to environment:
  - Terminal and markdown: YAML documents
  - JSON: an array of statement trees`,
		Example: `  # Parse a dump with the postgres dialect
  sqlfront parse --dialect postgres dump.sql

  # Parse from stdin as JSON
  echo "SELECT a FROM t" | sqlfront parse -o json`,
		RunE: runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	d, err := cmdCtx.SourceDialect()
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	var docs []astdump.Object
	for _, in := range inputs {
		stmts, err := parser.ParseScript(in.SQL, d)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		objs, err := astdump.DumpAll(stmts, d)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		cmdCtx.Logger.Debug("parsed", "file", in.Name, "statements", len(stmts))
		docs = append(docs, objs...)
	}

	if r.EffectiveMode() == output.ModeJSON {
		data, err := astdump.JSON(docs)
		if err != nil {
			return err
		}
		r.Println(string(data))
		return nil
	}

	data, err := astdump.YAML(docs)
	if err != nil {
		return err
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatCodeBlock("yaml", string(data)))
		return nil
	}
	r.Printf("%s", data)
	return nil
}
