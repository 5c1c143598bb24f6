package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	All bool // include whitespace and comments
}

// tokenRow is the structured form of one token.
type tokenRow struct {
	Type    string `json:"type" yaml:"type"`
	Text    string `json:"text" yaml:"text"`
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Show the token stream of SQL text",
		Long: `Tokenize SQL with the configured dialect and list the tokens.

Whether a word is a keyword depends on the dialect: PARQUET is a keyword
in the generic dialect and an identifier in postgres.`,
		Example: `  # Compare keyword recognition between dialects
  echo "SELECT parquet FROM t" | sqlfront tokens -d generic
  echo "SELECT parquet FROM t" | sqlfront tokens -d postgres`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include whitespace and comment tokens")
	return cmd
}

func runTokens(cmd *cobra.Command, args []string, opts *TokensOptions) error {
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
	if len(inputs) != 1 {
		return fmt.Errorf("tokens expects one file, got %d", len(inputs))
	}

	toks, err := parser.Tokenize(inputs[0].SQL, d)
	if err != nil {
		return fmt.Errorf("%s: %w", inputs[0].Name, err)
	}

	rows := make([]tokenRow, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == token.EOF || (tok.IsWhitespace() && !opts.All) {
			continue
		}
		rows = append(rows, tokenRow{
			Type:    tok.Type.String(),
			Text:    tok.Raw(),
			Keyword: tok.Keyword,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
		})
	}

	if ok, err := r.Structured(rows); ok {
		return err
	}

	table := make([][]any, len(rows))
	for i, row := range rows {
		table[i] = []any{row.Type, fmt.Sprintf("%q", row.Text), fmt.Sprintf("%d:%d", row.Line, row.Column)}
	}
	r.Table([]string{"Type", "Text", "Position"}, table)
	return nil
}
