package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// DialectsOptions holds options for the dialects command.
type DialectsOptions struct {
	Keywords bool
}

// dialectInfo is the structured form of a registered dialect.
type dialectInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Title    string   `json:"title" yaml:"title"`
	Keywords int      `json:"keywords" yaml:"keywords"`
	Words    []string `json:"words,omitempty" yaml:"words,omitempty"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	opts := &DialectsOptions{}
	cmd := &cobra.Command{
		Use:   "dialects [name]",
		Short: "List registered SQL dialects",
		Long: `List the registered dialects and the size of their keyword sets.

Given a dialect name, show that dialect only. With --keywords the
reserved words are listed as well.`,
		Example: `  # All dialects
  sqlfront dialects

  # Reserved words of postgres
  sqlfront dialects postgres --keywords`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDialects,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Keywords, "keywords", "k", false, "List reserved words")
	return cmd
}

func runDialects(cmd *cobra.Command, args []string, opts *DialectsOptions) error {
	r := NewCommandContext(cmd).Renderer

	names := dialect.List()
	if len(args) == 1 {
		d, err := lookupDialect(strings.ToLower(args[0]))
		if err != nil {
			return err
		}
		names = []string{d.Name()}
	}

	title := cases.Title(language.English)
	infos := make([]dialectInfo, 0, len(names))
	for _, name := range names {
		d := dialect.MustGet(name)
		info := dialectInfo{
			Name:     name,
			Title:    title.String(name),
			Keywords: d.Keywords().Len(),
		}
		if opts.Keywords {
			info.Words = d.Keywords().Words()
		}
		infos = append(infos, info)
	}

	if ok, err := r.Structured(infos); ok {
		return err
	}

	rows := make([][]any, len(infos))
	for i, info := range infos {
		rows[i] = []any{info.Name, info.Title, info.Keywords}
	}
	r.Table([]string{"Name", "Title", "Keywords"}, rows)

	if !opts.Keywords {
		return nil
	}
	for _, info := range infos {
		r.Println()
		r.Header(fmt.Sprintf("%s keywords", info.Title))
		if r.EffectiveMode() == output.ModeMarkdown {
			r.Println(output.FormatCodeBlock("", strings.Join(info.Words, "\n")))
			continue
		}
		r.Println(strings.Join(info.Words, " "))
	}
	return nil
}
