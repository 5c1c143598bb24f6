package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/internal/watch"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	To     string // output dialect, overrides target_dialect
	Pretty bool   // one clause per line
	Check  bool   // report files that are not formatted
	Write  bool   // rewrite files in place
	Watch  bool   // repeat on every change
}

// errNotFormatted is returned by --check when a file would change.
var errNotFormatted = errors.New("files are not formatted")

// fmtResult is the structured form of one formatted input.
type fmtResult struct {
	File    string `json:"file" yaml:"file"`
	SQL     string `json:"sql" yaml:"sql"`
	Changed bool   `json:"changed" yaml:"changed"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format SQL in canonical form",
		Long: `Parse SQL and print it back in canonical form.

Input is tokenized with --dialect and rendered in --to (or
target_dialect), so fmt also translates between dialects.`,
		Example: `  # Canonicalize a file
  sqlfront fmt query.sql

  # Translate a postgres dump to generic SQL
  sqlfront fmt -d postgres --to generic dump.sql

  # Fail in CI when files are not formatted
  sqlfront fmt --check ./sql

  # Keep files formatted while editing
  sqlfront fmt --write --watch ./sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "Dialect to render in (default: target_dialect or --dialect)")
	cmd.Flags().BoolVarP(&opts.Pretty, "pretty", "p", false, "Put each clause on its own line")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit non-zero when a file is not formatted")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the file")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run when files change")
	cmd.MarkFlagsMutuallyExclusive("check", "write")

	_ = cmd.RegisterFlagCompletionFunc("to", completeDialects)
	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	src, err := cmdCtx.SourceDialect()
	if err != nil {
		return err
	}
	dst, err := cmdCtx.OutputDialect(opts.To)
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}
	onStdin := len(inputs) == 1 && inputs[0].Name == stdinName
	if onStdin && (opts.Write || opts.Watch) {
		return fmt.Errorf("--write and --watch need file arguments")
	}

	err = fmtInputs(r, inputs, src, dst, opts)
	if !opts.Watch {
		return err
	}
	if err != nil {
		r.Error(err.Error())
	}

	w, err := watch.New(cmdCtx.Logger, 0)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	if err := w.Add(args...); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r.Muted(fmt.Sprintf("watching %d path(s), press Ctrl+C to stop", len(args)))
	return w.Run(ctx, func(path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			r.Error(err.Error())
			return
		}
		if err := fmtInputs(r, []input{{Name: path, SQL: string(data)}}, src, dst, opts); err != nil {
			r.Error(err.Error())
		}
	})
}

// formatSource parses sql in src and renders every statement in dst.
func formatSource(sql string, src, dst dialect.Dialect, pretty bool) (string, error) {
	stmts, err := parser.ParseScript(sql, src)
	if err != nil {
		return "", err
	}
	if pretty {
		return format.PrettyScript(stmts, dst)
	}
	return format.Script(stmts, dst)
}

func fmtInputs(r *output.Renderer, inputs []input, src, dst dialect.Dialect, opts *FmtOptions) error {
	results := make([]fmtResult, 0, len(inputs))
	for _, in := range inputs {
		formatted, err := formatSource(in.SQL, src, dst, opts.Pretty)
		if err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
		results = append(results, fmtResult{File: in.Name, SQL: formatted, Changed: formatted != in.SQL})
	}

	switch {
	case opts.Check:
		return reportCheck(r, results)
	case opts.Write:
		return writeResults(r, results)
	}

	if ok, err := r.Structured(results); ok {
		return err
	}
	for _, res := range results {
		if len(results) > 1 {
			r.Header(res.File)
		}
		r.SQL(res.SQL)
	}
	return nil
}

func reportCheck(r *output.Renderer, results []fmtResult) error {
	changed := 0
	for _, res := range results {
		if res.Changed {
			changed++
			r.Fail(res.File)
		}
	}
	if changed > 0 {
		return fmt.Errorf("%d of %d: %w", changed, len(results), errNotFormatted)
	}
	r.Success(fmt.Sprintf("%d file(s) formatted", len(results)))
	return nil
}

func writeResults(r *output.Renderer, results []fmtResult) error {
	for _, res := range results {
		if !res.Changed {
			continue
		}
		info, err := os.Stat(res.File)
		if err != nil {
			return err
		}
		if err := os.WriteFile(res.File, []byte(res.SQL), info.Mode().Perm()); err != nil {
			return fmt.Errorf("write %s: %w", res.File, err)
		}
		r.Success("formatted " + res.File)
	}
	return nil
}

func completeDialects(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return dialect.List(), cobra.ShellCompDirectiveNoFileComp
}
