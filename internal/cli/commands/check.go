package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/adapter"
	"github.com/leapstack-labs/sqlfront/pkg/core"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Verify bool // prepare statements against verify.* database
}

// errCheckFailed is returned when any file fails to check.
var errCheckFailed = errors.New("check failed")

// checkResult is the outcome for one input.
type checkResult struct {
	File       string              `json:"file" yaml:"file"`
	Statements int                 `json:"statements" yaml:"statements"`
	Error      string              `json:"error,omitempty" yaml:"error,omitempty"`
	Verified   []core.VerifyResult `json:"verified,omitempty" yaml:"verified,omitempty"`
	stmts      []core.Stmt
}

func (c *checkResult) failed() bool {
	if c.Error != "" {
		return true
	}
	for _, v := range c.Verified {
		if v.Status == core.VerifyFailed {
			return true
		}
	}
	return false
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check SQL files for syntax errors",
		Long: `Parse every file and report the first lexical or syntax error in each.

Files are checked in parallel (see --jobs). With --verify, every
statement is also prepared against the database configured under
verify in sqlfront.yaml; nothing is executed.`,
		Example: `  # Check a directory of SQL files
  sqlfront check ./migrations

  # Check against a live postgres
  SQLFRONT_VERIFY__TYPE=postgres SQLFRONT_VERIFY__DSN=postgres://localhost/app \
    sqlfront check -d postgres --verify ./queries`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Prepare statements against the verify database")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	ctx := cmd.Context()

	d, err := cmdCtx.SourceDialect()
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	results := parseAll(ctx, inputs, d, cmdCtx.Cfg.Jobs)

	if opts.Verify {
		if cmdCtx.Cfg.Verify == nil {
			return fmt.Errorf("--verify needs verify.type in sqlfront.yaml")
		}
		a, err := adapter.Open(ctx, cmdCtx.Cfg.Verify.AdapterConfig(), cmdCtx.Logger)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if err := verifyResults(ctx, a, results); err != nil {
			return err
		}
	}

	failed := renderCheck(r, results)
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s): %w", failed, len(results), errCheckFailed)
	}
	return nil
}

// parseAll parses inputs with at most jobs goroutines. One dialect value
// is shared by all of them.
func parseAll(ctx context.Context, inputs []input, d dialect.Dialect, jobs int) []*checkResult {
	results := make([]*checkResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, in := range inputs {
		g.Go(func() error {
			res := &checkResult{File: in.Name}
			results[i] = res
			if err := gctx.Err(); err != nil {
				res.Error = err.Error()
				return nil
			}
			stmts, err := parser.ParseScript(in.SQL, d)
			if err != nil {
				res.Error = err.Error()
				return nil
			}
			res.Statements = len(stmts)
			res.stmts = stmts
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// verifyResults prepares the statements of every file that parsed.
// Connection errors stop the run.
func verifyResults(ctx context.Context, a adapter.Adapter, results []*checkResult) error {
	for _, res := range results {
		if res.Error != "" {
			continue
		}
		verified, err := adapter.VerifyAll(ctx, a, res.stmts)
		if err != nil {
			return fmt.Errorf("%s: %w", res.File, err)
		}
		res.Verified = verified
	}
	return nil
}

func renderCheck(r *output.Renderer, results []*checkResult) int {
	failed := 0
	for _, res := range results {
		if res.failed() {
			failed++
		}
	}

	if ok, err := r.Structured(results); ok {
		if err != nil {
			r.Error(err.Error())
		}
		return failed
	}

	for _, res := range results {
		switch {
		case res.Error != "":
			r.Fail(fmt.Sprintf("%s: %s", res.File, res.Error))
		case res.failed():
			r.Fail(fmt.Sprintf("%s: %d statement(s)", res.File, res.Statements))
		default:
			r.Success(fmt.Sprintf("%s: %d statement(s)", res.File, res.Statements))
		}
		for i, v := range res.Verified {
			switch v.Status {
			case core.VerifyFailed:
				r.Printf("    statement %d: %s\n", i+1, v.Reason)
			case core.VerifySkipped:
				r.Muted(fmt.Sprintf("    statement %d skipped: %s", i+1, v.Reason))
			}
		}
	}
	return failed
}
