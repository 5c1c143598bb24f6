package commands

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/cli/config"
	"github.com/leapstack-labs/sqlfront/internal/cli/output"
	"github.com/leapstack-labs/sqlfront/pkg/dialect"
)

// stdinName labels input read from standard input.
const stdinName = "<stdin>"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the loaded configuration, the logger and a
// renderer for cmd's output streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, or defaults when the
// command runs without the root command's config loading.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Dialect:      config.DefaultDialect,
		OutputFormat: config.DefaultOutput,
		Jobs:         1,
		Serve:        config.ServeConfig{Addr: config.DefaultServeAddr, Port: config.DefaultServePort},
	}
}

// SourceDialect returns the dialect input is tokenized with.
func (c *CommandContext) SourceDialect() (dialect.Dialect, error) {
	return lookupDialect(c.Cfg.Dialect)
}

// OutputDialect returns the dialect output is rendered in. override wins
// over the configured target.
func (c *CommandContext) OutputDialect(override string) (dialect.Dialect, error) {
	if override != "" {
		return lookupDialect(override)
	}
	return lookupDialect(c.Cfg.OutputDialect())
}

func lookupDialect(name string) (dialect.Dialect, error) {
	d, ok := dialect.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %s)", name, strings.Join(dialect.List(), ", "))
	}
	return d, nil
}

// input is one SQL source named on the command line.
type input struct {
	Name string
	SQL  string
}

// collectPaths expands directories in args to the .sql files beneath
// them. No arguments, or a single "-", means standard input.
func collectPaths(args []string) ([]string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return nil, nil
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".sql") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// readInputs reads every source named by args.
func readInputs(cmd *cobra.Command, args []string) ([]input, error) {
	paths, err := collectPaths(args)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", stdinName, err)
		}
		return []input{{Name: stdinName, SQL: string(data)}}, nil
	}

	inputs := make([]input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{Name: path, SQL: string(data)})
	}
	return inputs, nil
}
