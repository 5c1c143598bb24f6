package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"github.com/leapstack-labs/sqlfront/pkg/format"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
)

const (
	replPrompt     = "sqlfront> "
	replContPrompt = "     ...> "
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively format SQL",
		Long: `Start an interactive session that formats each statement as it is
entered. A statement ends with a semicolon, or with a \. line after
COPY ... FROM stdin.

Dot-commands change the session: .dialect, .to, .pretty, .help, .quit.`,
		Example: `  # Read postgres, print generic
  sqlfront repl -d postgres --target-dialect generic`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)

	src, err := cmdCtx.SourceDialect()
	if err != nil {
		return err
	}
	dst, err := cmdCtx.OutputDialect("")
	if err != nil {
		return err
	}
	s := &replSession{src: src, dst: dst, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newKeywordCompleter(src),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(s.out, "sqlfront REPL (%s -> %s)\n", src.Name(), dst.Name())
	_, _ = fmt.Fprintln(s.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(s.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.buf.Reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		prev := s.src
		if s.feed(line) {
			break
		}
		if s.src != prev {
			rl.Config.AutoComplete = newKeywordCompleter(s.src)
		}
		if s.buf.Len() > 0 {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
	return nil
}

// replSession is the state of one interactive session.
type replSession struct {
	src, dst dialect.Dialect
	pretty   bool
	buf      strings.Builder
	out      io.Writer
	errOut   io.Writer
}

// feed handles one input line and reports whether the session ends.
func (s *replSession) feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if s.buf.Len() == 0 {
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.dotCommand(trimmed)
		}
	}

	// Lines are kept verbatim so COPY data survives.
	s.buf.WriteString(line)
	s.buf.WriteString("\n")
	if !s.complete(trimmed) {
		return false
	}

	sql := s.buf.String()
	s.buf.Reset()
	if err := s.render(sql); err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
	}
	return false
}

// complete reports whether the buffer holds a whole statement once the
// line last is added.
func (s *replSession) complete(last string) bool {
	if last == `\.` {
		return true
	}
	if !strings.HasSuffix(last, ";") {
		return false
	}
	// A COPY from stdin continues past its semicolon until \.
	head := strings.ToUpper(strings.TrimSpace(s.buf.String()))
	return !(strings.HasPrefix(head, "COPY") && strings.Contains(head, "STDIN"))
}

func (s *replSession) render(sql string) error {
	stmts, err := parser.ParseScript(sql, s.src)
	if err != nil {
		return err
	}
	var out string
	if s.pretty {
		out, err = format.PrettyScript(stmts, s.dst)
	} else {
		out, err = format.Script(stmts, s.dst)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, out)
	return nil
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".dialect", ".to":
		target := &s.src
		if command == ".to" {
			target = &s.dst
		}
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(s.out, (*target).Name())
			return false
		}
		d, err := lookupDialect(strings.ToLower(parts[1]))
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		*target = d

	case ".pretty":
		if len(parts) > 1 {
			s.pretty = parts[1] == "on"
		} else {
			s.pretty = !s.pretty
		}
		_, _ = fmt.Fprintf(s.out, "pretty: %s\n", onOff(s.pretty))

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .dialect [name]  Show or set the input dialect
  .to [name]       Show or set the output dialect
  .pretty [on|off] Toggle multi-line formatting
  .quit / .exit    Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - COPY ... FROM stdin data ends with a \. line
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// historyFile returns the REPL history path, or "" to disable history.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "sqlfront")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// newKeywordCompleter completes dot-commands, dialect names and the
// reserved words of d.
func newKeywordCompleter(d dialect.Dialect) *readline.PrefixCompleter {
	dialects := make([]readline.PrefixCompleterInterface, 0, len(dialect.List()))
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}

	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".to", dialects...),
		readline.PcItem(".pretty", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, w := range d.Keywords().Words() {
		items = append(items, readline.PcItem(w))
	}
	return readline.NewPrefixCompleter(items...)
}
