package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfront/internal/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr string
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser and formatter over HTTP",
		Long: `Start an HTTP server exposing the SQL pipeline.

Endpoints:
  POST /v1/parse     syntax trees as JSON
  POST /v1/format    canonical or transpiled SQL
  POST /v1/tokens    token stream
  GET  /v1/dialects  registered dialects
  GET  /healthz      liveness

Request bodies are JSON: {"sql": "...", "dialect": "...", "to": "..."}.
The configured dialect is used when a request names none.`,
		Example: `  # Serve on the default address
  sqlfront serve

  # Listen on all interfaces
  sqlfront serve --addr 0.0.0.0 --port 9000

  # Format over HTTP
  curl -s localhost:8080/v1/format -H 'Content-Type: application/json' \
    -d '{"sql":"select 1","to":"postgres"}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from serve.addr)")
	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "Listen port (default from serve.port)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)

	if _, err := cmdCtx.SourceDialect(); err != nil {
		return err
	}

	addr := serveAddress(cmdCtx, cmd, opts)
	srv := server.New(server.Config{
		Addr:    addr,
		Dialect: cmdCtx.Cfg.Dialect,
		Logger:  cmdCtx.Logger,
	})
	bound, err := srv.Listen()
	if err != nil {
		return err
	}
	cmdCtx.Renderer.Success("listening on http://" + bound.String())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Serve(ctx)
}

// serveAddress combines serve.* configuration with flags that were set.
func serveAddress(cmdCtx *CommandContext, cmd *cobra.Command, opts *ServeOptions) string {
	serve := cmdCtx.Cfg.Serve
	if cmd.Flags().Changed("addr") {
		serve.Addr = opts.Addr
	}
	if cmd.Flags().Changed("port") {
		serve.Port = opts.Port
	}
	return serve.Address()
}
