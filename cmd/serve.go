package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/playlift/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP transfer API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	r.prepare(cmd)

	host := cmd.String("host")
	if host == "" {
		host = r.config.Server.Host
	}
	port := cmd.Int("port")
	if port == 0 {
		port = r.config.Server.Port
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestLogging(r.logger))
	router.Handler(server.NewTransferHandler(r.config, r.logger))
	router.Handler(&server.HeadersHandler{})
	router.Handler(&server.HealthHandler{})

	// CORS wraps the whole router so preflight requests are answered before
	// method matching can reject them.
	srv := server.New(host, port, server.CORS()(router), r.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
