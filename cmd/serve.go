package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/server"
	"github.com/desertthunder/cinex/internal/services"
)

// Serve runs the search endpoint until interrupted.
//
// Requests are answered from the catalog, so the search client can point at this server.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = int(port)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := server.NewSearchRouter(r.catalog, r.logger)
	srv := server.NewServer(cfg.Addr(), router, r.logger)

	r.writePlain("Serving movie search on http://%s%s{query}\n", cfg.Addr(), services.SearchPath)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
