package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-hpo/pkg/api"
	"github.com/dd0wney/cluso-hpo/pkg/config"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/metrics"
	"github.com/dd0wney/cluso-hpo/pkg/query"
	"github.com/dd0wney/cluso-hpo/pkg/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST and GraphQL API",
		Long: `serve starts listening at once and answers 503 until the ontology is
loaded. SIGHUP re-reads the ontology; SIGINT and SIGTERM drain in-flight
requests and exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, newLogger(cmd.OutOrStdout(), cfg))
		},
	}
}

// runServe blocks until ctx is done or a listener or the initial load
// fails.
func runServe(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	reg := metrics.NewRegistry()
	srv := api.NewServer(cfg, api.Options{Metrics: reg, Logger: logger, Version: version})

	apiServer := server.NewGracefulServer("api", srv.NewHTTPServer(), logger)
	apiServer.SetShutdownTimeout(cfg.Server.ShutdownTimeout)

	load := func(ctx context.Context) error {
		svc, err := query.Open(ctx, cfg.Ontology.DataPath, s3Options(cfg), serviceOptions(cfg, reg, logger))
		if err != nil {
			return err
		}
		return srv.SetService(svc)
	}
	apiServer.SetReloadFunc(load)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.Run(gctx)
	})

	if cfg.Server.MetricsAddr != "" {
		metricsServer := server.NewGracefulServer("metrics", &http.Server{
			Addr:              cfg.Server.MetricsAddr,
			Handler:           srv.MetricsHandler(),
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
		}, logger)
		metricsServer.SetShutdownTimeout(cfg.Server.ShutdownTimeout)
		g.Go(func() error {
			return metricsServer.Run(gctx)
		})
	}

	g.Go(func() error {
		if err := load(gctx); err != nil {
			if gctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("initial ontology load: %w", err)
		}
		apiServer.WatchReload(gctx)
		return nil
	})

	return g.Wait()
}
