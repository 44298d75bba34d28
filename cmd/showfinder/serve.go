package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/showfinder/showfinder/internal/client"
	"github.com/showfinder/showfinder/internal/config"
	"github.com/showfinder/showfinder/internal/health"
	"github.com/showfinder/showfinder/internal/metrics"
	"github.com/showfinder/showfinder/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, d, config.GetConfig())
		},
	}
}

func serve(ctx context.Context, d deps, cfg *config.Config) error {
	logger := config.GetLogger()

	logger.Info().
		Str("tvmaze_base_url", cfg.TVMazeBaseURL).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Str("cache_type", cfg.Cache.Type).
		Msg("Application started with configuration")

	flush := initSentry(cfg)
	defer flush()

	var opts []client.Option
	var healthServer *health.Server
	if cfg.Health.Enabled {
		healthServer = health.NewServer()
		opts = append(opts, client.WithAvailabilityListener(healthServer.SetAvailable))
	}

	tvmaze := d.newClient(cfg, opts...)
	defer func() {
		if err := tvmaze.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close TVMaze client")
		}
	}()

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	if healthServer != nil {
		port := cfg.Health.Port
		if port == 0 {
			port = 9091
		}
		address := fmt.Sprintf("%s:%d", cfg.Server.Address, port)
		listener, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("listen for health checks on %s: %w", address, err)
		}
		go func() {
			logger.Info().Str("address", address).Msg("Starting gRPC health server")
			if err := healthServer.Serve(listener); err != nil {
				logger.Error().Err(err).Msg("Failed to serve gRPC health")
			}
		}()
		defer healthServer.Stop()
	}

	server := web.NewServer(cfg, tvmaze)
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web server: %w", err)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
