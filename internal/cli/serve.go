package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"git.cscs.ch/openchami/chamicore-catalog/api"
	"git.cscs.ch/openchami/chamicore-catalog/internal/audit"
	"git.cscs.ch/openchami/chamicore-catalog/internal/config"
	"git.cscs.ch/openchami/chamicore-catalog/internal/metrics"
	"git.cscs.ch/openchami/chamicore-catalog/internal/seed"
	"git.cscs.ch/openchami/chamicore-catalog/internal/server"
	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
	"git.cscs.ch/openchami/chamicore-catalog/internal/web"
)

const shutdownTimeout = 15 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [service...]",
		Short: "Run the HTTP server",
		Long: `Run the catalog HTTP server.

Services named on the command line replace CHAMICORE_CATALOG_SERVICES.
Valid names: ` + strings.Join(store.Resources, ", ") + `.`,
		ValidArgs: store.Resources,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			initLogging(cfg, rootOpts.Build.Version)

			srv, err := buildServer(cfg, rootOpts.Build)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, srv)
		},
	}
}

// loadConfig reads the environment and applies a service list override.
func loadConfig(services []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if len(services) > 0 {
		cfg.Services, err = config.ParseServices(strings.Join(services, ","))
		if err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func initLogging(cfg config.Config, version string) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.DevMode {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		return
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("service", "catalog").Str("version", version).Logger()
}

// buildServer seeds the stores and assembles the HTTP server for cfg.
func buildServer(cfg config.Config, build BuildInfo) (*server.Server, error) {
	seeds, err := seed.Load()
	if err != nil {
		return nil, fmt.Errorf("loading seed data: %w", err)
	}

	var observe store.ObserverFunc
	if cfg.MetricsEnabled {
		metrics.Register()
		observe = metrics.StoreObserver
	}
	cat, err := store.NewCatalog(seeds, observe)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	auditLogger := audit.NewLogger(log.Logger)
	pages, err := web.New(cfg.SearchURL, cfg.MinPasswordLength, auditLogger)
	if err != nil {
		return nil, fmt.Errorf("building web pages: %w", err)
	}

	return server.New(cat, cfg, build.Version, build.Commit, build.BuildDate,
		server.WithOpenAPISpec(api.OpenAPISpec),
		server.WithAuditLogger(auditLogger),
		server.WithWeb(pages),
	), nil
}

// serve runs srv until ctx is canceled or a termination signal arrives, then
// drains in-flight requests.
func serve(ctx context.Context, cfg config.Config, srv *server.Server) error {
	logger := log.With().Str("component", "main").Logger()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", cfg.ListenAddr).
			Strs("services", cfg.Services).
			Bool("metrics", cfg.MetricsEnabled).
			Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	logger.Info().Msg("server stopped gracefully")
	return nil
}
