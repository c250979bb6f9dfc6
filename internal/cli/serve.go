package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/babynames/internal/adapters/http/api"
	"github.com/okian/babynames/internal/adapters/http/site"
	"github.com/okian/babynames/internal/adapters/http/swagger"
	"github.com/okian/babynames/internal/adapters/repository"
	app "github.com/okian/babynames/internal/app"
	"github.com/okian/babynames/internal/config"
	"github.com/okian/babynames/internal/loader"
	"github.com/okian/babynames/pkg/logger"
	"github.com/okian/babynames/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr, source string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web explorer and JSON API",
		Long: `Serve the explorer dashboard, the JSON and PNG endpoints, the About page
and Prometheus metrics. SIGINT or SIGTERM triggers a graceful shutdown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *opts.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			if source != "" {
				cfg.SourceURL = source
			}

			// Root context with cancel on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Addr, err)
			}
			return Serve(ctx, &cfg, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	cmd.Flags().StringVar(&source, "source", "", "archive URL or path (overrides source_url)")
	return cmd
}

// NewService builds the explorer service from configuration.
func NewService(cfg *config.Config, lg logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(lg.Named("service")),
		app.WithLoader(loader.New(
			loader.WithFetcher(loader.NewHTTPFetcher(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond)),
			loader.WithLogger(lg.Named("loader")),
		)),
		app.WithCache(repository.NewMemoryCache()),
		app.WithSourceURL(cfg.SourceURL),
		app.WithMergeDuplicates(cfg.MergeDuplicates),
		app.WithMaxTableRows(cfg.MaxTableRows),
		app.WithDefaultYears(cfg.DefaultYearMin, cfg.DefaultYearMax),
		app.WithWarmStart(cfg.WarmOnStart),
	)
}

// NewHandler registers every route of the explorer on a fresh mux.
func NewHandler(ctx context.Context, cfg *config.Config, svc *app.Service) http.Handler {
	mux := http.NewServeMux()
	site.Register(ctx, mux)
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, api.WithChartSize(cfg.ChartWidth, cfg.ChartHeight)).Register(ctx, mux)
	return mux
}

// Serve runs the explorer on ln until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	lg := logger.Get()

	svc := NewService(cfg, lg)
	if err := svc.Start(ctx); err != nil {
		_ = ln.Close()
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Handler:           NewHandler(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      time.Duration(cfg.FetchTimeoutMS)*time.Millisecond + readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info(ctx, "starting HTTP server", logger.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server failure
	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	lg.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}

	lg.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
