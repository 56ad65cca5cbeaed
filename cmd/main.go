package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/okian/courtside/internal/adapters/http/api"
	"github.com/okian/courtside/internal/adapters/http/swagger"
	app "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "scorekeeper exited", logger.Error(err))
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled or the server fails.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithRosterFile(cfg.RosterFile),
		app.WithMaxActiveMatches(cfg.MaxActiveMatches),
		app.WithDedupeSize(cfg.DedupeSize),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	srv := newHTTPServer(ctx, cfg, svc, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(api.ErrServe, err)
		}
		return nil
	})

	g.Go(func() error {
		every(gctx, systemMetricsInterval, updateSystemMetrics)
		return nil
	})

	g.Go(func() error {
		every(gctx, serviceMetricsInterval, func() { _ = svc.GetStats() })
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
			return err
		}
		log.Info(shutdownCtx, "server stopped")
		return nil
	})

	return g.Wait()
}

// newHTTPServer builds the server with the API and docs routes.
func newHTTPServer(ctx context.Context, cfg *config.Config, svc *app.Service, log logger.Logger) *http.Server {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc,
		api.WithLogger(log.Named("api")),
		api.WithScoreRateLimit(cfg.ScoreRateLimit, cfg.ScoreRateBurst),
	)
	apiServer.Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// every calls fn on each tick until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
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
