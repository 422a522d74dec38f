package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/okian/broodsheet/internal/adapters/cache"
	"github.com/okian/broodsheet/internal/adapters/http/api"
	"github.com/okian/broodsheet/internal/adapters/mq/tasks"
	"github.com/okian/broodsheet/internal/adapters/repository"
	"github.com/okian/broodsheet/internal/adapters/sprites"
	"github.com/okian/broodsheet/internal/app"
	"github.com/okian/broodsheet/internal/config"
	"github.com/okian/broodsheet/internal/extract"
	"github.com/okian/broodsheet/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Background runner for fire-and-forget cache writes.
	runner := tasks.New(
		tasks.WithQueueSize(cfg.TaskQueueSize),
		tasks.WithWorkers(cfg.TaskWorkers),
	)
	runner.Start(ctx)
	defer runner.Stop()

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithColorLookup(repository.NewColorLookup(filepath.Join(cfg.DataDir, extract.ColorTableFile))),
		app.WithSpeciesStore(repository.NewSpeciesStore(filepath.Join(cfg.DataDir, extract.SpeciesTableFile))),
		app.WithCache(cache.NewInMemoryCache(
			cache.WithTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
			cache.WithCapacity(cfg.CacheCapacity),
		)),
		app.WithSpriteStore(sprites.NewClient(
			cfg.SpriteBaseURL,
			sprites.WithTimeout(time.Duration(cfg.SpriteTimeoutMS)*time.Millisecond),
		)),
		app.WithTasks(runner),
		app.WithDefaultGame(cfg.DefaultGame),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}
