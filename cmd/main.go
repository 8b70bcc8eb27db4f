package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/edgeboard/internal/adapters/cache"
	"github.com/okian/edgeboard/internal/adapters/datasource"
	"github.com/okian/edgeboard/internal/adapters/http/api"
	"github.com/okian/edgeboard/internal/adapters/http/swagger"
	"github.com/okian/edgeboard/internal/adapters/refresh"
	"github.com/okian/edgeboard/internal/app"
	"github.com/okian/edgeboard/internal/config"
	"github.com/okian/edgeboard/pkg/logger"
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
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitWithWriter(os.Stdout, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	src, err := newSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	store, closeStore, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn(ctx, "cache close failed", logger.Error(err))
		}
	}()

	cached := cache.NewSource(src, store, time.Duration(cfg.CacheTTLSeconds)*time.Second,
		cache.WithLogger(log.Named("cache")))

	var pool *refresh.Pool
	if cfg.RefreshIntervalSeconds > 0 {
		pool = refresh.NewPool(cached, datasource.Catalog,
			refresh.WithWorkers(cfg.RefreshWorkers),
			refresh.WithInterval(time.Duration(cfg.RefreshIntervalSeconds)*time.Second),
			refresh.WithLogger(log.Named("refresh")),
		)
		go pool.Run(ctx)
	}

	svc := app.New(cached, app.WithLogger(log.Named("app")))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("source", cfg.Source),
			logger.String("cache", store.Backend()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	if pool != nil {
		if err := pool.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "refresh shutdown failed", logger.Error(err))
		}
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newSource builds the configured storage backend wrapped in retries.
func newSource(ctx context.Context, cfg *config.Config, log logger.Logger) (datasource.Source, error) {
	var base datasource.Source
	switch cfg.Source {
	case config.SourceS3:
		client, err := datasource.NewS3Client(ctx, cfg.S3Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		base = datasource.NewS3Source(client, cfg.S3Bucket,
			datasource.WithPrefix(cfg.S3Prefix),
			datasource.WithS3Logger(log.Named("s3")),
		)
	case config.SourceFile:
		base = datasource.NewFileSource(cfg.DataDir)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", config.ErrInvalidConfig, cfg.Source)
	}
	return datasource.NewRetrying(base,
		datasource.WithMaxTries(cfg.FetchMaxRetries),
		datasource.WithRetryLogger(log.Named("retry")),
	), nil
}

// newCache returns the configured dataset cache and its close function.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func() error, error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		r := cache.NewRedis(client)
		return r, r.Close, nil
	case config.CacheMemory:
		return cache.NewMemory(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown cache_backend %q", config.ErrInvalidConfig, cfg.CacheBackend)
	}
}

// newMux registers docs, ops and API routes.
func newMux(ctx context.Context, svc api.Dependencies, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, api.WithLogger(log.Named("api"))).Register(ctx, mux)
	return mux
}
