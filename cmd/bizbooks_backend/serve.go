package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/cache"
	"github.com/SscSPs/bizbooks_backend/internal/core/services"
	"github.com/SscSPs/bizbooks_backend/internal/handlers"
	"github.com/SscSPs/bizbooks_backend/internal/middleware"
	"github.com/SscSPs/bizbooks_backend/internal/platform/config"
	"github.com/SscSPs/bizbooks_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/bizbooks_backend/internal/utils/analytics"
	"github.com/SscSPs/bizbooks_backend/internal/utils/validation"
	"github.com/SscSPs/bizbooks_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	if migrateOnStart {
		if err := runMigrations(cfg, logger, func(m *migrate.Migrate) error { return m.Up() }); err != nil {
			return err
		}
	}

	reports, closeCache, err := newReportCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	serviceContainer := services.NewServiceContainer(pgsql.NewRepositoryProvider(dbPool), reports)

	if err := validation.Register(); err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}
	analyticsClient := analytics.NewClient(cfg.PostHogAPIKey, cfg.PostHogEndpoint, logger)
	defer analyticsClient.Close()

	deps := handlers.RouteDeps{
		RateLimiter: rateLimiter,
		Analytics:   analyticsClient,
	}
	if cfg.EnableDBCheck {
		deps.HealthCheck = dbPool.Ping
	}
	handlers.RegisterRoutes(r, cfg, serviceContainer, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// newReportCache shares reports through redis when an address is configured
// and keeps them in process otherwise.
func newReportCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*cache.Reports, func(), error) {
	if cfg.RedisAddress == "" {
		logger.Info("Using in-memory report cache", slog.Int("size", cfg.ReportCacheSize), slog.Duration("ttl", cfg.ReportCacheTTL))
		return cache.NewReports(cache.NewMemoryStore(cfg.ReportCacheSize, cfg.ReportCacheTTL)), func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisAddress)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Using redis report cache", slog.String("address", cfg.RedisAddress))
	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	return cache.NewReports(cache.NewRedisStore(client, cfg.ReportCacheTTL)), closeClient, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}
