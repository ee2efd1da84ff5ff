package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bizbooks_backend/cmd/docs"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/middleware"
	"github.com/SscSPs/bizbooks_backend/internal/platform/config"
	"github.com/SscSPs/bizbooks_backend/internal/utils/analytics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps are the optional collaborators of the route tree. Nil fields
// switch the matching feature off.
type RouteDeps struct {
	RateLimiter *limiter.Limiter
	Analytics   *analytics.Client
	// HealthCheck is probed by /health when set, e.g. a database ping.
	HealthCheck func(ctx context.Context) error
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", healthHandler(deps.HealthCheck))

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	chain := []gin.HandlerFunc{}
	if deps.RateLimiter != nil {
		chain = append(chain, middleware.RateLimit(deps.RateLimiter))
	}
	chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if deps.Analytics.IsInitialized() {
		chain = append(chain, middleware.AnalyticsMiddleware(deps.Analytics))
	}
	v1 := r.Group("/api/v1", chain...)

	RegisterAccountRoutes(v1, service.Account)
	RegisterJournalRoutes(v1, service.Journal)
	RegisterReportingRoutes(v1, service.Reporting)
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
				c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
