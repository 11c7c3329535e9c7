package handlers

import (
	"net/http"
	"time"

	"github.com/animal-wellness/aw_backend/cmd/docs"
	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/middleware"
	"github.com/animal-wellness/aw_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the infrastructure the routes need besides the services.
// Both fields are optional.
type RouteDeps struct {
	LoginLimiter     *limiter.Limiter
	IdempotencyStore middleware.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public authentication routes
	registerAuthRoutes(r, deps.LoginLimiter, services.Auth)

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
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	admin := middleware.RequireRole(domain.RoleAdmin)
	idempotent := middleware.Idempotency(deps.IdempotencyStore, deps.IdempotencyTTL)

	// Routes shared by admins and partner users; handlers scope partner access.
	registerMeRoutes(v1, service.User)
	registerCatalogRoutes(v1, admin, service.Company, service.Product)
	registerPartnerRoutes(v1, admin, idempotent, service.Partner)
	registerWithdrawalRoutes(v1, admin, idempotent, service.Withdrawal)
	registerOrderRoutes(v1, admin, service.Order, service.Invoice)

	// Back office
	backOffice := v1.Group("", admin)
	registerUserRoutes(backOffice, service.User)
	registerPriceUpdateRoutes(backOffice, idempotent, service.PriceUpdate)
	registerFinanceRoutes(backOffice, idempotent, service)
	registerExpenseRoutes(backOffice, service.Expense)
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
