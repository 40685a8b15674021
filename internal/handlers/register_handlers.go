package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/quantum_bank/cmd/docs"
	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/SscSPs/quantum_bank/internal/middleware"
	"github.com/SscSPs/quantum_bank/internal/platform/config"
	"github.com/SscSPs/quantum_bank/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	RegisterValidators()

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}
	transferLimiter, err := middleware.NewMemoryLimiter(cfg.TransferRateLimit)
	if err != nil {
		return fmt.Errorf("invalid TRANSFER_RATE_LIMIT %q: %w", cfg.TransferRateLimit, err)
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	public := r.Group("/api/v1")
	registerAuthRoutes(public, newAuthHandler(services.User, cfg, posthog), loginLimiter)

	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.PosthogMiddleware(posthog),
	)
	registerAccountRoutes(v1, newAccountHandler(services.Account, services.Ledger, posthog))
	registerTransferRoutes(v1, newTransferHandler(services.Account, services.Transfer, services.Ledger, posthog), transferLimiter)
	registerLedgerRoutes(v1, services.Ledger)

	setupSwaggerRoutes(r, cfg)
	return nil
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
