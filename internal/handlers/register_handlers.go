package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/middleware"
	"github.com/SscSPs/ledger_posting_core/internal/platform/config"
	"github.com/SscSPs/ledger_posting_core/pkg/database"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil limiter disables rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	registerHealthRoutes(r)
	setupAPIV1Routes(r, cfg, services, rateLimiter)
}

// setupAPIV1Routes configures the /api/v1 groups. Reads need a valid token;
// writes additionally need a posting role and are rate limited per tenant.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	retry := database.RetryPolicy{
		MaxAttempts: cfg.SerializationRetries,
		BaseDelay:   cfg.RetryBaseDelay,
	}

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	writeChain := []gin.HandlerFunc{middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin, domain.RoleAccountant)}
	if rateLimiter != nil {
		writeChain = append(writeChain, middleware.RateLimit(rateLimiter))
	}
	write := v1.Group("", writeChain...)
	approve := middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin)

	entityRead := v1.Group("/entities/:entityID")
	entityWrite := write.Group("/entities/:entityID")

	registerAccountRoutes(entityRead, entityWrite, service.Account, retry)
	registerJournalRoutes(entityWrite, v1, write, approve, service.Journal, retry)
	registerExchangeRateRoutes(v1, write, service.ExchangeRate, retry)
	registerPostingRoutes(write, service.DocumentPosting, service.TransactionPosting, retry)
	registerDocumentRoutes(write, service.Document, retry)
}
