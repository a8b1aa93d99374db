package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
	"github.com/SscSPs/ledger_posting_core/internal/middleware"
	"github.com/SscSPs/ledger_posting_core/pkg/database"
)

// accountHandler handles HTTP requests related to GL accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	retry          database.RetryPolicy
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, retry database.RetryPolicy) *accountHandler {
	return &accountHandler{
		accountService: as,
		retry:          retry,
	}
}

// registerAccountRoutes registers account routes on the entity-scoped groups.
// Writes go through the write group, which carries role and rate checks.
func registerAccountRoutes(read, write *gin.RouterGroup, accountService portssvc.AccountSvcFacade, retry database.RetryPolicy) {
	h := newAccountHandler(accountService, retry)

	read.GET("/accounts/:accountID", h.getAccount)

	accounts := write.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
}

// createAccount adds a GL account to the entity's chart of accounts.
func (h *accountHandler) createAccount(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req, "CreateAccount") {
		return
	}
	entityID := c.Param("entityID")

	acc, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (*domain.GLAccount, error) {
		return h.accountService.CreateAccount(ctx, actor, entityID, req)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("GL account created",
		slog.String("entity_id", entityID), slog.String("gl_account_id", acc.GLAccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(acc))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	acc, err := h.accountService.GetAccountByID(c.Request.Context(), actor, c.Param("entityID"), c.Param("accountID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// deactivateAccount marks the account inactive. Accounts referenced by
// draft lines are refused.
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entityID, accountID := c.Param("entityID"), c.Param("accountID")

	_, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.accountService.DeactivateAccount(ctx, actor, entityID, accountID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
