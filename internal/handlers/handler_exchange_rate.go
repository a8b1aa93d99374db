package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
	"github.com/SscSPs/ledger_posting_core/pkg/database"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	retry               database.RetryPolicy
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, retry database.RetryPolicy) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		retry:               retry,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(read, write *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, retry database.RetryPolicy) {
	h := newExchangeRateHandler(exchangeRateService, retry)

	read.GET("/exchange-rates/:from/:to", h.getExchangeRate)
	write.POST("/exchange-rates", h.createExchangeRate)
}

func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateExchangeRateRequest
	if !bindJSON(c, &req, "CreateExchangeRate") {
		return
	}

	rate, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (*domain.ExchangeRate, error) {
		return h.exchangeRateService.CreateExchangeRate(ctx, actor, req)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate resolves the rate effective on ?asOf=YYYY-MM-DD, today when omitted.
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	asOf := c.DefaultQuery("asOf", time.Now().UTC().Format(time.DateOnly))
	if _, err := time.Parse(time.DateOnly, asOf); err != nil {
		writeError(c, apperrors.NewValidationError("asOf must be YYYY-MM-DD"))
		return
	}

	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), c.Param("from"), c.Param("to"), asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
