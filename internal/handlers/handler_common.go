package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/middleware"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeError renders err with the status of its AppError. Internal failures
// are logged in full and returned without their cause.
func writeError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	appErr := apperrors.As(err)

	status := appErr.Status
	if status == 0 {
		status = apperrors.StatusFor(appErr.Code)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("code", string(appErr.Code)), slog.String("error", err.Error()))
		c.JSON(status, errorResponse{Code: apperrors.CodeInternal, Message: "internal error"})
		return
	}

	logger.Warn("Request rejected", slog.String("code", string(appErr.Code)), slog.String("error", appErr.Message))
	c.JSON(status, errorResponse{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details})
}

// bindJSON binds the request body and writes a VALIDATION_ERROR on failure.
func bindJSON(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+op, slog.String("error", err.Error()))
		writeError(c, apperrors.NewValidationError("Invalid request format: "+err.Error()))
		return false
	}
	return true
}

// requireActor returns the authenticated actor or writes a 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
