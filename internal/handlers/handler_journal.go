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

// journalHandler handles the manual journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	retry          database.RetryPolicy
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, retry database.RetryPolicy) *journalHandler {
	return &journalHandler{
		journalService: js,
		retry:          retry,
	}
}

// registerJournalRoutes registers entry creation under the entity and the
// id-addressed lifecycle routes under /journal-entries. Approving and voiding
// also pass through approve, which narrows the roles further.
func registerJournalRoutes(entityWrite, read, write *gin.RouterGroup, approve gin.HandlerFunc, journalService portssvc.JournalSvcFacade, retry database.RetryPolicy) {
	h := newJournalHandler(journalService, retry)

	entityWrite.POST("/journal-entries", h.createEntry)

	read.GET("/journal-entries/:entryID", h.getEntry)

	entries := write.Group("/journal-entries")
	{
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/approve", approve, h.approveEntry)
		entries.POST("/:entryID/void", approve, h.voidEntry)
	}
}

// createEntry stores a balanced DRAFT entry.
func (h *journalHandler) createEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateEntryRequest
	if !bindJSON(c, &req, "CreateEntry") {
		return
	}
	entityID := c.Param("entityID")

	result, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (*domain.PostingResult, error) {
		return h.journalService.CreateEntry(ctx, actor, entityID, req)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Draft entry created",
		slog.String("entity_id", entityID),
		slog.String("journal_entry_id", result.JournalEntryID),
		slog.String("entry_number", result.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(result))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), actor, c.Param("entryID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) approveEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	entry, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (*domain.JournalEntry, error) {
		return h.journalService.ApproveEntry(ctx, actor, entryID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// voidEntry returns the reversing entry.
func (h *journalHandler) voidEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	reversal, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (*domain.PostingResult, error) {
		return h.journalService.VoidEntry(ctx, actor, entryID)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Entry voided",
		slog.String("journal_entry_id", entryID),
		slog.String("reversal_id", reversal.JournalEntryID))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(reversal))
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	_, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, h.journalService.DeleteEntry(ctx, actor, entryID)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
