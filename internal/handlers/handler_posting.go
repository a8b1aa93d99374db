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

// postingHandler turns source documents and bank transactions into POSTED entries.
type postingHandler struct {
	documentPosting    portssvc.DocumentPostingSvc
	transactionPosting portssvc.TransactionPostingSvc
	retry              database.RetryPolicy
}

func newPostingHandler(dp portssvc.DocumentPostingSvc, tp portssvc.TransactionPostingSvc, retry database.RetryPolicy) *postingHandler {
	return &postingHandler{
		documentPosting:    dp,
		transactionPosting: tp,
		retry:              retry,
	}
}

// registerPostingRoutes registers one POST route per posting operation.
func registerPostingRoutes(write *gin.RouterGroup, dp portssvc.DocumentPostingSvc, tp portssvc.TransactionPostingSvc, retry database.RetryPolicy) {
	h := newPostingHandler(dp, tp, retry)

	write.POST("/invoices/:invoiceID/post", h.postInvoice)
	write.POST("/bills/:billID/post", h.postBill)
	write.POST("/payment-allocations/:allocationID/post", h.postPaymentAllocation)
	write.POST("/bank-transactions/:transactionID/post", h.postTransaction)
	write.POST("/bank-transactions/:transactionID/split", h.postSplitTransaction)
	write.POST("/opening-balances", h.recordOpeningBalance)
}

type postingOp func(ctx context.Context, actor domain.Actor) (*domain.PostingResult, error)

// post runs op with serialization retries. A nil result means nothing was posted.
func (h *postingHandler) post(c *gin.Context, source string, op postingOp) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	result, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (*domain.PostingResult, error) {
		return op(ctx, actor)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if result == nil {
		logger.Info("Nothing to post", slog.String("source", source))
		c.Status(http.StatusNoContent)
		return
	}
	logger.Info("Entry posted",
		slog.String("source", source),
		slog.String("journal_entry_id", result.JournalEntryID),
		slog.String("entry_number", result.EntryNumber),
		slog.Int64("amount", result.Amount))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(result))
}

func (h *postingHandler) postInvoice(c *gin.Context) {
	id := c.Param("invoiceID")
	h.post(c, string(domain.SourceInvoice), func(ctx context.Context, actor domain.Actor) (*domain.PostingResult, error) {
		return h.documentPosting.PostInvoice(ctx, actor, id)
	})
}

func (h *postingHandler) postBill(c *gin.Context) {
	id := c.Param("billID")
	h.post(c, string(domain.SourceBill), func(ctx context.Context, actor domain.Actor) (*domain.PostingResult, error) {
		return h.documentPosting.PostBill(ctx, actor, id)
	})
}

// postPaymentAllocation accepts an empty body, which posts against the
// entity's default bank account.
func (h *postingHandler) postPaymentAllocation(c *gin.Context) {
	var req dto.PostPaymentAllocationRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, "PostPaymentAllocation") {
		return
	}
	id := c.Param("allocationID")
	h.post(c, string(domain.SourcePaymentAllocation), func(ctx context.Context, actor domain.Actor) (*domain.PostingResult, error) {
		return h.documentPosting.PostPaymentAllocation(ctx, actor, id, req.BankGLAccountID)
	})
}

func (h *postingHandler) postTransaction(c *gin.Context) {
	var req dto.PostTransactionRequest
	if !bindJSON(c, &req, "PostTransaction") {
		return
	}
	id := c.Param("transactionID")
	h.post(c, string(domain.SourceBankTransaction), func(ctx context.Context, actor domain.Actor) (*domain.PostingResult, error) {
		return h.transactionPosting.PostTransaction(ctx, actor, id, req.TargetGLAccountID, req.ManualRate)
	})
}

func (h *postingHandler) postSplitTransaction(c *gin.Context) {
	var req dto.PostSplitTransactionRequest
	if !bindJSON(c, &req, "PostSplitTransaction") {
		return
	}
	id := c.Param("transactionID")
	h.post(c, string(domain.SourceBankTransaction), func(ctx context.Context, actor domain.Actor) (*domain.PostingResult, error) {
		return h.transactionPosting.PostSplitTransaction(ctx, actor, id, req.Splits)
	})
}

func (h *postingHandler) recordOpeningBalance(c *gin.Context) {
	var req dto.OpeningBalanceInput
	if !bindJSON(c, &req, "RecordOpeningBalance") {
		return
	}
	h.post(c, string(domain.SourceOpeningBalance), func(ctx context.Context, actor domain.Actor) (*domain.PostingResult, error) {
		return h.documentPosting.RecordOpeningBalance(ctx, actor, req)
	})
}
