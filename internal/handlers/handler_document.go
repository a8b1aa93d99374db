package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
	"github.com/SscSPs/ledger_posting_core/pkg/database"
)

// documentHandler drives invoice and bill status and payment tracking.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	retry           database.RetryPolicy
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, retry database.RetryPolicy) *documentHandler {
	return &documentHandler{
		documentService: ds,
		retry:           retry,
	}
}

// registerDocumentRoutes registers lifecycle routes for invoices and bills.
func registerDocumentRoutes(write *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, retry database.RetryPolicy) {
	h := newDocumentHandler(documentService, retry)

	invoices := write.Group("/invoices/:invoiceID")
	{
		invoices.POST("/transition", h.transitionInvoice)
		invoices.POST("/payments", h.applyInvoicePayment)
		invoices.POST("/payments/reverse", h.reverseInvoicePayment)
		invoices.POST("/cancel", h.cancelInvoice)
	}

	bills := write.Group("/bills/:billID")
	{
		bills.POST("/transition", h.transitionBill)
		bills.POST("/payments", h.applyBillPayment)
		bills.POST("/payments/reverse", h.reverseBillPayment)
		bills.POST("/cancel", h.cancelBill)
	}
}

type documentOp func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error)

// respond runs op with serialization retries and writes the resulting state.
func (h *documentHandler) respond(c *gin.Context, op documentOp) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	state, err := database.RetrySerializable(c.Request.Context(), h.retry, func(ctx context.Context) (*dto.DocumentStateResponse, error) {
		return op(ctx, actor)
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func invoiceState(inv *domain.Invoice, err error) (*dto.DocumentStateResponse, error) {
	if err != nil {
		return nil, err
	}
	state := dto.ToDocumentStateResponse(inv.InvoiceID, inv.DocumentHeader)
	return &state, nil
}

func billState(bill *domain.Bill, err error) (*dto.DocumentStateResponse, error) {
	if err != nil {
		return nil, err
	}
	state := dto.ToDocumentStateResponse(bill.BillID, bill.DocumentHeader)
	return &state, nil
}

func (h *documentHandler) transitionInvoice(c *gin.Context) {
	var req dto.TransitionDocumentRequest
	if !bindJSON(c, &req, "TransitionInvoice") {
		return
	}
	id := c.Param("invoiceID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return invoiceState(h.documentService.TransitionInvoice(ctx, actor, id, req.Status))
	})
}

func (h *documentHandler) applyInvoicePayment(c *gin.Context) {
	var req dto.DocumentPaymentRequest
	if !bindJSON(c, &req, "ApplyInvoicePayment") {
		return
	}
	id := c.Param("invoiceID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return invoiceState(h.documentService.ApplyInvoicePayment(ctx, actor, id, req.Amount))
	})
}

func (h *documentHandler) reverseInvoicePayment(c *gin.Context) {
	var req dto.DocumentPaymentRequest
	if !bindJSON(c, &req, "ReverseInvoicePayment") {
		return
	}
	id := c.Param("invoiceID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return invoiceState(h.documentService.ReverseInvoicePayment(ctx, actor, id, req.Amount))
	})
}

func (h *documentHandler) cancelInvoice(c *gin.Context) {
	id := c.Param("invoiceID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return invoiceState(h.documentService.CancelInvoice(ctx, actor, id))
	})
}

func (h *documentHandler) transitionBill(c *gin.Context) {
	var req dto.TransitionDocumentRequest
	if !bindJSON(c, &req, "TransitionBill") {
		return
	}
	id := c.Param("billID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return billState(h.documentService.TransitionBill(ctx, actor, id, req.Status))
	})
}

func (h *documentHandler) applyBillPayment(c *gin.Context) {
	var req dto.DocumentPaymentRequest
	if !bindJSON(c, &req, "ApplyBillPayment") {
		return
	}
	id := c.Param("billID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return billState(h.documentService.ApplyBillPayment(ctx, actor, id, req.Amount))
	})
}

func (h *documentHandler) reverseBillPayment(c *gin.Context) {
	var req dto.DocumentPaymentRequest
	if !bindJSON(c, &req, "ReverseBillPayment") {
		return
	}
	id := c.Param("billID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return billState(h.documentService.ReverseBillPayment(ctx, actor, id, req.Amount))
	})
}

func (h *documentHandler) cancelBill(c *gin.Context) {
	id := c.Param("billID")
	h.respond(c, func(ctx context.Context, actor domain.Actor) (*dto.DocumentStateResponse, error) {
		return billState(h.documentService.CancelBill(ctx, actor, id))
	})
}
