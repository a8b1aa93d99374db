package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
)

// documentService persists invoice and bill lifecycle changes. The rules
// themselves live in domain.StatusMachine.
type documentService struct {
	BaseService
}

// NewDocumentService creates a new DocumentSvcFacade.
func NewDocumentService(txManager portsrepo.TransactionManager, opts ...Option) portssvc.DocumentSvcFacade {
	return &documentService{BaseService: newBaseService(txManager, opts...)}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

type documentLoader[D any] func(ctx context.Context, tx portsrepo.Tx, tenantID, id string) (*D, *domain.DocumentHeader, error)

func loadInvoice(ctx context.Context, tx portsrepo.Tx, tenantID, id string) (*domain.Invoice, *domain.DocumentHeader, error) {
	inv, err := tx.Documents().FindInvoiceByID(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	return inv, &inv.DocumentHeader, nil
}

func loadBill(ctx context.Context, tx portsrepo.Tx, tenantID, id string) (*domain.Bill, *domain.DocumentHeader, error) {
	bill, err := tx.Documents().FindBillByID(ctx, tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	return bill, &bill.DocumentHeader, nil
}

// updateDocument loads a document, applies one state-machine step to its
// header and writes status and paid amount back with an audit record.
func updateDocument[D any](ctx context.Context, s *documentService, actor domain.Actor, docType domain.DocumentType, id, op string, load documentLoader[D], apply func(h *domain.DocumentHeader) error) (*D, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var doc *D
	err := s.txManager.RunSerializable(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		d, header, err := load(ctx, tx, actor.TenantID, id)
		if err != nil {
			return err
		}
		before := documentState{Status: header.Status, PaidAmount: header.PaidAmount}
		if err := apply(header); err != nil {
			return err
		}

		now := s.now()
		if err := tx.Documents().UpdateDocumentState(ctx, docType, id, header.Status, header.PaidAmount, actor.UserID, now); err != nil {
			return err
		}
		header.LastUpdatedAt = now
		header.LastUpdatedBy = actor.UserID

		after := documentState{Status: header.Status, PaidAmount: header.PaidAmount}
		if err := s.writeAudit(ctx, tx, actor, header.EntityID, string(docType), id, domain.AuditUpdate, before, after); err != nil {
			return err
		}
		doc = d
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, op+" failed", slog.String("document_type", string(docType)), slog.String("document_id", id))
		return nil, apperrors.As(err)
	}
	s.LogInfo(ctx, op+" succeeded", slog.String("document_type", string(docType)), slog.String("document_id", id))
	return doc, nil
}

type documentState struct {
	Status     domain.DocumentStatus `json:"status"`
	PaidAmount int64                 `json:"paidAmount"`
}

func (s *documentService) TransitionInvoice(ctx context.Context, actor domain.Actor, invoiceID string, target domain.DocumentStatus) (*domain.Invoice, error) {
	return updateDocument(ctx, s, actor, domain.DocumentInvoice, invoiceID, "TransitionInvoice", loadInvoice, func(h *domain.DocumentHeader) error {
		return domain.InvoiceStatusMachine.Transition(h, target)
	})
}

func (s *documentService) ApplyInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, amount int64) (*domain.Invoice, error) {
	return updateDocument(ctx, s, actor, domain.DocumentInvoice, invoiceID, "ApplyInvoicePayment", loadInvoice, func(h *domain.DocumentHeader) error {
		return domain.InvoiceStatusMachine.ApplyPayment(h, amount)
	})
}

func (s *documentService) ReverseInvoicePayment(ctx context.Context, actor domain.Actor, invoiceID string, amount int64) (*domain.Invoice, error) {
	return updateDocument(ctx, s, actor, domain.DocumentInvoice, invoiceID, "ReverseInvoicePayment", loadInvoice, func(h *domain.DocumentHeader) error {
		return domain.InvoiceStatusMachine.ReversePayment(h, amount, s.now())
	})
}

func (s *documentService) CancelInvoice(ctx context.Context, actor domain.Actor, invoiceID string) (*domain.Invoice, error) {
	return updateDocument(ctx, s, actor, domain.DocumentInvoice, invoiceID, "CancelInvoice", loadInvoice, domain.InvoiceStatusMachine.Cancel)
}

func (s *documentService) TransitionBill(ctx context.Context, actor domain.Actor, billID string, target domain.DocumentStatus) (*domain.Bill, error) {
	return updateDocument(ctx, s, actor, domain.DocumentBill, billID, "TransitionBill", loadBill, func(h *domain.DocumentHeader) error {
		return domain.BillStatusMachine.Transition(h, target)
	})
}

func (s *documentService) ApplyBillPayment(ctx context.Context, actor domain.Actor, billID string, amount int64) (*domain.Bill, error) {
	return updateDocument(ctx, s, actor, domain.DocumentBill, billID, "ApplyBillPayment", loadBill, func(h *domain.DocumentHeader) error {
		return domain.BillStatusMachine.ApplyPayment(h, amount)
	})
}

func (s *documentService) ReverseBillPayment(ctx context.Context, actor domain.Actor, billID string, amount int64) (*domain.Bill, error) {
	return updateDocument(ctx, s, actor, domain.DocumentBill, billID, "ReverseBillPayment", loadBill, func(h *domain.DocumentHeader) error {
		return domain.BillStatusMachine.ReversePayment(h, amount, s.now())
	})
}

func (s *documentService) CancelBill(ctx context.Context, actor domain.Actor, billID string) (*domain.Bill, error) {
	return updateDocument(ctx, s, actor, domain.DocumentBill, billID, "CancelBill", loadBill, domain.BillStatusMachine.Cancel)
}
