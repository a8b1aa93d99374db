package mapping

import (
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
)

func toModelDocument(id string, docType domain.DocumentType, counterpartyID string, h domain.DocumentHeader) models.Document {
	return models.Document{
		DocumentID:     id,
		DocumentType:   string(docType),
		TenantID:       h.TenantID,
		EntityID:       h.EntityID,
		CounterpartyID: counterpartyID,
		Number:         h.Number,
		IssueDate:      domain.DateOnly(h.IssueDate),
		DueDate:        domain.DateOnly(h.DueDate),
		Currency:       h.Currency,
		Subtotal:       h.Subtotal,
		TaxAmount:      h.TaxAmount,
		Total:          h.Total,
		PaidAmount:     h.PaidAmount,
		Status:         string(h.Status),
		AuditFields:    ToModelAuditFields(h.AuditFields),
	}
}

func toDomainDocumentHeader(m models.Document) domain.DocumentHeader {
	return domain.DocumentHeader{
		TenantID:    m.TenantID,
		EntityID:    m.EntityID,
		Number:      m.Number,
		IssueDate:   domain.DateOnly(m.IssueDate),
		DueDate:     domain.DateOnly(m.DueDate),
		Currency:    m.Currency,
		Subtotal:    m.Subtotal,
		TaxAmount:   m.TaxAmount,
		Total:       m.Total,
		PaidAmount:  m.PaidAmount,
		Status:      domain.DocumentStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoice converts a domain Invoice to a model Document
func ToModelInvoice(d domain.Invoice) models.Document {
	return toModelDocument(d.InvoiceID, domain.DocumentInvoice, d.CustomerID, d.DocumentHeader)
}

// ToDomainInvoice converts a model Document and its lines to a domain Invoice
func ToDomainInvoice(m models.Document, lines []models.DocumentLine) domain.Invoice {
	return domain.Invoice{
		InvoiceID:      m.DocumentID,
		CustomerID:     m.CounterpartyID,
		DocumentHeader: toDomainDocumentHeader(m),
		Lines:          ToDomainDocumentLines(lines),
	}
}

// ToModelBill converts a domain Bill to a model Document
func ToModelBill(d domain.Bill) models.Document {
	return toModelDocument(d.BillID, domain.DocumentBill, d.VendorID, d.DocumentHeader)
}

// ToDomainBill converts a model Document and its lines to a domain Bill
func ToDomainBill(m models.Document, lines []models.DocumentLine) domain.Bill {
	return domain.Bill{
		BillID:         m.DocumentID,
		VendorID:       m.CounterpartyID,
		DocumentHeader: toDomainDocumentHeader(m),
		Lines:          ToDomainDocumentLines(lines),
	}
}

// ToModelDocumentLines numbers the lines of one document in order.
func ToModelDocumentLines(documentID string, lines []domain.DocumentLine) []models.DocumentLine {
	out := make([]models.DocumentLine, len(lines))
	for i, l := range lines {
		out[i] = models.DocumentLine{
			LineID:      l.LineID,
			DocumentID:  documentID,
			LineNo:      i + 1,
			Description: l.Description,
			Amount:      l.Amount,
			GLAccountID: NullableString(l.GLAccountID),
		}
	}
	return out
}

// ToDomainDocumentLines converts model document lines to domain lines
func ToDomainDocumentLines(ms []models.DocumentLine) []domain.DocumentLine {
	if len(ms) == 0 {
		return nil
	}
	out := make([]domain.DocumentLine, len(ms))
	for i, m := range ms {
		out[i] = domain.DocumentLine{
			LineID:      m.LineID,
			Description: m.Description,
			Amount:      m.Amount,
			GLAccountID: StringValue(m.GLAccountID),
		}
	}
	return out
}

// ToModelPaymentAllocation converts a domain PaymentAllocation to a model PaymentAllocation
func ToModelPaymentAllocation(d domain.PaymentAllocation) models.PaymentAllocation {
	return models.PaymentAllocation{
		AllocationID: d.AllocationID,
		TenantID:     d.TenantID,
		EntityID:     d.EntityID,
		PaymentID:    d.PaymentID,
		DocumentType: string(d.DocumentType),
		DocumentID:   d.DocumentID,
		Amount:       d.Amount,
		Currency:     d.Currency,
		PaymentDate:  domain.DateOnly(d.PaymentDate),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentAllocation converts a model PaymentAllocation to a domain PaymentAllocation
func ToDomainPaymentAllocation(m models.PaymentAllocation) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID: m.AllocationID,
		TenantID:     m.TenantID,
		EntityID:     m.EntityID,
		PaymentID:    m.PaymentID,
		DocumentType: domain.DocumentType(m.DocumentType),
		DocumentID:   m.DocumentID,
		Amount:       m.Amount,
		Currency:     m.Currency,
		PaymentDate:  domain.DateOnly(m.PaymentDate),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
