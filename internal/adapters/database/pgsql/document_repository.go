package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
	"github.com/SscSPs/ledger_posting_core/internal/utils/mapping"
)

type documentRepository struct {
	q querier
}

const documentColumns = `document_id, document_type, tenant_id, entity_id, counterparty_id, number,
		issue_date, due_date, currency, subtotal, tax_amount, total, paid_amount, status,
		created_at, created_by, last_updated_at, last_updated_by`

// findDocument loads a document of docType with its lines. It takes a
// FOR UPDATE lock so concurrent payments against one document serialize.
func (r *documentRepository) findDocument(ctx context.Context, docType domain.DocumentType, tenantID, documentID string) (models.Document, []models.DocumentLine, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE document_id = $1 AND tenant_id = $2 AND document_type = $3
		FOR UPDATE;`
	var m models.Document
	err := r.q.QueryRow(ctx, query, documentID, tenantID, string(docType)).Scan(
		&m.DocumentID,
		&m.DocumentType,
		&m.TenantID,
		&m.EntityID,
		&m.CounterpartyID,
		&m.Number,
		&m.IssueDate,
		&m.DueDate,
		&m.Currency,
		&m.Subtotal,
		&m.TaxAmount,
		&m.Total,
		&m.PaidAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, nil, notFoundOr(err, documentNotFound(docType, documentID), "failed to find document "+documentID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT line_id, document_id, line_no, description, amount, gl_account_id
		FROM document_lines
		WHERE document_id = $1
		ORDER BY line_no;
	`, documentID)
	if err != nil {
		return m, nil, translate(err, "failed to query lines for document "+documentID)
	}
	defer rows.Close()

	var lines []models.DocumentLine
	for rows.Next() {
		var l models.DocumentLine
		if err := rows.Scan(&l.LineID, &l.DocumentID, &l.LineNo, &l.Description, &l.Amount, &l.GLAccountID); err != nil {
			return m, nil, translate(err, "failed to scan line row for document "+documentID)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return m, nil, translate(err, "error iterating line rows for document "+documentID)
	}
	return m, lines, nil
}

func documentNotFound(docType domain.DocumentType, documentID string) *apperrors.AppError {
	if docType == domain.DocumentBill {
		return apperrors.ErrNotFound.WithDetail("billID", documentID)
	}
	return apperrors.ErrNotFound.WithDetail("invoiceID", documentID)
}

func (r *documentRepository) FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	m, lines, err := r.findDocument(ctx, domain.DocumentInvoice, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	inv := mapping.ToDomainInvoice(m, lines)
	return &inv, nil
}

func (r *documentRepository) FindBillByID(ctx context.Context, tenantID, billID string) (*domain.Bill, error) {
	m, lines, err := r.findDocument(ctx, domain.DocumentBill, tenantID, billID)
	if err != nil {
		return nil, err
	}
	bill := mapping.ToDomainBill(m, lines)
	return &bill, nil
}

func (r *documentRepository) FindPaymentAllocationByID(ctx context.Context, tenantID, allocationID string) (*domain.PaymentAllocation, error) {
	query := `
		SELECT allocation_id, tenant_id, entity_id, payment_id, document_type, document_id, amount, currency, payment_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payment_allocations
		WHERE allocation_id = $1 AND tenant_id = $2;
	`
	var m models.PaymentAllocation
	err := r.q.QueryRow(ctx, query, allocationID, tenantID).Scan(
		&m.AllocationID,
		&m.TenantID,
		&m.EntityID,
		&m.PaymentID,
		&m.DocumentType,
		&m.DocumentID,
		&m.Amount,
		&m.Currency,
		&m.PaymentDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrNotFound.WithDetail("allocationID", allocationID), "failed to find payment allocation "+allocationID)
	}
	alloc := mapping.ToDomainPaymentAllocation(m)
	return &alloc, nil
}

// saveDocument upserts the header and replaces the lines in one batch.
func (r *documentRepository) saveDocument(ctx context.Context, m models.Document, lines []models.DocumentLine) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (document_id) DO UPDATE SET
			counterparty_id = EXCLUDED.counterparty_id, number = EXCLUDED.number,
			issue_date = EXCLUDED.issue_date, due_date = EXCLUDED.due_date, currency = EXCLUDED.currency,
			subtotal = EXCLUDED.subtotal, tax_amount = EXCLUDED.tax_amount, total = EXCLUDED.total,
			paid_amount = EXCLUDED.paid_amount, status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;`,
		m.DocumentID, m.DocumentType, m.TenantID, m.EntityID, m.CounterpartyID, m.Number,
		m.IssueDate, m.DueDate, m.Currency, m.Subtotal, m.TaxAmount, m.Total, m.PaidAmount, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	batch.Queue(`DELETE FROM document_lines WHERE document_id = $1;`, m.DocumentID)
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO document_lines (line_id, document_id, line_no, description, amount, gl_account_id)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			l.LineID, l.DocumentID, l.LineNo, l.Description, l.Amount, l.GLAccountID,
		)
	}
	return translate(r.q.SendBatch(ctx, batch).Close(), "failed to save document "+m.DocumentID)
}

func (r *documentRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	return r.saveDocument(ctx, mapping.ToModelInvoice(invoice), mapping.ToModelDocumentLines(invoice.InvoiceID, invoice.Lines))
}

func (r *documentRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	return r.saveDocument(ctx, mapping.ToModelBill(bill), mapping.ToModelDocumentLines(bill.BillID, bill.Lines))
}

func (r *documentRepository) SavePaymentAllocation(ctx context.Context, allocation domain.PaymentAllocation) error {
	m := mapping.ToModelPaymentAllocation(allocation)
	query := `
		INSERT INTO payment_allocations (allocation_id, tenant_id, entity_id, payment_id, document_type, document_id,
		                                 amount, currency, payment_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.q.Exec(ctx, query,
		m.AllocationID, m.TenantID, m.EntityID, m.PaymentID, m.DocumentType, m.DocumentID,
		m.Amount, m.Currency, m.PaymentDate, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translate(err, "failed to insert payment allocation "+m.AllocationID)
}

func (r *documentRepository) UpdateDocumentState(ctx context.Context, docType domain.DocumentType, documentID string, status domain.DocumentStatus, paidAmount int64, userID string, now time.Time) error {
	if docType != domain.DocumentInvoice && docType != domain.DocumentBill {
		return apperrors.NewValidationError("unknown document type " + string(docType))
	}
	query := `
		UPDATE documents
		SET status = $3, paid_amount = $4, last_updated_at = $5, last_updated_by = $6
		WHERE document_id = $1 AND document_type = $2;
	`
	tag, err := r.q.Exec(ctx, query, documentID, string(docType), string(status), paidAmount, now, userID)
	if err != nil {
		return translate(err, "failed to update document "+documentID)
	}
	if tag.RowsAffected() == 0 {
		return documentNotFound(docType, documentID)
	}
	return nil
}
