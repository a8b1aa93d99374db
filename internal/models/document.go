package models

import "time"

// Document is a row of documents, shared by invoices and bills.
type Document struct {
	DocumentID     string    `db:"document_id"`
	DocumentType   string    `db:"document_type"`
	TenantID       string    `db:"tenant_id"`
	EntityID       string    `db:"entity_id"`
	CounterpartyID string    `db:"counterparty_id"` // customer or vendor
	Number         string    `db:"number"`
	IssueDate      time.Time `db:"issue_date"`
	DueDate        time.Time `db:"due_date"`
	Currency       string    `db:"currency"`
	Subtotal       int64     `db:"subtotal"`
	TaxAmount      int64     `db:"tax_amount"`
	Total          int64     `db:"total"`
	PaidAmount     int64     `db:"paid_amount"`
	Status         string    `db:"status"`
	AuditFields
}

// DocumentLine is a row of document_lines.
type DocumentLine struct {
	LineID      string  `db:"line_id"`
	DocumentID  string  `db:"document_id"`
	LineNo      int     `db:"line_no"`
	Description string  `db:"description"`
	Amount      int64   `db:"amount"`
	GLAccountID *string `db:"gl_account_id"` // optional override
}

// PaymentAllocation is a row of payment_allocations.
type PaymentAllocation struct {
	AllocationID string    `db:"allocation_id"`
	TenantID     string    `db:"tenant_id"`
	EntityID     string    `db:"entity_id"`
	PaymentID    string    `db:"payment_id"`
	DocumentType string    `db:"document_type"`
	DocumentID   string    `db:"document_id"`
	Amount       int64     `db:"amount"`
	Currency     string    `db:"currency"`
	PaymentDate  time.Time `db:"payment_date"`
	AuditFields
}
