package domain

import "time"

// DocumentType distinguishes receivable from payable documents.
type DocumentType string

const (
	DocumentInvoice DocumentType = "INVOICE"
	DocumentBill    DocumentType = "BILL"
)

// DocumentHeader carries the lifecycle and payment state shared by invoices
// and bills. Amounts are minor units.
type DocumentHeader struct {
	TenantID   string         `json:"tenantID"`
	EntityID   string         `json:"entityID"`
	Number     string         `json:"number"`
	IssueDate  time.Time      `json:"issueDate"`
	DueDate    time.Time      `json:"dueDate"`
	Currency   string         `json:"currency"`
	Subtotal   int64          `json:"subtotal"`
	TaxAmount  int64          `json:"taxAmount"`
	Total      int64          `json:"total"`
	PaidAmount int64          `json:"paidAmount"`
	Status     DocumentStatus `json:"status"`
	AuditFields
}

// Balance is the amount still owed on the document.
func (h DocumentHeader) Balance() int64 {
	return h.Total - h.PaidAmount
}

// DocumentLine is one revenue (invoice) or expense (bill) line. GLAccountID
// overrides the default revenue/expense account when set.
type DocumentLine struct {
	LineID      string `json:"lineID"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	GLAccountID string `json:"glAccountID,omitempty"`
}

// Invoice is a customer document posted to Accounts Receivable.
type Invoice struct {
	InvoiceID  string `json:"invoiceID"`
	CustomerID string `json:"customerID"`
	DocumentHeader
	Lines []DocumentLine `json:"lines"`
}

// Bill is a vendor document posted to Accounts Payable.
type Bill struct {
	BillID   string `json:"billID"`
	VendorID string `json:"vendorID"`
	DocumentHeader
	Lines []DocumentLine `json:"lines"`
}

// PaymentAllocation applies part of a received or sent payment to one
// invoice (AR) or bill (AP).
type PaymentAllocation struct {
	AllocationID string       `json:"allocationID"`
	TenantID     string       `json:"tenantID"`
	EntityID     string       `json:"entityID"`
	PaymentID    string       `json:"paymentID"`
	DocumentType DocumentType `json:"documentType"`
	DocumentID   string       `json:"documentID"`
	Amount       int64        `json:"amount"`
	Currency     string       `json:"currency"`
	PaymentDate  time.Time    `json:"paymentDate"`
	AuditFields
}
