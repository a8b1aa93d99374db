package domain

import (
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
)

// DocumentStatus is the lifecycle state of an invoice or bill.
type DocumentStatus string

const (
	DocDraft         DocumentStatus = "DRAFT"
	DocSent          DocumentStatus = "SENT"    // invoices
	DocPending       DocumentStatus = "PENDING" // bills
	DocPartiallyPaid DocumentStatus = "PARTIALLY_PAID"
	DocPaid          DocumentStatus = "PAID"
	DocOverdue       DocumentStatus = "OVERDUE"
	DocCancelled     DocumentStatus = "CANCELLED"
)

// StatusMachine is the transition table shared by invoices and bills. The
// two document kinds differ only in the name of the issued state.
type StatusMachine struct {
	Issued      DocumentStatus
	transitions map[DocumentStatus][]DocumentStatus
}

// NewStatusMachine builds the table for a document whose issued state is issued.
func NewStatusMachine(issued DocumentStatus) StatusMachine {
	return StatusMachine{
		Issued: issued,
		transitions: map[DocumentStatus][]DocumentStatus{
			DocDraft:         {issued, DocCancelled},
			issued:           {DocPartiallyPaid, DocPaid, DocOverdue, DocCancelled},
			DocPartiallyPaid: {DocPaid, DocOverdue},
			DocOverdue:       {DocPartiallyPaid, DocPaid},
		},
	}
}

var (
	InvoiceStatusMachine = NewStatusMachine(DocSent)
	BillStatusMachine    = NewStatusMachine(DocPending)
)

// CanTransition reports whether current -> target is in the table.
func (m StatusMachine) CanTransition(current, target DocumentStatus) bool {
	for _, s := range m.transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns INVALID_STATUS_TRANSITION when current -> target
// is not allowed.
func (m StatusMachine) ValidateTransition(current, target DocumentStatus) error {
	if m.CanTransition(current, target) {
		return nil
	}
	return apperrors.Newf(apperrors.CodeInvalidStatusTransition,
		"Invalid status transition: %s → %s", current, target).
		WithDetail("from", string(current)).
		WithDetail("to", string(target))
}

// Transition moves doc to target if the table allows it.
func (m StatusMachine) Transition(doc *DocumentHeader, target DocumentStatus) error {
	if err := m.ValidateTransition(doc.Status, target); err != nil {
		return err
	}
	doc.Status = target
	return nil
}

// ApplyPayment adds amount to the paid total and moves the document to PAID
// or PARTIALLY_PAID. doc is left untouched on error.
func (m StatusMachine) ApplyPayment(doc *DocumentHeader, amount int64) error {
	if amount <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Payment amount must be positive")
	}
	paid, ok := AddAmount(doc.PaidAmount, amount)
	if !ok || paid > doc.Total {
		return apperrors.Newf(apperrors.CodeValidation,
			"Payment of %d would exceed balance of %d", amount, doc.Balance()).
			WithDetail("balance", doc.Balance())
	}

	next := DocPartiallyPaid
	if paid == doc.Total {
		next = DocPaid
	}
	if next != doc.Status {
		if err := m.ValidateTransition(doc.Status, next); err != nil {
			return err
		}
	}
	doc.PaidAmount = paid
	doc.Status = next
	return nil
}

// ReversePayment removes amount from the paid total, flooring at zero. A fully
// reversed document returns to OVERDUE when its due date has passed at now,
// otherwise to the issued state.
func (m StatusMachine) ReversePayment(doc *DocumentHeader, amount int64, now time.Time) error {
	if amount <= 0 {
		return apperrors.New(apperrors.CodeValidation, "Reversal amount must be positive")
	}
	if doc.Status == DocDraft || doc.Status == DocCancelled {
		return apperrors.Newf(apperrors.CodeInvalidStatusTransition,
			"Cannot reverse a payment on a %s document", doc.Status)
	}

	paid := doc.PaidAmount - amount
	if paid < 0 {
		paid = 0
	}
	doc.PaidAmount = paid
	switch {
	case paid > 0:
		doc.Status = DocPartiallyPaid
	case !doc.DueDate.IsZero() && DateOnly(now).After(DateOnly(doc.DueDate)):
		doc.Status = DocOverdue
	default:
		doc.Status = m.Issued
	}
	return nil
}

// Cancel is only allowed from DRAFT or the issued state with nothing paid.
func (m StatusMachine) Cancel(doc *DocumentHeader) error {
	if doc.PaidAmount != 0 {
		return apperrors.New(apperrors.CodeInvalidStatusTransition,
			"Cannot cancel a document with payments applied").
			WithDetail("paidAmount", doc.PaidAmount)
	}
	if doc.Status != DocDraft && doc.Status != m.Issued {
		return m.ValidateTransition(doc.Status, DocCancelled)
	}
	return m.Transition(doc, DocCancelled)
}

// IsPostable reports whether a document in status may be posted to the ledger.
// Drafts and cancelled documents never post.
func IsPostable(status DocumentStatus) bool {
	return status != DocDraft && status != DocCancelled
}
