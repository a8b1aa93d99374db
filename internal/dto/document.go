package dto

import "github.com/SscSPs/ledger_posting_core/internal/core/domain"

// TransitionDocumentRequest moves an invoice or bill to a new status.
type TransitionDocumentRequest struct {
	Status domain.DocumentStatus `json:"status" binding:"required,oneof=SENT PENDING PARTIALLY_PAID PAID OVERDUE CANCELLED"`
}

// DocumentPaymentRequest applies or reverses a payment amount.
type DocumentPaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,lte=1000000000000000"`
}

// DocumentStateResponse is the lifecycle state after a document operation.
type DocumentStateResponse struct {
	DocumentID string                `json:"documentID"`
	Status     domain.DocumentStatus `json:"status"`
	Total      int64                 `json:"total"`
	PaidAmount int64                 `json:"paidAmount"`
	Balance    int64                 `json:"balance"`
}

// ToDocumentStateResponse converts a document header to its response DTO.
func ToDocumentStateResponse(documentID string, h domain.DocumentHeader) DocumentStateResponse {
	return DocumentStateResponse{
		DocumentID: documentID,
		Status:     h.Status,
		Total:      h.Total,
		PaidAmount: h.PaidAmount,
		Balance:    h.Balance(),
	}
}
