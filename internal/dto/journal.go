package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// CreateEntryRequest defines the data needed to author a manual DRAFT entry.
type CreateEntryRequest struct {
	EntryDate    time.Time          `json:"entryDate" binding:"required"`
	Memo         string             `json:"memo" binding:"max=500"`
	Currency     string             `json:"currency" binding:"omitempty,len=3,uppercase"` // empty means functional currency
	ExchangeRate *decimal.Decimal   `json:"exchangeRate"`                                  // optional override when Currency is foreign
	Lines        []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineRequest is one line of a manual entry. Base amounts are optional;
// when every line omits them they are derived from the rate.
type EntryLineRequest struct {
	GLAccountID string `json:"glAccountID" binding:"required"`
	Debit       int64  `json:"debit" binding:"gte=0,lte=1000000000000000"`
	Credit      int64  `json:"credit" binding:"gte=0,lte=1000000000000000"`
	BaseDebit   int64  `json:"baseDebit" binding:"gte=0,lte=1000000000000000"`
	BaseCredit  int64  `json:"baseCredit" binding:"gte=0,lte=1000000000000000"`
	Memo        string `json:"memo" binding:"max=255"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineNo       int              `json:"lineNo"`
	GLAccountID  string           `json:"glAccountID"`
	Debit        int64            `json:"debit"`
	Credit       int64            `json:"credit"`
	Currency     string           `json:"currency,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	BaseDebit    int64            `json:"baseDebit,omitempty"`
	BaseCredit   int64            `json:"baseCredit,omitempty"`
	Memo         string           `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	EntityID       string                `json:"entityID"`
	EntryNumber    string                `json:"entryNumber"`
	EntryDate      time.Time             `json:"entryDate"`
	Memo           string                `json:"memo"`
	Currency       string                `json:"currency"`
	Status         domain.JournalStatus  `json:"status"`
	SourceType     domain.SourceType     `json:"sourceType,omitempty"`
	SourceID       string                `json:"sourceID,omitempty"`
	LinkedEntryID  *string               `json:"linkedEntryID,omitempty"`
	ApprovedBy     string                `json:"approvedBy,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	Lines          []JournalLineResponse `json:"lines"`
}

// PostingResponse is returned by every posting endpoint.
type PostingResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	EntryNumber    string                `json:"entryNumber"`
	Amount         int64                 `json:"amount"`
	Lines          []JournalLineResponse `json:"lines"`
}

// ToJournalLineResponses converts domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	out := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		out[i] = JournalLineResponse{
			LineNo:       l.LineNo,
			GLAccountID:  l.GLAccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			Currency:     l.Currency,
			ExchangeRate: l.ExchangeRate,
			BaseDebit:    l.BaseDebit,
			BaseCredit:   l.BaseCredit,
			Memo:         l.Memo,
		}
	}
	return out
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		EntityID:       e.EntityID,
		EntryNumber:    e.EntryNumber,
		EntryDate:      e.EntryDate,
		Memo:           e.Memo,
		Currency:       e.Currency,
		Status:         e.Status,
		SourceType:     e.SourceType,
		SourceID:       e.SourceID,
		LinkedEntryID:  e.LinkedEntryID,
		ApprovedBy:     e.ApprovedBy,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		Lines:          ToJournalLineResponses(e.Lines),
	}
}

// ToPostingResponse converts a posting result to its response DTO.
func ToPostingResponse(r *domain.PostingResult) PostingResponse {
	return PostingResponse{
		JournalEntryID: r.JournalEntryID,
		EntryNumber:    r.EntryNumber,
		Amount:         r.Amount,
		Lines:          ToJournalLineResponses(r.Lines),
	}
}
