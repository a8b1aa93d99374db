package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
	Voided JournalStatus = "VOIDED"
)

// Direction indicates whether a journal line is a Debit or a Credit.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Opposite returns the other side.
func (d Direction) Opposite() Direction {
	if d == Debit {
		return Credit
	}
	return Debit
}

// SourceType identifies the kind of document an entry was posted from.
type SourceType string

const (
	SourceManual            SourceType = ""
	SourceInvoice           SourceType = "INVOICE"
	SourceBill              SourceType = "BILL"
	SourcePaymentAllocation SourceType = "PAYMENT_ALLOCATION"
	SourceBankTransaction   SourceType = "BANK_TRANSACTION"
	SourceOpeningBalance    SourceType = "OPENING_BALANCE"
	SourceReversal          SourceType = "REVERSAL"
)

// JournalEntry is the header of a balanced set of journal lines.
type JournalEntry struct {
	JournalEntryID string          `json:"journalEntryID"`
	TenantID       string          `json:"tenantID"`
	EntityID       string          `json:"entityID"`
	EntryNumber    string          `json:"entryNumber"` // immutable once assigned
	EntryDate      time.Time       `json:"entryDate"`
	Memo           string          `json:"memo"`
	Currency       string          `json:"currency"`
	SourceType     SourceType      `json:"sourceType,omitempty"`
	SourceID       string          `json:"sourceID,omitempty"`
	SourceDocument json.RawMessage `json:"sourceDocument,omitempty"` // write-once snapshot
	Status         JournalStatus   `json:"status"`
	LinkedEntryID  *string         `json:"linkedEntryID,omitempty"` // entry this one reverses
	ApprovedBy     string          `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time      `json:"approvedAt,omitempty"`
	DeletedAt      *time.Time      `json:"-"`
	Lines          []JournalLine   `json:"lines,omitempty"`
	AuditFields
}

// Totals sums the minor-unit debits and credits of the entry's lines.
func (e JournalEntry) Totals() (debit, credit int64) {
	return SumLines(e.Lines)
}

// JournalLine belongs to exactly one entry and references exactly one account.
// Exactly one of Debit and Credit is non-zero. When ExchangeRate is set the
// line is foreign and BaseDebit/BaseCredit mirror it in the functional currency.
type JournalLine struct {
	LineID         string           `json:"lineID"`
	JournalEntryID string           `json:"journalEntryID"`
	LineNo         int              `json:"lineNo"`
	GLAccountID    string           `json:"glAccountID"`
	Debit          int64            `json:"debit"`
	Credit         int64            `json:"credit"`
	Currency       string           `json:"currency,omitempty"`
	ExchangeRate   *decimal.Decimal `json:"exchangeRate,omitempty"` // snapshot, immutable
	BaseDebit      int64            `json:"baseDebit,omitempty"`
	BaseCredit     int64            `json:"baseCredit,omitempty"`
	Memo           string           `json:"memo,omitempty"`
}

// IsForeign reports whether the line carries a functional-currency mirror.
func (l JournalLine) IsForeign() bool {
	return l.ExchangeRate != nil
}

// Direction returns the side of the line.
func (l JournalLine) Direction() Direction {
	if l.Debit != 0 {
		return Debit
	}
	return Credit
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() int64 {
	if l.Debit != 0 {
		return l.Debit
	}
	return l.Credit
}

// Swapped returns the line with debit and credit exchanged (ids cleared).
func (l JournalLine) Swapped() JournalLine {
	out := l
	out.LineID = ""
	out.JournalEntryID = ""
	out.Debit, out.Credit = l.Credit, l.Debit
	out.BaseDebit, out.BaseCredit = l.BaseCredit, l.BaseDebit
	return out
}

// MaxAmount caps any single amount and each side of an entry, in minor units.
const MaxAmount int64 = 1_000_000_000_000_000

// AddAmount returns a+b, or false when either is negative or the sum exceeds
// MaxAmount.
func AddAmount(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > MaxAmount || b > MaxAmount-a {
		return 0, false
	}
	return a + b, true
}

// SumLines totals debits and credits in minor units. Lines must have passed
// the MaxAmount checks first.
func SumLines(lines []JournalLine) (debit, credit int64) {
	for _, l := range lines {
		debit += l.Debit
		credit += l.Credit
	}
	return debit, credit
}

// SumBaseLines totals base-currency debits and credits of foreign lines.
func SumBaseLines(lines []JournalLine) (debit, credit int64, foreign bool) {
	for _, l := range lines {
		if !l.IsForeign() {
			continue
		}
		foreign = true
		debit += l.BaseDebit
		credit += l.BaseCredit
	}
	return debit, credit, foreign
}

// PostingResult is returned by every posting orchestrator.
type PostingResult struct {
	JournalEntryID string        `json:"journalEntryID"`
	EntryNumber    string        `json:"entryNumber"`
	Amount         int64         `json:"amount"`
	Lines          []JournalLine `json:"lines"`
}

// NewPostingResult builds the result from a persisted entry.
func NewPostingResult(e *JournalEntry) *PostingResult {
	debit, _ := e.Totals()
	return &PostingResult{
		JournalEntryID: e.JournalEntryID,
		EntryNumber:    e.EntryNumber,
		Amount:         debit,
		Lines:          e.Lines,
	}
}
