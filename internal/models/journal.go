package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of journal_entries. Lines are loaded separately.
type JournalEntry struct {
	JournalEntryID string     `db:"journal_entry_id"`
	TenantID       string     `db:"tenant_id"`
	EntityID       string     `db:"entity_id"`
	EntryNumber    string     `db:"entry_number"`
	EntryDate      time.Time  `db:"entry_date"`
	Memo           string     `db:"memo"`
	Currency       string     `db:"currency"`
	SourceType     *string    `db:"source_type"` // NULL for manual entries
	SourceID       *string    `db:"source_id"`
	SourceDocument []byte     `db:"source_document"` // JSONB, written once
	Status         string     `db:"status"`
	LinkedEntryID  *string    `db:"linked_entry_id"`
	ApprovedBy     *string    `db:"approved_by"`
	ApprovedAt     *time.Time `db:"approved_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
	AuditFields
}

// JournalLine is a row of journal_lines.
type JournalLine struct {
	LineID         string              `db:"line_id"`
	JournalEntryID string              `db:"journal_entry_id"`
	LineNo         int                 `db:"line_no"`
	GLAccountID    string              `db:"gl_account_id"`
	Debit          int64               `db:"debit"`
	Credit         int64               `db:"credit"`
	Currency       string              `db:"currency"`
	ExchangeRate   decimal.NullDecimal `db:"exchange_rate"` // NULL for functional-currency lines
	BaseDebit      int64               `db:"base_debit"`
	BaseCredit     int64               `db:"base_credit"`
	Memo           string              `db:"memo"`
}

// FiscalPeriod is a row of fiscal_periods.
type FiscalPeriod struct {
	FiscalPeriodID string    `db:"fiscal_period_id"`
	EntityID       string    `db:"entity_id"`
	CalendarID     string    `db:"calendar_id"`
	Name           string    `db:"name"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	Status         string    `db:"status"`
}
