package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		TenantID:       d.TenantID,
		EntityID:       d.EntityID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      domain.DateOnly(d.EntryDate),
		Memo:           d.Memo,
		Currency:       d.Currency,
		SourceType:     NullableString(string(d.SourceType)),
		SourceID:       NullableString(d.SourceID),
		Status:         string(d.Status),
		LinkedEntryID:  d.LinkedEntryID,
		ApprovedBy:     NullableString(d.ApprovedBy),
		ApprovedAt:     d.ApprovedAt,
		DeletedAt:      d.DeletedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if len(d.SourceDocument) > 0 {
		m.SourceDocument = []byte(d.SourceDocument)
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		TenantID:       m.TenantID,
		EntityID:       m.EntityID,
		EntryNumber:    m.EntryNumber,
		EntryDate:      domain.DateOnly(m.EntryDate),
		Memo:           m.Memo,
		Currency:       m.Currency,
		SourceType:     domain.SourceType(StringValue(m.SourceType)),
		SourceID:       StringValue(m.SourceID),
		Status:         domain.JournalStatus(m.Status),
		LinkedEntryID:  m.LinkedEntryID,
		ApprovedBy:     StringValue(m.ApprovedBy),
		ApprovedAt:     m.ApprovedAt,
		DeletedAt:      m.DeletedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if len(m.SourceDocument) > 0 {
		d.SourceDocument = append(d.SourceDocument, m.SourceDocument...)
	}
	d.Lines = make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		d.Lines[i] = ToDomainJournalLine(l)
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	m := models.JournalLine{
		LineID:         d.LineID,
		JournalEntryID: d.JournalEntryID,
		LineNo:         d.LineNo,
		GLAccountID:    d.GLAccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Currency:       d.Currency,
		BaseDebit:      d.BaseDebit,
		BaseCredit:     d.BaseCredit,
		Memo:           d.Memo,
	}
	if d.ExchangeRate != nil {
		m.ExchangeRate = decimal.NewNullDecimal(*d.ExchangeRate)
	}
	return m
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	d := domain.JournalLine{
		LineID:         m.LineID,
		JournalEntryID: m.JournalEntryID,
		LineNo:         m.LineNo,
		GLAccountID:    m.GLAccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Currency:       m.Currency,
		BaseDebit:      m.BaseDebit,
		BaseCredit:     m.BaseCredit,
		Memo:           m.Memo,
	}
	if m.ExchangeRate.Valid {
		rate := m.ExchangeRate.Decimal
		d.ExchangeRate = &rate
	}
	return d
}
