package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
	"github.com/SscSPs/ledger_posting_core/internal/utils/mapping"
)

type journalRepository struct {
	q querier
}

const entryColumns = `journal_entry_id, tenant_id, entity_id, entry_number, entry_date, memo, currency,
		source_type, source_id, source_document, status, linked_entry_id, approved_by, approved_at, deleted_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.TenantID,
		&m.EntityID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Memo,
		&m.Currency,
		&m.SourceType,
		&m.SourceID,
		&m.SourceDocument,
		&m.Status,
		&m.LinkedEntryID,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// findOne loads the single entry matched by where, with its lines, or nil.
func (r *journalRepository) findOne(ctx context.Context, where string, args ...any) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + where + ` LIMIT 1;`
	m, err := scanEntry(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err, "failed to find journal entry")
	}
	lines, err := r.findLines(ctx, m.JournalEntryID)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines)
	return &entry, nil
}

func (r *journalRepository) findLines(ctx context.Context, entryID string) ([]models.JournalLine, error) {
	query := `
		SELECT line_id, journal_entry_id, line_no, gl_account_id, debit, credit, currency,
		       exchange_rate, base_debit, base_credit, memo
		FROM journal_lines
		WHERE journal_entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.q.Query(ctx, query, entryID)
	if err != nil {
		return nil, translate(err, "failed to query lines for journal entry "+entryID)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.JournalEntryID,
			&l.LineNo,
			&l.GLAccountID,
			&l.Debit,
			&l.Credit,
			&l.Currency,
			&l.ExchangeRate,
			&l.BaseDebit,
			&l.BaseCredit,
			&l.Memo,
		); err != nil {
			return nil, translate(err, "failed to scan line row for journal entry "+entryID)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "error iterating line rows for journal entry "+entryID)
	}
	return lines, nil
}

func (r *journalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := r.findOne(ctx, `journal_entry_id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, entryID, tenantID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperrors.ErrNotFound.WithDetail("journalEntryID", entryID)
	}
	return entry, nil
}

func (r *journalRepository) FindActiveEntryBySource(ctx context.Context, tenantID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx,
		`tenant_id = $1 AND source_type = $2 AND source_id = $3 AND status <> 'VOIDED' AND deleted_at IS NULL`,
		tenantID, string(sourceType), sourceID)
}

func (r *journalRepository) FindReversalOf(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findOne(ctx, `linked_entry_id = $1 AND deleted_at IS NULL`, entryID)
}

// LatestEntryNumber orders by the insertion sequence, not by the number,
// so imported numbers like "IMPORT-0099" still count as the latest.
func (r *journalRepository) LatestEntryNumber(ctx context.Context, entityID string) (string, error) {
	query := `
		SELECT entry_number
		FROM journal_entries
		WHERE entity_id = $1
		ORDER BY seq DESC
		LIMIT 1;
	`
	var number string
	err := r.q.QueryRow(ctx, query, entityID).Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", translate(err, "failed to read latest entry number for entity "+entityID)
	}
	return number, nil
}

func (r *journalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);`
	_, err := r.q.Exec(ctx, entryQuery,
		m.JournalEntryID,
		m.TenantID,
		m.EntityID,
		m.EntryNumber,
		m.EntryDate,
		m.Memo,
		m.Currency,
		m.SourceType,
		m.SourceID,
		m.SourceDocument,
		m.Status,
		m.LinkedEntryID,
		m.ApprovedBy,
		m.ApprovedAt,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translate(err, "failed to insert journal entry "+m.JournalEntryID)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_entry_id, line_no, gl_account_id, debit, credit, currency,
		                           exchange_rate, base_debit, base_credit, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range entry.Lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			l.LineID,
			l.JournalEntryID,
			l.LineNo,
			l.GLAccountID,
			l.Debit,
			l.Credit,
			l.Currency,
			l.ExchangeRate,
			l.BaseDebit,
			l.BaseCredit,
			l.Memo,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translate(err, "failed to insert lines for journal entry "+m.JournalEntryID)
	}
	return nil
}

func (r *journalRepository) exec(ctx context.Context, entryID, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return translate(err, "failed to update journal entry "+entryID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound.WithDetail("journalEntryID", entryID)
	}
	return nil
}

func (r *journalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.JournalStatus, userID string, now time.Time) error {
	return r.exec(ctx, entryID, `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_entry_id = $1;
	`, entryID, string(status), now, userID)
}

func (r *journalRepository) MarkEntryApproved(ctx context.Context, entryID string, approverID string, now time.Time) error {
	return r.exec(ctx, entryID, `
		UPDATE journal_entries
		SET status = 'POSTED', approved_by = $2, approved_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE journal_entry_id = $1;
	`, entryID, approverID, now)
}

func (r *journalRepository) SoftDeleteEntry(ctx context.Context, entryID string, userID string, now time.Time) error {
	return r.exec(ctx, entryID, `
		UPDATE journal_entries
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE journal_entry_id = $1 AND status = 'DRAFT';
	`, entryID, now, userID)
}
