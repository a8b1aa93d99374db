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

type accountRepository struct {
	q querier
}

const accountColumns = `gl_account_id, entity_id, code, name, account_type, normal_balance, parent_id, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.GLAccount, error) {
	var m models.GLAccount
	err := row.Scan(
		&m.GLAccountID,
		&m.EntityID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.NormalBalance,
		&m.ParentID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *accountRepository) FindAccountByID(ctx context.Context, entityID, accountID string) (*domain.GLAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE gl_account_id = $1 AND entity_id = $2;`
	m, err := scanAccount(r.q.QueryRow(ctx, query, accountID, entityID))
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrGLAccountNotFound.WithDetail("glAccountID", accountID), "failed to find account "+accountID)
	}
	acc := mapping.ToDomainGLAccount(m)
	return &acc, nil
}

func (r *accountRepository) FindAccountByCode(ctx context.Context, entityID, code string) (*domain.GLAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE entity_id = $1 AND code = $2;`
	m, err := scanAccount(r.q.QueryRow(ctx, query, entityID, code))
	if err != nil {
		return nil, notFoundOr(err, apperrors.ErrGLAccountNotFound.WithDetail("code", code), "failed to find account by code "+code)
	}
	acc := mapping.ToDomainGLAccount(m)
	return &acc, nil
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.GLAccount, error) {
	out := make(map[string]domain.GLAccount, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT ` + accountColumns + `
		FROM gl_accounts
		WHERE gl_account_id = ANY($1)
		  AND entity_id IN (SELECT entity_id FROM entities WHERE tenant_id = $2);
	`
	rows, err := r.q.Query(ctx, query, accountIDs, tenantID)
	if err != nil {
		return nil, translate(err, "failed to query accounts by ids")
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, translate(err, "failed to scan account row")
		}
		out[m.GLAccountID] = mapping.ToDomainGLAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "error iterating account rows")
	}
	return out, nil
}

func (r *accountRepository) HasDraftLines(ctx context.Context, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM journal_lines l
			JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
			WHERE l.gl_account_id = $1 AND e.status = 'DRAFT' AND e.deleted_at IS NULL
		);
	`
	var exists bool
	if err := r.q.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, translate(err, "failed to check draft lines for account "+accountID)
	}
	return exists, nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.GLAccount) error {
	m := mapping.ToModelGLAccount(account)
	query := `
		INSERT INTO gl_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.q.Exec(ctx, query,
		m.GLAccountID,
		m.EntityID,
		m.Code,
		m.Name,
		m.AccountType,
		m.NormalBalance,
		m.ParentID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		appErr := apperrors.As(translate(err, "failed to insert account "+m.GLAccountID))
		if appErr.Code == apperrors.CodeDuplicateAccountCode {
			return appErr.WithDetail("code", m.Code)
		}
		return appErr
	}
	return nil
}

func (r *accountRepository) SetAccountActive(ctx context.Context, accountID string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE gl_accounts
		SET is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE gl_account_id = $1;
	`
	tag, err := r.q.Exec(ctx, query, accountID, active, now, userID)
	if err != nil {
		return translate(err, "failed to update account "+accountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGLAccountNotFound.WithDetail("glAccountID", accountID)
	}
	return nil
}
