package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
)

// SQLSTATE codes the ledger reacts to.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateUniqueViolation      = "23505"
	sqlStateForeignKeyViolation  = "23503"
)

// Unique constraints named in the migrations.
const (
	constraintActiveSource   = "journal_entries_active_source_key"
	constraintEntryNumber    = "journal_entries_entity_number_key"
	constraintSingleReversal = "journal_entries_linked_entry_key"
	constraintAccountCode    = "gl_accounts_entity_code_key"
)

// translate turns driver errors into AppErrors. AppErrors pass through.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected:
			return apperrors.Wrap(apperrors.CodeSerializationFailure, msg, err)
		case sqlStateUniqueViolation:
			switch pgErr.ConstraintName {
			case constraintActiveSource:
				return apperrors.Wrap(apperrors.CodeAlreadyPosted, "source document already has an active journal entry", err)
			case constraintEntryNumber:
				return apperrors.Wrap(apperrors.CodeSerializationFailure, "entry number already taken", err)
			case constraintSingleReversal:
				return apperrors.Wrap(apperrors.CodeAlreadyVoided, "journal entry already has a reversal", err)
			case constraintAccountCode:
				return apperrors.Wrap(apperrors.CodeDuplicateAccountCode, "account code already exists", err)
			}
		case sqlStateForeignKeyViolation:
			return apperrors.Wrap(apperrors.CodeNotFound, "referenced record does not exist", err).
				WithDetail("constraint", pgErr.ConstraintName)
		}
	}
	return apperrors.Wrap(apperrors.CodeInternal, msg, err)
}

// notFoundOr maps pgx.ErrNoRows to the given not-found error.
func notFoundOr(err error, notFound *apperrors.AppError, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return translate(err, msg)
}
