package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/dto"
)

const glAccountModel = "GLAccount"

// accountService maintains an entity's chart of accounts.
type accountService struct {
	BaseService
}

// NewAccountService creates a new AccountService.
func NewAccountService(txManager portsrepo.TransactionManager, opts ...Option) portssvc.AccountSvcFacade {
	return &accountService{BaseService: newBaseService(txManager, opts...)}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, actor domain.Actor, entityID string, req dto.CreateAccountRequest) (*domain.GLAccount, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	var created *domain.GLAccount
	err := s.txManager.RunSerializable(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		entity, err := loadEntity(ctx, tx, actor, entityID)
		if err != nil {
			return err
		}

		if req.ParentID != "" {
			found, err := tx.Accounts().FindAccountsByIDs(ctx, entity.TenantID, []string{req.ParentID})
			if err != nil {
				return err
			}
			parent, ok := found[req.ParentID]
			if !ok {
				return apperrors.ErrGLAccountNotFound.WithDetail("parentID", req.ParentID)
			}
			if parent.EntityID != entity.EntityID {
				return apperrors.ErrCrossEntityReference.
					WithDetail("parentID", req.ParentID).
					WithDetail("entityID", entity.EntityID)
			}
		}

		account := domain.GLAccount{
			GLAccountID:   s.newID(),
			EntityID:      entity.EntityID,
			Code:          req.Code,
			Name:          req.Name,
			AccountType:   req.AccountType,
			NormalBalance: req.AccountType.NormalBalance(),
			ParentID:      req.ParentID,
			IsActive:      true,
			AuditFields:   domain.NewAuditFields(actor.UserID, s.now()),
		}
		if err := tx.Accounts().SaveAccount(ctx, account); err != nil {
			return err
		}
		if err := s.writeAudit(ctx, tx, actor, entity.EntityID, glAccountModel, account.GLAccountID, domain.AuditCreate, nil, account); err != nil {
			return err
		}
		created = &account
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create GL account", slog.String("entity_id", entityID), slog.String("code", req.Code))
		return nil, apperrors.As(err)
	}

	s.LogInfo(ctx, "GL account created", slog.String("gl_account_id", created.GLAccountID), slog.String("code", created.Code))
	return created, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, actor domain.Actor, entityID string, accountID string) (*domain.GLAccount, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	var account *domain.GLAccount
	err := s.txManager.RunReadOnly(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		if _, err := loadEntity(ctx, tx, actor, entityID); err != nil {
			return err
		}
		var err error
		account, err = tx.Accounts().FindAccountByID(ctx, entityID, accountID)
		return err
	})
	if err != nil {
		return nil, apperrors.As(err)
	}
	s.LogDebug(ctx, "GL account retrieved", slog.String("gl_account_id", account.GLAccountID))
	return account, nil
}

// DeactivateAccount refuses while any DRAFT entry still has a line on the account.
func (s *accountService) DeactivateAccount(ctx context.Context, actor domain.Actor, entityID string, accountID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	err := s.txManager.RunSerializable(ctx, func(ctx context.Context, tx portsrepo.Tx) error {
		if _, err := loadEntity(ctx, tx, actor, entityID); err != nil {
			return err
		}
		accounts := tx.Accounts()
		account, err := accounts.FindAccountByID(ctx, entityID, accountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return nil
		}
		hasDrafts, err := accounts.HasDraftLines(ctx, account.GLAccountID)
		if err != nil {
			return err
		}
		if hasDrafts {
			return apperrors.Newf(apperrors.CodeGLAccountInactive,
				"GL account %s has lines on DRAFT entries and cannot be deactivated", account.Code).
				WithDetail("glAccountID", account.GLAccountID)
		}

		before := *account
		now := s.now()
		if err := accounts.SetAccountActive(ctx, account.GLAccountID, false, actor.UserID, now); err != nil {
			return err
		}
		account.IsActive = false
		account.LastUpdatedAt = now
		account.LastUpdatedBy = actor.UserID
		return s.writeAudit(ctx, tx, actor, entityID, glAccountModel, account.GLAccountID, domain.AuditUpdate, before, account)
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to deactivate GL account", slog.String("gl_account_id", accountID))
		return apperrors.As(err)
	}
	s.LogInfo(ctx, "GL account deactivated", slog.String("gl_account_id", accountID))
	return nil
}
