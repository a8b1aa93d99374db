package services

import (
	"context"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
)

// GLResolver maps well-known roles and explicit ids to active GL accounts of
// an entity. A miss means the chart was never seeded and is reported, never
// defaulted.
type GLResolver struct {
	codes domain.GLCodeMap
}

// NewGLResolver creates a resolver over the injected code map.
func NewGLResolver(codes domain.GLCodeMap) *GLResolver {
	return &GLResolver{codes: codes}
}

// ResolveByCode looks up an active account by exact code within the entity.
func (r *GLResolver) ResolveByCode(ctx context.Context, tx portsrepo.Tx, entityID, code string) (*domain.GLAccount, error) {
	acc, err := tx.Accounts().FindAccountByCode(ctx, entityID, code)
	if err != nil {
		if apperrors.As(err).Code == apperrors.CodeGLAccountNotFound {
			return nil, apperrors.Newf(apperrors.CodeGLAccountNotFound,
				"GL account %s not found; the chart of accounts may not be seeded", code).
				WithDetail("code", code).
				WithDetail("entityID", entityID)
		}
		return nil, err
	}
	if !acc.IsActive {
		return nil, apperrors.Newf(apperrors.CodeGLAccountNotFound, "GL account %s is inactive", code).
			WithDetail("code", code).
			WithDetail("entityID", entityID)
	}
	return acc, nil
}

// ResolveRoles resolves each role once for the call.
func (r *GLResolver) ResolveRoles(ctx context.Context, tx portsrepo.Tx, entityID string, roles ...domain.GLRole) (map[domain.GLRole]*domain.GLAccount, error) {
	out := make(map[domain.GLRole]*domain.GLAccount, len(roles))
	byCode := make(map[string]*domain.GLAccount, len(roles))
	for _, role := range roles {
		code := r.codes.Code(role)
		if code == "" {
			return nil, apperrors.Newf(apperrors.CodeGLAccountNotFound, "no GL code configured for %s", role).
				WithDetail("role", string(role))
		}
		if acc, ok := byCode[code]; ok {
			out[role] = acc
			continue
		}
		acc, err := r.ResolveByCode(ctx, tx, entityID, code)
		if err != nil {
			return nil, err
		}
		byCode[code] = acc
		out[role] = acc
	}
	return out, nil
}

// ResolveByID checks that an explicitly referenced account exists, is active
// and belongs to the entity. Accounts of other tenants are not found; an
// account of another entity in the same tenant is CROSS_ENTITY_REFERENCE.
func (r *GLResolver) ResolveByID(ctx context.Context, tx portsrepo.Tx, entity *domain.Entity, accountID string) (*domain.GLAccount, error) {
	found, err := tx.Accounts().FindAccountsByIDs(ctx, entity.TenantID, []string{accountID})
	if err != nil {
		return nil, err
	}
	acc, ok := found[accountID]
	if err := checkAccountScope(entity, accountID, acc, ok); err != nil {
		return nil, err
	}
	return &acc, nil
}

func checkAccountScope(entity *domain.Entity, accountID string, acc domain.GLAccount, found bool) error {
	if !found {
		return apperrors.ErrGLAccountNotFound.WithDetail("glAccountID", accountID)
	}
	if acc.EntityID != entity.EntityID {
		return apperrors.ErrCrossEntityReference.
			WithDetail("glAccountID", accountID).
			WithDetail("entityID", entity.EntityID)
	}
	if !acc.IsActive {
		return apperrors.Newf(apperrors.CodeGLAccountNotFound, "GL account %s is inactive", acc.Code).
			WithDetail("glAccountID", accountID)
	}
	return nil
}
