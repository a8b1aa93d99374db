package mapping

import (
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
	"github.com/SscSPs/ledger_posting_core/internal/models"
)

// ToModelGLAccount converts a domain GLAccount to a model GLAccount
func ToModelGLAccount(d domain.GLAccount) models.GLAccount {
	return models.GLAccount{
		GLAccountID:   d.GLAccountID,
		EntityID:      d.EntityID,
		Code:          d.Code,
		Name:          d.Name,
		AccountType:   string(d.AccountType),
		NormalBalance: string(d.NormalBalance),
		ParentID:      NullableString(d.ParentID),
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGLAccount converts a model GLAccount to a domain GLAccount
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		GLAccountID:   m.GLAccountID,
		EntityID:      m.EntityID,
		Code:          m.Code,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		NormalBalance: domain.NormalBalance(m.NormalBalance),
		ParentID:      StringValue(m.ParentID),
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntity converts a domain Entity to a model Entity
func ToModelEntity(d domain.Entity) models.Entity {
	return models.Entity{
		EntityID:           d.EntityID,
		TenantID:           d.TenantID,
		Name:               d.Name,
		FunctionalCurrency: d.FunctionalCurrency,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntity converts a model Entity to a domain Entity
func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:           m.EntityID,
		TenantID:           m.TenantID,
		Name:               m.Name,
		FunctionalCurrency: m.FunctionalCurrency,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
