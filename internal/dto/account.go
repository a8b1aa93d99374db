package dto

import (
	"time"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new GL account.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,max=20"`
	Name        string             `json:"name" binding:"required,max=255"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentID    string             `json:"parentID"` // Optional
}

// AccountResponse defines the data returned for a GL account.
type AccountResponse struct {
	GLAccountID   string               `json:"glAccountID"`
	EntityID      string               `json:"entityID"`
	Code          string               `json:"code"`
	Name          string               `json:"name"`
	AccountType   domain.AccountType   `json:"accountType"`
	NormalBalance domain.NormalBalance `json:"normalBalance"`
	ParentID      string               `json:"parentID,omitempty"`
	IsActive      bool                 `json:"isActive"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
}

// ToAccountResponse converts a domain.GLAccount to AccountResponse DTO.
func ToAccountResponse(acc *domain.GLAccount) AccountResponse {
	return AccountResponse{
		GLAccountID:   acc.GLAccountID,
		EntityID:      acc.EntityID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		ParentID:      acc.ParentID,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
	}
}
