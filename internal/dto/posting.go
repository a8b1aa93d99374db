package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// PostPaymentAllocationRequest picks the bank GL account the payment moved
// through. Empty falls back to the entity's well-known bank account.
type PostPaymentAllocationRequest struct {
	BankGLAccountID string `json:"bankGLAccountID"`
}

// PostTransactionRequest categorises a bank transaction to one account.
type PostTransactionRequest struct {
	TargetGLAccountID string           `json:"targetGLAccountID" binding:"required"`
	ManualRate        *decimal.Decimal `json:"manualRate"`
}

// SplitInput assigns a positive amount of a transaction to one account.
type SplitInput struct {
	GLAccountID string `json:"glAccountID" binding:"required"`
	Amount      int64  `json:"amount" binding:"gt=0,lte=1000000000000000"`
	Memo        string `json:"memo" binding:"max=255"`
}

// PostSplitTransactionRequest categorises a bank transaction across accounts.
type PostSplitTransactionRequest struct {
	Splits []SplitInput `json:"splits" binding:"required,min=1,dive"`
}

// OpeningBalanceInput records the starting balance of a newly connected
// bank, card or loan account. The sign of OpeningBalance is ignored; the
// direction follows AccountType.
type OpeningBalanceInput struct {
	AccountID          string                 `json:"accountID" binding:"required"`
	EntityID           string                 `json:"entityID" binding:"required"`
	GLAccountID        string                 `json:"glAccountID" binding:"required"`
	OpeningBalance     int64                  `json:"openingBalance"`
	OpeningBalanceDate time.Time              `json:"openingBalanceDate" binding:"required"`
	AccountType        domain.BankAccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CASH CREDIT_CARD LOAN MORTGAGE"`
}
