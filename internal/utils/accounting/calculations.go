package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

var maxAmount = decimal.NewFromInt(domain.MaxAmount)

// ConvertAmount converts a minor-unit amount at rate, rounding half away
// from zero to the nearest minor unit. Results outside [0, MaxAmount] are
// rejected.
func ConvertAmount(amount int64, rate decimal.Decimal) (int64, error) {
	converted := decimal.NewFromInt(amount).Mul(rate).Round(0)
	if converted.IsNegative() || converted.GreaterThan(maxAmount) {
		return 0, apperrors.NewValidationError(fmt.Sprintf("converted amount %s is out of range", converted.String())).
			WithDetail("maxAmount", domain.MaxAmount)
	}
	return converted.IntPart(), nil
}

func amountTooLarge(what string) error {
	return apperrors.NewValidationError(fmt.Sprintf("%s exceeds the maximum amount of %d", what, domain.MaxAmount)).
		WithDetail("maxAmount", domain.MaxAmount)
}

// SignedBalance applies the account's normal balance to a debit/credit pair.
// DEBIT-normal accounts grow with debits, CREDIT-normal accounts with credits.
func SignedBalance(normal domain.NormalBalance, debit, credit int64) int64 {
	if normal == domain.NormalCredit {
		return credit - debit
	}
	return debit - credit
}

// ValidateLineShape checks that exactly one side of every line is non-zero,
// that no amount is negative and that neither side of the entry, in
// transaction or base currency, totals more than MaxAmount.
func ValidateLineShape(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return apperrors.NewValidationError("journal entry must have at least two lines")
	}
	var totals [4]int64
	for i, l := range lines {
		if l.Debit < 0 || l.Credit < 0 || l.BaseDebit < 0 || l.BaseCredit < 0 {
			return apperrors.NewValidationError(fmt.Sprintf("line %d has a negative amount", i+1))
		}
		for j, v := range [4]int64{l.Debit, l.Credit, l.BaseDebit, l.BaseCredit} {
			sum, ok := domain.AddAmount(totals[j], v)
			if !ok {
				return amountTooLarge(fmt.Sprintf("journal entry total at line %d", i+1))
			}
			totals[j] = sum
		}
		if (l.Debit == 0) == (l.Credit == 0) {
			return apperrors.NewValidationError(fmt.Sprintf("line %d must carry exactly one of debit or credit", i+1))
		}
		if l.GLAccountID == "" {
			return apperrors.NewValidationError(fmt.Sprintf("line %d has no GL account", i+1))
		}
	}
	return nil
}

// ValidateJournalBalance checks Σdebit == Σcredit in minor units and, when
// any line is foreign, Σbase debit == Σbase credit independently.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	debit, credit := domain.SumLines(lines)
	if debit != credit {
		return apperrors.ErrUnbalancedEntry.
			WithDetail("debit", debit).
			WithDetail("credit", credit)
	}
	baseDebit, baseCredit, foreign := domain.SumBaseLines(lines)
	if foreign && baseDebit != baseCredit {
		return apperrors.Newf(apperrors.CodeUnbalancedEntry,
			"base currency amounts do not balance: debit %d, credit %d", baseDebit, baseCredit).
			WithDetail("baseDebit", baseDebit).
			WithDetail("baseCredit", baseCredit)
	}
	return nil
}
