package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_posting_core/internal/apperrors"
	"github.com/SscSPs/ledger_posting_core/internal/core/domain"
)

// Posting is one (account, amount, direction) tuple fed to the builder.
// Anchor marks the aggregate line (AR, AP or Bank) whose base amount must be
// exactly round(amount × rate); the remaining lines absorb rounding.
type Posting struct {
	GLAccountID string
	Amount      int64
	Direction   domain.Direction
	Memo        string
	Anchor      bool
}

// FX describes a foreign-currency document. A nil *FX means the document is
// in the entity's functional currency.
type FX struct {
	Currency string
	Rate     decimal.Decimal
}

// BuildLines turns postings into journal lines. Zero postings are dropped.
// With fx set every line carries a base-currency mirror; anchors convert
// exactly and the last non-anchor line takes whatever remainder is left so
// that base debits equal base credits. The result is re-summed and
// UNBALANCED_ENTRY is returned if the sides disagree.
func BuildLines(postings []Posting, fx *FX) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, 0, len(postings))
	anchors := make([]bool, 0, len(postings))
	var baseTotal int64

	for _, p := range postings {
		if p.Amount < 0 {
			return nil, apperrors.NewValidationError("posting amounts must not be negative")
		}
		if p.Amount > domain.MaxAmount {
			return nil, amountTooLarge("posting amount")
		}
		if p.Amount == 0 {
			continue
		}
		line := domain.JournalLine{
			LineNo:      len(lines) + 1,
			GLAccountID: p.GLAccountID,
			Memo:        p.Memo,
		}
		if p.Direction == domain.Debit {
			line.Debit = p.Amount
		} else {
			line.Credit = p.Amount
		}
		if fx != nil {
			rate := fx.Rate
			line.Currency = fx.Currency
			line.ExchangeRate = &rate
			base, err := ConvertAmount(p.Amount, rate)
			if err != nil {
				return nil, err
			}
			var ok bool
			if baseTotal, ok = domain.AddAmount(baseTotal, base); !ok {
				return nil, amountTooLarge("base currency total")
			}
			if p.Direction == domain.Debit {
				line.BaseDebit = base
			} else {
				line.BaseCredit = base
			}
		}
		lines = append(lines, line)
		anchors = append(anchors, p.Anchor)
	}

	if fx != nil && len(lines) > 0 {
		absorbRemainder(lines, anchors)
	}

	if err := ValidateLineShape(lines); err != nil {
		return nil, err
	}
	if err := ValidateJournalBalance(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// absorbRemainder pushes the base-currency difference onto the last
// non-anchor line, or the last line when every line is an anchor. A line
// whose base would turn negative (tiny amounts at tiny rates) is skipped in
// favour of the previous non-anchor line.
func absorbRemainder(lines []domain.JournalLine, anchors []bool) {
	baseDebit, baseCredit, _ := domain.SumBaseLines(lines)
	diff := baseDebit - baseCredit
	if diff == 0 {
		return
	}

	adjusted := func(l domain.JournalLine) int64 {
		if l.Debit != 0 {
			return l.BaseDebit - diff
		}
		return l.BaseCredit + diff
	}

	idx := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if anchors[i] {
			continue
		}
		if idx == -1 {
			idx = i
		}
		if adjusted(lines[i]) >= 0 {
			idx = i
			break
		}
	}
	if idx == -1 {
		idx = len(lines) - 1
	}

	l := &lines[idx]
	if l.Debit != 0 {
		l.BaseDebit = adjusted(*l)
	} else {
		l.BaseCredit = adjusted(*l)
	}
}

// InvoicePostings: DR Accounts Receivable for the total, CR revenue per line,
// CR Tax Payable for the aggregate tax.
func InvoicePostings(arAccountID, taxAccountID string, total, tax int64, revenue []Posting) []Posting {
	out := make([]Posting, 0, len(revenue)+2)
	out = append(out, Posting{GLAccountID: arAccountID, Amount: total, Direction: domain.Debit, Anchor: true, Memo: "Accounts receivable"})
	for _, r := range revenue {
		r.Direction = domain.Credit
		r.Anchor = false
		out = append(out, r)
	}
	return append(out, Posting{GLAccountID: taxAccountID, Amount: tax, Direction: domain.Credit, Memo: "Sales tax"})
}

// BillPostings: DR expense per line, DR recoverable tax for the aggregate,
// CR Accounts Payable for the total.
func BillPostings(apAccountID, taxAccountID string, total, tax int64, expenses []Posting) []Posting {
	out := make([]Posting, 0, len(expenses)+2)
	for _, e := range expenses {
		e.Direction = domain.Debit
		e.Anchor = false
		out = append(out, e)
	}
	out = append(out, Posting{GLAccountID: taxAccountID, Amount: tax, Direction: domain.Debit, Memo: "Recoverable tax"})
	return append(out, Posting{GLAccountID: apAccountID, Amount: total, Direction: domain.Credit, Anchor: true, Memo: "Accounts payable"})
}

// ReceivablePaymentPostings: DR Bank, CR Accounts Receivable.
func ReceivablePaymentPostings(bankAccountID, arAccountID string, amount int64) []Posting {
	return []Posting{
		{GLAccountID: bankAccountID, Amount: amount, Direction: domain.Debit, Anchor: true, Memo: "Payment received"},
		{GLAccountID: arAccountID, Amount: amount, Direction: domain.Credit, Memo: "Accounts receivable"},
	}
}

// PayablePaymentPostings: DR Accounts Payable, CR Bank.
func PayablePaymentPostings(bankAccountID, apAccountID string, amount int64) []Posting {
	return []Posting{
		{GLAccountID: apAccountID, Amount: amount, Direction: domain.Debit, Memo: "Accounts payable"},
		{GLAccountID: bankAccountID, Amount: amount, Direction: domain.Credit, Anchor: true, Memo: "Payment sent"},
	}
}

// TransactionPostings maps a signed bank amount: an outflow debits the target
// and credits the bank, an inflow debits the bank and credits the target.
func TransactionPostings(bankAccountID, targetAccountID string, signedAmount int64, memo string) []Posting {
	amount := domain.AbsInt64(signedAmount)
	bankDir := domain.Debit
	if signedAmount < 0 {
		bankDir = domain.Credit
	}
	target := Posting{GLAccountID: targetAccountID, Amount: amount, Direction: bankDir.Opposite(), Memo: memo}
	bank := Posting{GLAccountID: bankAccountID, Amount: amount, Direction: bankDir, Anchor: true, Memo: memo}
	if bankDir == domain.Credit {
		return []Posting{target, bank}
	}
	return []Posting{bank, target}
}

// SplitPostings emits one category line per split and a single aggregate bank
// line for the whole transaction amount. Split amounts are positive.
func SplitPostings(bankAccountID string, signedAmount int64, splits []Posting, memo string) []Posting {
	bankDir := domain.Debit
	if signedAmount < 0 {
		bankDir = domain.Credit
	}
	out := make([]Posting, 0, len(splits)+1)
	for _, s := range splits {
		s.Direction = bankDir.Opposite()
		s.Anchor = false
		out = append(out, s)
	}
	return append(out, Posting{
		GLAccountID: bankAccountID,
		Amount:      domain.AbsInt64(signedAmount),
		Direction:   bankDir,
		Anchor:      true,
		Memo:        memo,
	})
}

// OpeningBalancePostings picks the direction from the account classification:
// credit-normal accounts (cards, loans, mortgages) are CR account / DR equity,
// everything else DR account / CR equity. The sign of amount is ignored.
func OpeningBalancePostings(accountGLID, equityGLID string, amount int64, creditNormal bool) []Posting {
	amount = domain.AbsInt64(amount)
	if creditNormal {
		return []Posting{
			{GLAccountID: equityGLID, Amount: amount, Direction: domain.Debit, Memo: "Opening balance equity"},
			{GLAccountID: accountGLID, Amount: amount, Direction: domain.Credit, Anchor: true, Memo: "Opening balance"},
		}
	}
	return []Posting{
		{GLAccountID: accountGLID, Amount: amount, Direction: domain.Debit, Anchor: true, Memo: "Opening balance"},
		{GLAccountID: equityGLID, Amount: amount, Direction: domain.Credit, Memo: "Opening balance equity"},
	}
}

// ReversalLines swaps the sides of every line, keeping amounts, currency and
// exchange-rate snapshots intact.
func ReversalLines(lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		out[i] = l.Swapped()
		out[i].LineNo = i + 1
	}
	return out
}
