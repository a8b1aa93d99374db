package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// NormalBalance derives the normal balance from the account type.
// ASSET/EXPENSE are debit-normal, LIABILITY/EQUITY/INCOME credit-normal.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Liability, Equity, Income:
		return NormalCredit
	default:
		return NormalDebit
	}
}

// GLAccount is a node in an entity's chart of accounts.
// NormalBalance is fixed at creation and never changes afterwards.
type GLAccount struct {
	GLAccountID   string        `json:"glAccountID"`
	EntityID      string        `json:"entityID"`
	Code          string        `json:"code"` // unique per entity
	Name          string        `json:"name"`
	AccountType   AccountType   `json:"accountType"`
	NormalBalance NormalBalance `json:"normalBalance"`
	ParentID      string        `json:"parentID"` // Nullable, same entity only
	IsActive      bool          `json:"isActive"`
	AuditFields
}
