package domain

// GLRole is a symbolic, well-known chart-of-accounts role.
type GLRole string

const (
	RoleAccountsReceivable   GLRole = "ACCOUNTS_RECEIVABLE"
	RoleAccountsPayable      GLRole = "ACCOUNTS_PAYABLE"
	RoleTaxPayable           GLRole = "TAX_PAYABLE"
	RoleTaxRecoverable       GLRole = "TAX_RECOVERABLE"
	RoleRevenue              GLRole = "REVENUE"
	RoleExpense              GLRole = "EXPENSE"
	RoleBank                 GLRole = "BANK"
	RoleOpeningBalanceEquity GLRole = "OPENING_BALANCE_EQUITY"
)

// GLCodeMap maps well-known roles to the account codes seeded in every
// entity's chart. It is injected into the posting services.
type GLCodeMap map[GLRole]string

// DefaultGLCodes matches the chart-of-accounts template seeded for new entities.
func DefaultGLCodes() GLCodeMap {
	return GLCodeMap{
		RoleBank:                 "1000",
		RoleAccountsReceivable:   "1200",
		RoleAccountsPayable:      "2000",
		RoleTaxPayable:           "2200",
		RoleTaxRecoverable:       "2200",
		RoleOpeningBalanceEquity: "3900",
		RoleRevenue:              "4000",
		RoleExpense:              "5000",
	}
}

// Code returns the code for role, or "" when the map does not define it.
func (m GLCodeMap) Code(role GLRole) string {
	return m[role]
}
