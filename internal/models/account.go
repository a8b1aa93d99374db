package models

// GLAccount is a row of gl_accounts.
type GLAccount struct {
	GLAccountID   string  `db:"gl_account_id"`
	EntityID      string  `db:"entity_id"`
	Code          string  `db:"code"`
	Name          string  `db:"name"`
	AccountType   string  `db:"account_type"`
	NormalBalance string  `db:"normal_balance"`
	ParentID      *string `db:"parent_id"` // Nullable
	IsActive      bool    `db:"is_active"`
	AuditFields
}

// Entity is a row of entities.
type Entity struct {
	EntityID           string `db:"entity_id"`
	TenantID           string `db:"tenant_id"`
	Name               string `db:"name"`
	FunctionalCurrency string `db:"functional_currency"`
	IsActive           bool   `db:"is_active"`
	AuditFields
}
