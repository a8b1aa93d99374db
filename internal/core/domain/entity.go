package domain

// Entity is a legal or business unit owning its own chart of accounts and
// fiscal calendar. Financial fields are immutable once posted entries exist.
type Entity struct {
	EntityID           string `json:"entityID"`
	TenantID           string `json:"tenantID"`
	Name               string `json:"name"`
	FunctionalCurrency string `json:"functionalCurrency"` // e.g. "CAD"
	IsActive           bool   `json:"isActive"`
	AuditFields
}

// Role defines what a user may do within a tenant.
type Role string

const (
	RoleOwner      Role = "OWNER"
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleMember     Role = "MEMBER"
	RoleReadOnly   Role = "READONLY"
)

// Actor is the authenticated caller of a ledger operation.
type Actor struct {
	UserID   string `json:"userID"`
	TenantID string `json:"tenantID"`
	Role     Role   `json:"role"`
}

// CanSelfApprove reports the sole-owner exception to separation of duties:
// a single-operator business may approve its own entries.
func (a Actor) CanSelfApprove() bool {
	return a.Role == RoleOwner
}
