package domain

import (
	"encoding/json"
	"time"
)

// AuditAction names what happened to an audited record.
type AuditAction string

const (
	AuditCreate  AuditAction = "CREATE"
	AuditUpdate  AuditAction = "UPDATE"
	AuditPost    AuditAction = "POST"
	AuditApprove AuditAction = "APPROVE"
	AuditVoid    AuditAction = "VOID"
	AuditDelete  AuditAction = "DELETE"
)

// AuditRecord is written in the same transaction as the change it describes.
type AuditRecord struct {
	AuditID   string          `json:"auditID"`
	TenantID  string          `json:"tenantID"`
	UserID    string          `json:"userID"`
	EntityID  string          `json:"entityID"`
	Model     string          `json:"model"`
	RecordID  string          `json:"recordID"`
	Action    AuditAction     `json:"action"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
