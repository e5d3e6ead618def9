package dto

import (
	"encoding/json"
	"time"

	"berostock/internal/core/id"
)

// AuditEntryResponse is one recorded mutation of a sale.
type AuditEntryResponse struct {
	ID        id.ID           `json:"id"`
	Action    string          `json:"action"`
	UserID    string          `json:"user_id,omitempty"`
	UserEmail string          `json:"user_email,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AuditHistoryResponse is the audit trail of a single sale, newest
// entry first.
type AuditHistoryResponse struct {
	Items      []AuditEntryResponse `json:"items"`
	TotalCount int                  `json:"total_count"`
}
