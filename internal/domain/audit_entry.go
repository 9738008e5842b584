package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditEntry is an auditor-authored reconciliation record against a group.
type AuditEntry struct {
	ID               int32           `json:"id"`
	GroupID          int32           `json:"group"`
	AuditorID        int32           `json:"auditor"`
	ReceivableAmount decimal.Decimal `json:"receivable_amount"`
	PayableAmount    decimal.Decimal `json:"payable_amount"`
	Remarks          string          `json:"remarks,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	LastUpdated      time.Time       `json:"last_updated"`
	GroupName        string          `json:"group_name,omitempty"`
	AuditorName      string          `json:"auditor_username,omitempty"`
}

func (e *AuditEntry) OwnedBy(userID int32) bool {
	return e.AuditorID == userID
}
