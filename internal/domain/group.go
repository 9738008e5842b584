package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group is a bookkeeping unit an owner collects transactions under.
// TargetAmount is optional; when set, the summary engine reports how much
// of the target the approved income has covered.
type Group struct {
	ID           int32            `json:"id"`
	OwnerID      int32            `json:"owner"`
	Title        string           `json:"group_title"`
	Type         string           `json:"group_type"`
	Name         string           `json:"name"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (g *Group) OwnedBy(userID int32) bool {
	return g.OwnerID == userID
}
