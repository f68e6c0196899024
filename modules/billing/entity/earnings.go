package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderEarnings is the running per-provider ledger. Both counters are
// monotonically non-decreasing; each completed appointment bumps them
// exactly once.
type ProviderEarnings struct {
	ProviderID            uuid.UUID `db:"provider_id" json:"provider_id"`
	TotalCompletedMatches int       `db:"total_completed_matches" json:"total_completed_matches"`
	TotalNetPaid          float64   `db:"total_net_paid" json:"total_net_paid"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}
