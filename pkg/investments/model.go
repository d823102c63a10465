package investments

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusWithdrawn = "withdrawn"
)

// transitions is the authoritative state machine: pending is the sole
// non-terminal state. Every status check goes through CanTransition instead
// of re-deriving legality at call sites.
var transitions = map[string][]string{
	StatusPending: {StatusAccepted, StatusDeclined, StatusWithdrawn},
}

func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type Investment struct {
	ID         int64           `json:"id"`
	FundPoolID int64           `json:"fund_pool_id"`
	StartupID  int64           `json:"startup_id"`
	ProfileID  int64           `json:"profile_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type InvestmentList struct {
	Items []Investment `json:"items"`
	Total int64        `json:"total"`
}
