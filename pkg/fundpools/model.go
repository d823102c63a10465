package fundpools

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
)

type FundPool struct {
	ID            int64           `json:"id"`
	StartupID     int64           `json:"startup_id"`
	FundGoal      decimal.Decimal `json:"fund_goal"`
	AcceptedTotal decimal.Decimal `json:"accepted_total"`
	ReservedTotal decimal.Decimal `json:"-"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type FundPoolList struct {
	Items []FundPool `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}
