package notifications

import "time"

const (
	TypeInvestmentReceived = "investment_received"
	TypeInvestmentAccepted = "investment_accepted"
	TypeInvestmentDeclined = "investment_declined"
	TypePoolCompleted      = "pool_completed"
	TypeMemberAdded        = "member_added"
)

type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"recipient_id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Seen        bool      `json:"seen"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationList struct {
	Items []Notification `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
