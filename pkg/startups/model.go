package startups

import "time"

type Startup struct {
	ID          int64     `json:"id"`
	FounderID   int64     `json:"founder_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type StartupList struct {
	Items []Startup `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}
