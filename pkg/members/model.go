package members

import "time"

type Member struct {
	ID        int64     `json:"id"`
	StartupID int64     `json:"startup_id"`
	ProfileID int64     `json:"profile_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberList struct {
	Items []Member `json:"items"`
	Total int64    `json:"total"`
}
