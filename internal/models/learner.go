package models

import "time"

// Learner identity is supplied by the caller (the chat front-end), so IDs are
// external and upserts replace the username on conflict.
type Learner struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}
