package models

import "time"

type Deck struct {
	ID          int64     `json:"id"`
	LearnerID   int64     `json:"learner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
