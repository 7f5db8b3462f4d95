package models

import "time"

// ReviewState is the scheduling state of one (learner, card) pair. It is
// created lazily on the first review and replaced wholesale on every
// subsequent one (upsert keyed by the pair).
type ReviewState struct {
	LearnerID      int64     `json:"learner_id"`
	CardID         int64     `json:"card_id"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	DueDate        time.Time `json:"due_date"`
	ReviewCount    int       `json:"review_count"`
	StreakCount    int       `json:"streak_count"`
	LastRating     int       `json:"last_rating"`
	TotalTimeSpent int       `json:"total_time_spent"` // cumulative seconds, never reset
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewReviewState returns the initial state for a never-reviewed card.
func NewReviewState(learnerID, cardID int64) ReviewState {
	return ReviewState{
		LearnerID:    learnerID,
		CardID:       cardID,
		EaseFactor:   2.5,
		IntervalDays: 1,
	}
}

// ReviewEvent is the input of one review: it is folded into ReviewState and
// LearnerStats and logged to the review history, never stored verbatim.
type ReviewEvent struct {
	LearnerID        int64
	CardID           int64
	Rating           int // 1=Again, 2=Hard, 3=Good, 4=Easy
	TimeSpentSeconds int
	ReviewedAt       time.Time
}
