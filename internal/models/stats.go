package models

import "time"

// DateLayout is the calendar-date format used for daily-streak bookkeeping.
const DateLayout = "2006-01-02"

// LearnerStats is the per-learner aggregate maintained incrementally on every
// review and recomputable from the review history for repair.
type LearnerStats struct {
	LearnerID             int64     `json:"learner_id"`
	TotalCardsStudied     int       `json:"total_cards_studied"`
	TotalStudyTimeSeconds int       `json:"total_study_time_seconds"`
	CurrentStreak         int       `json:"current_streak"` // consecutive study days
	LongestStreak         int       `json:"longest_streak"`
	LastStudyDate         string    `json:"last_study_date"` // DateLayout, empty when never studied
	ExperiencePoints      int       `json:"experience_points"`
	Level                 int       `json:"level"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// StudyStats is the stats view served to the session orchestrator.
type StudyStats struct {
	LearnerStats
	CardsDueToday       int `json:"cards_due_today"`
	TotalCardsAvailable int `json:"total_cards_available"`
}
