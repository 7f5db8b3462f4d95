package models

import "time"

// Card content is immutable once authored; the scheduler never mutates it.
// Difficulty is the author-assigned intrinsic difficulty, 1 (easy) to 5 (hard).
type Card struct {
	ID         int64     `json:"id"`
	DeckID     int64     `json:"deck_id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Tags       string    `json:"tags"`
	Difficulty int       `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCard is a card the learner has never reviewed, joined with its deck name.
type NewCard struct {
	Card
	DeckName string `json:"deck_name"`
}

// DueCard is a card due for review joined with its scheduling state and deck name.
type DueCard struct {
	Card
	ReviewState
	DeckName string `json:"deck_name"`
}
