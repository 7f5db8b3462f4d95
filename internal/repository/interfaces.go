package repository

import (
	"context"
	"time"

	"github.com/yerzhan/acecards/internal/models"
)

// LearnerRepository handles learner identity data access
type LearnerRepository interface {
	Upsert(ctx context.Context, learner models.Learner) (*models.Learner, error)
	Get(ctx context.Context, id int64) (*models.Learner, error)
	TouchActivity(ctx context.Context, id int64, t time.Time) error
}

// DeckRepository handles deck data access
type DeckRepository interface {
	Insert(ctx context.Context, deck models.Deck) (int64, error)
	Get(ctx context.Context, id int64) (*models.Deck, error)
	ListForLearner(ctx context.Context, learnerID int64) ([]models.Deck, error)
	Subscribe(ctx context.Context, learnerID, deckID int64) error
}

// CardRepository handles card catalog access and the scheduler's card queries
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) (int64, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	Delete(ctx context.Context, id int64) error
	DueCards(ctx context.Context, learnerID int64, now time.Time, limit int) ([]models.DueCard, error)
	NewCards(ctx context.Context, learnerID int64, limit int) ([]models.NewCard, error)
	CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error)
	CountAvailable(ctx context.Context, learnerID int64) (int, error)
}

// ReviewRepository owns review state and the per-event write path
type ReviewRepository interface {
	GetState(ctx context.Context, learnerID, cardID int64) (*models.ReviewState, error)
	// ApplyReview folds one review event into the stored state as a single
	// transaction: the state read, the SM-2 transition, the state upsert,
	// the history append, and the learner-stats transition commit together
	// or not at all. Keeping the read inside the transaction means
	// concurrent reviews of the same (learner, card) serialize with no lost
	// update.
	ApplyReview(ctx context.Context, ev models.ReviewEvent) (*models.ReviewState, error)
	CountHistory(ctx context.Context, learnerID int64) (int, error)
}

// StatsRepository handles the learner aggregate
type StatsRepository interface {
	Get(ctx context.Context, learnerID int64) (*models.LearnerStats, error)
	// Recalculate rebuilds the aggregate from the review history and
	// overwrites the stored row. Idempotent.
	Recalculate(ctx context.Context, learnerID int64) (*models.LearnerStats, error)
}
