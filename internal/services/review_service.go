package services

import (
	"context"
	"time"

	"github.com/yerzhan/acecards/internal/errors"
	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
	"github.com/yerzhan/acecards/internal/scheduler"
)

// ReviewService handles study-session business logic: due/new card selection
// and the review-event state transition.
type ReviewService interface {
	GetDueCards(ctx context.Context, learnerID int64, limit int) ([]models.DueCard, error)
	GetNewCards(ctx context.Context, learnerID int64, limit int) ([]models.NewCard, error)
	ReviewCard(ctx context.Context, learnerID, cardID int64, rating int, timeSpentSeconds int) error
}

type reviewService struct {
	cards   repository.CardRepository
	reviews repository.ReviewRepository

	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(cards repository.CardRepository, reviews repository.ReviewRepository, defaultLimit, maxLimit int) ReviewService {
	return &reviewService{
		cards:        cards,
		reviews:      reviews,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

func (s *reviewService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func (s *reviewService) GetDueCards(ctx context.Context, learnerID int64, limit int) ([]models.DueCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting due cards: learner_id=%d, limit=%d", learnerID, limit)

	cards, err := s.cards.DueCards(ctx, learnerID, s.now(), s.clampLimit(limit))
	if err != nil {
		log.Error("failed to get due cards: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	return cards, nil
}

func (s *reviewService) GetNewCards(ctx context.Context, learnerID int64, limit int) ([]models.NewCard, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting new cards: learner_id=%d, limit=%d", learnerID, limit)

	cards, err := s.cards.NewCards(ctx, learnerID, s.clampLimit(limit))
	if err != nil {
		log.Error("failed to get new cards: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	return cards, nil
}

// ReviewCard applies one review event: rating validation, catalog check, then
// the repository folds the SM-2 transition into storage in one transaction
// (state read included, so concurrent reviews of the same pair cannot lose an
// update).
func (s *reviewService) ReviewCard(ctx context.Context, learnerID, cardID int64, rating int, timeSpentSeconds int) error {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: learner_id=%d, card_id=%d, rating=%d", learnerID, cardID, rating)

	// Rejected before any state is touched.
	if !scheduler.Rating(rating).Valid() {
		return errors.NewInvalidRatingError(rating)
	}
	if timeSpentSeconds < 0 {
		return errors.NewValidationError("time_spent_seconds", "must not be negative")
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		log.Error("failed to look up card: %v", err)
		return errors.NewPersistenceError(err)
	}
	if card == nil {
		return errors.NewUnknownCardError(cardID)
	}

	ev := models.ReviewEvent{
		LearnerID:        learnerID,
		CardID:           cardID,
		Rating:           rating,
		TimeSpentSeconds: timeSpentSeconds,
		ReviewedAt:       s.now(),
	}

	next, err := s.reviews.ApplyReview(ctx, ev)
	if err != nil {
		log.Error("failed to persist review: %v", err)
		return errors.NewPersistenceError(err)
	}

	log.Info("card reviewed: learner_id=%d, card_id=%d, interval=%d days, due=%s",
		learnerID, cardID, next.IntervalDays, next.DueDate.Format(models.DateLayout))
	return nil
}
