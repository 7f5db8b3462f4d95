package services

import (
	"context"
	"time"

	"github.com/yerzhan/acecards/internal/errors"
	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
)

// StatsService serves the learner's study statistics, repairing the stored
// aggregate when it has drifted out of sync with the review history.
type StatsService interface {
	GetStudyStats(ctx context.Context, learnerID int64) (*models.StudyStats, error)
	Recalculate(ctx context.Context, learnerID int64) (*models.LearnerStats, error)
}

type statsService struct {
	stats   repository.StatsRepository
	reviews repository.ReviewRepository
	cards   repository.CardRepository

	now func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(stats repository.StatsRepository, reviews repository.ReviewRepository, cards repository.CardRepository) StatsService {
	return &statsService{stats: stats, reviews: reviews, cards: cards, now: time.Now}
}

// GetStudyStats reads the stored aggregate. When the aggregate claims zero
// activity but review history rows exist, the read triggers the repair
// protocol: the aggregate is rebuilt from history and the repaired value is
// served. The repair is logged, never fatal to the read.
func (s *statsService) GetStudyStats(ctx context.Context, learnerID int64) (*models.StudyStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting study stats: learner_id=%d", learnerID)

	stats, err := s.stats.Get(ctx, learnerID)
	if err != nil {
		log.Error("failed to read stats: %v", err)
		return nil, errors.NewPersistenceError(err)
	}

	if stats == nil || stats.TotalCardsStudied == 0 {
		reviews, err := s.reviews.CountHistory(ctx, learnerID)
		if err != nil {
			log.Error("failed to count review history: %v", err)
			return nil, errors.NewPersistenceError(err)
		}
		if reviews > 0 {
			log.Warn("stats inconsistency detected: aggregate empty but %d reviews on record, repairing: learner_id=%d", reviews, learnerID)
			stats, err = s.stats.Recalculate(ctx, learnerID)
			if err != nil {
				log.Error("stats repair failed: %v", err)
				return nil, errors.NewPersistenceError(err)
			}
		}
	}

	if stats == nil {
		stats = &models.LearnerStats{LearnerID: learnerID, Level: 1}
	}

	due, err := s.cards.CountDue(ctx, learnerID, s.now())
	if err != nil {
		log.Error("failed to count due cards: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	available, err := s.cards.CountAvailable(ctx, learnerID)
	if err != nil {
		log.Error("failed to count available cards: %v", err)
		return nil, errors.NewPersistenceError(err)
	}

	return &models.StudyStats{
		LearnerStats:        *stats,
		CardsDueToday:       due,
		TotalCardsAvailable: available,
	}, nil
}

func (s *statsService) Recalculate(ctx context.Context, learnerID int64) (*models.LearnerStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("recalculating stats: learner_id=%d", learnerID)

	stats, err := s.stats.Recalculate(ctx, learnerID)
	if err != nil {
		log.Error("failed to recalculate stats: %v", err)
		return nil, errors.NewPersistenceError(err)
	}
	return stats, nil
}
