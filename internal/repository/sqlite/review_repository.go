package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
	"github.com/yerzhan/acecards/internal/scheduler"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

const selectReviewState = `
SELECT learner_id, card_id, ease_factor, interval_days, due_date,
       review_count, streak_count, last_rating, total_time_spent, updated_at
FROM review_states
WHERE learner_id = ? AND card_id = ?
`

func scanReviewState(row *sql.Row) (*models.ReviewState, error) {
	var s models.ReviewState
	err := row.Scan(&s.LearnerID, &s.CardID, &s.EaseFactor, &s.IntervalDays, &s.DueDate,
		&s.ReviewCount, &s.StreakCount, &s.LastRating, &s.TotalTimeSpent, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *reviewRepository) GetState(ctx context.Context, learnerID, cardID int64) (*models.ReviewState, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("getting review state: learner_id=%d, card_id=%d", learnerID, cardID)

	state, err := scanReviewState(r.db.QueryRowContext(ctx, selectReviewState, learnerID, cardID))
	if err != nil {
		log.Error("failed to get review state: %v", err)
		return nil, err
	}
	if state == nil {
		log.Debug("no review state, card is new: card_id=%d", cardID)
	}
	return state, nil
}

// ApplyReview folds one review event into the stored state atomically. The
// state read, SM-2 transition, state upsert, history append, and learner-stats
// transition all run in one transaction, so a concurrent review of the same
// pair sees either none or all of this event's effects.
func (r *reviewRepository) ApplyReview(ctx context.Context, ev models.ReviewEvent) (*models.ReviewState, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("applying review: learner_id=%d, card_id=%d, rating=%d", ev.LearnerID, ev.CardID, ev.Rating)

	var next models.ReviewState
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		state, err := scanReviewState(tx.QueryRowContext(ctx, selectReviewState, ev.LearnerID, ev.CardID))
		if err != nil {
			return err
		}
		if state == nil {
			// First review of this card: created lazily.
			fresh := models.NewReviewState(ev.LearnerID, ev.CardID)
			state = &fresh
		}

		next, err = scheduler.Advance(*state, ev)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO review_states (learner_id, card_id, ease_factor, interval_days, due_date,
                           review_count, streak_count, last_rating, total_time_spent, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(learner_id, card_id) DO UPDATE SET
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    due_date = excluded.due_date,
    review_count = excluded.review_count,
    streak_count = excluded.streak_count,
    last_rating = excluded.last_rating,
    total_time_spent = excluded.total_time_spent,
    updated_at = excluded.updated_at
`, next.LearnerID, next.CardID, next.EaseFactor, next.IntervalDays, next.DueDate,
			next.ReviewCount, next.StreakCount, next.LastRating, next.TotalTimeSpent, next.UpdatedAt); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO review_history (learner_id, card_id, rating, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?)
`, ev.LearnerID, ev.CardID, ev.Rating, ev.TimeSpentSeconds, ev.ReviewedAt); err != nil {
			return err
		}

		stats := models.LearnerStats{LearnerID: ev.LearnerID, Level: 1}
		err = tx.QueryRowContext(ctx, `
SELECT total_cards_studied, total_study_time, current_streak, longest_streak,
       last_study_date, experience_points, level
FROM learner_stats
WHERE learner_id = ?
`, ev.LearnerID).Scan(&stats.TotalCardsStudied, &stats.TotalStudyTimeSeconds,
			&stats.CurrentStreak, &stats.LongestStreak, &stats.LastStudyDate,
			&stats.ExperiencePoints, &stats.Level)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		scheduler.AdvanceStats(&stats, ev)

		_, err = tx.ExecContext(ctx, `
INSERT INTO learner_stats (learner_id, total_cards_studied, total_study_time, current_streak,
                           longest_streak, last_study_date, experience_points, level, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(learner_id) DO UPDATE SET
    total_cards_studied = excluded.total_cards_studied,
    total_study_time = excluded.total_study_time,
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_study_date = excluded.last_study_date,
    experience_points = excluded.experience_points,
    level = excluded.level,
    updated_at = excluded.updated_at
`, stats.LearnerID, stats.TotalCardsStudied, stats.TotalStudyTimeSeconds, stats.CurrentStreak,
			stats.LongestStreak, stats.LastStudyDate, stats.ExperiencePoints, stats.Level, stats.UpdatedAt)
		return err
	})
	if err != nil {
		log.Error("failed to apply review: %v", err)
		return nil, err
	}

	log.Debug("review applied: interval=%d days, ease=%.2f", next.IntervalDays, next.EaseFactor)
	return &next, nil
}

func (r *reviewRepository) CountHistory(ctx context.Context, learnerID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_history WHERE learner_id = ?`, learnerID).Scan(&count)
	if err != nil {
		log.Error("failed to count review history: %v", err)
		return 0, err
	}
	return count, nil
}
