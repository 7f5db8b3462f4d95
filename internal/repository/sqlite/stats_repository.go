package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yerzhan/acecards/internal/logger"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/repository"
	"github.com/yerzhan/acecards/internal/scheduler"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context, learnerID int64) (*models.LearnerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("getting learner stats: learner_id=%d", learnerID)

	var s models.LearnerStats
	err := r.db.QueryRowContext(ctx, `
SELECT learner_id, total_cards_studied, total_study_time, current_streak, longest_streak,
       last_study_date, experience_points, level, updated_at
FROM learner_stats
WHERE learner_id = ?
`, learnerID).Scan(&s.LearnerID, &s.TotalCardsStudied, &s.TotalStudyTimeSeconds,
		&s.CurrentStreak, &s.LongestStreak, &s.LastStudyDate,
		&s.ExperiencePoints, &s.Level, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stats row for learner: id=%d", learnerID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner stats: %v", err)
		return nil, err
	}
	return &s, nil
}

// Recalculate rebuilds the aggregate from review_history and overwrites the
// stored row. Calling it twice with no intervening reviews yields identical
// results.
func (r *statsRepository) Recalculate(ctx context.Context, learnerID int64) (*models.LearnerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("recalculating learner stats: learner_id=%d", learnerID)

	stats := models.LearnerStats{LearnerID: learnerID, Level: 1, UpdatedAt: time.Now()}

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		var lastDate sql.NullString
		var totalTime sql.NullInt64
		var easyCount int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(time_seconds), 0),
       COALESCE(SUM(CASE WHEN rating = 4 THEN 1 ELSE 0 END), 0),
       MAX(date(reviewed_at))
FROM review_history
WHERE learner_id = ?
`, learnerID).Scan(&stats.TotalCardsStudied, &totalTime, &easyCount, &lastDate); err != nil {
			return err
		}
		stats.TotalStudyTimeSeconds = int(totalTime.Int64)
		if lastDate.Valid {
			stats.LastStudyDate = lastDate.String
		}

		baseXP := scheduler.XPForRating(scheduler.RatingGood)
		easyXP := scheduler.XPForRating(scheduler.RatingEasy)
		stats.ExperiencePoints = stats.TotalCardsStudied*baseXP + easyCount*(easyXP-baseXP)
		stats.Level = scheduler.LevelForXP(stats.ExperiencePoints)

		rows, err := tx.QueryContext(ctx, `
SELECT DISTINCT date(reviewed_at) AS day
FROM review_history
WHERE learner_id = ?
ORDER BY day ASC
`, learnerID)
		if err != nil {
			return err
		}
		defer rows.Close()

		var days []string
		for rows.Next() {
			var d string
			if err := rows.Scan(&d); err != nil {
				return err
			}
			days = append(days, d)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		stats.CurrentStreak, stats.LongestStreak = scheduler.RebuildStreaks(days)

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
		log.Error("failed to recalculate stats: %v", err)
		return nil, err
	}

	log.Info("stats recalculated: learner_id=%d, reviews=%d", learnerID, stats.TotalCardsStudied)
	return &stats, nil
}
