package scheduler

import (
	"time"

	"github.com/yerzhan/acecards/internal/models"
)

// Experience accrual: every review is worth a flat amount, an Easy recall a
// little extra. Levels are linear in experience.
const (
	xpPerReview = 10
	xpEasyBonus = 5
	xpPerLevel  = 100
)

// XPForRating returns the experience earned by one review.
func XPForRating(rating Rating) int {
	xp := xpPerReview
	if rating == RatingEasy {
		xp += xpEasyBonus
	}
	return xp
}

// LevelForXP derives the level from accumulated experience.
func LevelForXP(xp int) int {
	return 1 + xp/xpPerLevel
}

// AdvanceStats folds one review event into the learner aggregate.
//
// The daily practice streak is distinct from the per-card streak in
// ReviewState: it counts consecutive calendar days with at least one review.
// It grows once per day, survives any number of same-day reviews unchanged,
// and resets to 1 after a skipped day.
func AdvanceStats(stats *models.LearnerStats, ev models.ReviewEvent) {
	stats.TotalCardsStudied++
	stats.TotalStudyTimeSeconds += ev.TimeSpentSeconds

	day := utcDay(ev.ReviewedAt).Format(models.DateLayout)
	switch stats.LastStudyDate {
	case day:
		// already counted today
	case previousDay(ev.ReviewedAt):
		stats.CurrentStreak++
	default:
		stats.CurrentStreak = 1
	}
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastStudyDate = day

	stats.ExperiencePoints += XPForRating(Rating(ev.Rating))
	stats.Level = LevelForXP(stats.ExperiencePoints)
	stats.UpdatedAt = ev.ReviewedAt
}

// RebuildStreaks recomputes the daily streak counters from the distinct study
// dates in ascending order. Used by the stats repair path.
func RebuildStreaks(days []string) (current, longest int) {
	var prev time.Time
	for i, d := range days {
		t, err := time.Parse(models.DateLayout, d)
		if err != nil {
			continue
		}
		if i > 0 && t.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
		prev = t
	}
	return current, longest
}

func previousDay(t time.Time) string {
	return utcDay(t).AddDate(0, 0, -1).Format(models.DateLayout)
}
