package scheduler

import (
	"time"

	"github.com/yerzhan/acecards/internal/errors"
	"github.com/yerzhan/acecards/internal/models"
)

// Rating grades one recall attempt.
type Rating int

const (
	RatingAgain Rating = iota + 1
	RatingHard
	RatingGood
	RatingEasy
)

// MinEaseFactor is the floor below which an ease factor never drops.
const MinEaseFactor = 1.3

// Valid reports whether the rating is within the 1..4 contract.
func (r Rating) Valid() bool {
	return r >= RatingAgain && r <= RatingEasy
}

// Update applies the SM-2 rule to one scheduling state. It is pure: the new
// ease factor and interval are returned, nothing is mutated.
//
// A rating below Good is a failure: the interval resets to one day and the
// ease factor loses a flat 0.2. On success the interval grows to six days
// after the first pass, then by the pre-update ease factor with the product
// truncated toward zero; the ease factor moves by
// 0.1 - (5-rating)*(0.08+(5-rating)*0.02). Both branches clamp the ease
// factor at MinEaseFactor.
func Update(easeFactor float64, intervalDays int, rating Rating) (float64, int, error) {
	if !rating.Valid() {
		return 0, 0, errors.NewInvalidRatingError(int(rating))
	}

	if rating < RatingGood {
		ef := easeFactor - 0.2
		if ef < MinEaseFactor {
			ef = MinEaseFactor
		}
		return ef, 1, nil
	}

	interval := 6
	if intervalDays != 1 {
		interval = int(float64(intervalDays) * easeFactor)
	}
	if interval < 1 {
		interval = 1
	}

	q := float64(5 - rating)
	ef := easeFactor + (0.1 - q*(0.08+q*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}
	return ef, interval, nil
}

// Advance folds one review event into a copy of the given state. The zero
// state for a fresh card comes from models.NewReviewState.
//
// Due dates are calendar days, not instants: the new due date is the UTC date
// of the review plus the interval, at midnight. A card failed late in the
// evening with interval 1 is due from the very start of the next day.
func Advance(state models.ReviewState, ev models.ReviewEvent) (models.ReviewState, error) {
	ef, interval, err := Update(state.EaseFactor, state.IntervalDays, Rating(ev.Rating))
	if err != nil {
		return models.ReviewState{}, err
	}

	state.EaseFactor = ef
	state.IntervalDays = interval
	state.DueDate = utcDay(ev.ReviewedAt).AddDate(0, 0, interval)
	state.ReviewCount++
	if Rating(ev.Rating) >= RatingGood {
		state.StreakCount++
	} else {
		state.StreakCount = 0
	}
	state.LastRating = ev.Rating
	state.TotalTimeSpent += ev.TimeSpentSeconds
	state.UpdatedAt = ev.ReviewedAt
	return state, nil
}

// utcDay truncates an instant to midnight of its UTC calendar day. All day
// bucketing (due dates, study-streak days) uses UTC so the incremental and
// repair paths agree regardless of the host timezone.
func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
