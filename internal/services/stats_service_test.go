package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yerzhan/acecards/internal/models"
	"github.com/yerzhan/acecards/internal/services"
	"github.com/yerzhan/acecards/internal/testutil/mocks"
)

func newStatsServiceWithMocks() (services.StatsService, *mocks.MockStatsRepository, *mocks.MockReviewRepository, *mocks.MockCardRepository) {
	stats := new(mocks.MockStatsRepository)
	reviews := new(mocks.MockReviewRepository)
	cards := new(mocks.MockCardRepository)
	return services.NewStatsService(stats, reviews, cards), stats, reviews, cards
}

func TestGetStudyStats_HealthyAggregate(t *testing.T) {
	svc, stats, reviews, cards := newStatsServiceWithMocks()

	stats.On("Get", mock.Anything, int64(7)).Return(&models.LearnerStats{
		LearnerID:         7,
		TotalCardsStudied: 12,
		ExperiencePoints:  130,
		Level:             2,
	}, nil)
	cards.On("CountDue", mock.Anything, int64(7), mock.Anything).Return(3, nil)
	cards.On("CountAvailable", mock.Anything, int64(7)).Return(40, nil)

	got, err := svc.GetStudyStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 12, got.TotalCardsStudied)
	assert.Equal(t, 3, got.CardsDueToday)
	assert.Equal(t, 40, got.TotalCardsAvailable)

	reviews.AssertNotCalled(t, "CountHistory", mock.Anything, mock.Anything)
	stats.AssertNotCalled(t, "Recalculate", mock.Anything, mock.Anything)
}

func TestGetStudyStats_RepairsDriftedAggregate(t *testing.T) {
	svc, stats, reviews, cards := newStatsServiceWithMocks()

	// The aggregate claims zero activity but history disagrees.
	stats.On("Get", mock.Anything, int64(7)).Return(&models.LearnerStats{LearnerID: 7, Level: 1}, nil)
	reviews.On("CountHistory", mock.Anything, int64(7)).Return(5, nil)
	stats.On("Recalculate", mock.Anything, int64(7)).Return(&models.LearnerStats{
		LearnerID:         7,
		TotalCardsStudied: 5,
		ExperiencePoints:  50,
		Level:             1,
	}, nil)
	cards.On("CountDue", mock.Anything, int64(7), mock.Anything).Return(0, nil)
	cards.On("CountAvailable", mock.Anything, int64(7)).Return(5, nil)

	got, err := svc.GetStudyStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalCardsStudied, "the repaired value is served, not the drifted one")

	stats.AssertExpectations(t)
}

func TestGetStudyStats_MissingRowRepairedFromHistory(t *testing.T) {
	svc, stats, reviews, cards := newStatsServiceWithMocks()

	stats.On("Get", mock.Anything, int64(7)).Return(nil, nil)
	reviews.On("CountHistory", mock.Anything, int64(7)).Return(3, nil)
	stats.On("Recalculate", mock.Anything, int64(7)).Return(&models.LearnerStats{
		LearnerID:         7,
		TotalCardsStudied: 3,
		Level:             1,
	}, nil)
	cards.On("CountDue", mock.Anything, int64(7), mock.Anything).Return(1, nil)
	cards.On("CountAvailable", mock.Anything, int64(7)).Return(3, nil)

	got, err := svc.GetStudyStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalCardsStudied)
}

func TestGetStudyStats_BrandNewLearner(t *testing.T) {
	svc, stats, reviews, cards := newStatsServiceWithMocks()

	stats.On("Get", mock.Anything, int64(7)).Return(nil, nil)
	reviews.On("CountHistory", mock.Anything, int64(7)).Return(0, nil)
	cards.On("CountDue", mock.Anything, int64(7), mock.Anything).Return(0, nil)
	cards.On("CountAvailable", mock.Anything, int64(7)).Return(0, nil)

	got, err := svc.GetStudyStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalCardsStudied)
	assert.Equal(t, 1, got.Level, "a learner with no reviews starts at level 1")

	stats.AssertNotCalled(t, "Recalculate", mock.Anything, mock.Anything)
}
