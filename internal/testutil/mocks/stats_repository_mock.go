package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yerzhan/acecards/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Get(ctx context.Context, learnerID int64) (*models.LearnerStats, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerStats), args.Error(1)
}

func (m *MockStatsRepository) Recalculate(ctx context.Context, learnerID int64) (*models.LearnerStats, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerStats), args.Error(1)
}
