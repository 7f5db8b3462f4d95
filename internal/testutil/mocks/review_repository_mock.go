package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yerzhan/acecards/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) GetState(ctx context.Context, learnerID, cardID int64) (*models.ReviewState, error) {
	args := m.Called(ctx, learnerID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewState), args.Error(1)
}

func (m *MockReviewRepository) ApplyReview(ctx context.Context, ev models.ReviewEvent) (*models.ReviewState, error) {
	args := m.Called(ctx, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewState), args.Error(1)
}

func (m *MockReviewRepository) CountHistory(ctx context.Context, learnerID int64) (int, error) {
	args := m.Called(ctx, learnerID)
	return args.Int(0), args.Error(1)
}
