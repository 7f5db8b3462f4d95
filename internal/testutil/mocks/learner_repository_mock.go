package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yerzhan/acecards/internal/models"
)

// MockLearnerRepository is a mock implementation of repository.LearnerRepository
type MockLearnerRepository struct {
	mock.Mock
}

func (m *MockLearnerRepository) Upsert(ctx context.Context, learner models.Learner) (*models.Learner, error) {
	args := m.Called(ctx, learner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) Get(ctx context.Context, id int64) (*models.Learner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Learner), args.Error(1)
}

func (m *MockLearnerRepository) TouchActivity(ctx context.Context, id int64, t time.Time) error {
	args := m.Called(ctx, id, t)
	return args.Error(0)
}
