package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yerzhan/acecards/internal/models"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Insert(ctx context.Context, card models.Card) (int64, error) {
	args := m.Called(ctx, card)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) DueCards(ctx context.Context, learnerID int64, now time.Time, limit int) ([]models.DueCard, error) {
	args := m.Called(ctx, learnerID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DueCard), args.Error(1)
}

func (m *MockCardRepository) NewCards(ctx context.Context, learnerID int64, limit int) ([]models.NewCard, error) {
	args := m.Called(ctx, learnerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NewCard), args.Error(1)
}

func (m *MockCardRepository) CountDue(ctx context.Context, learnerID int64, now time.Time) (int, error) {
	args := m.Called(ctx, learnerID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) CountAvailable(ctx context.Context, learnerID int64) (int, error) {
	args := m.Called(ctx, learnerID)
	return args.Int(0), args.Error(1)
}
