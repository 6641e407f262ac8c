package mocks

import (
	"context"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id string) (*model.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) List(ctx context.Context, f repository.QuoteFilter, pq repository.PageQuery) (*repository.PageResult[model.Quote], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Quote]), args.Error(1)
}

func (m *MockQuoteRepository) ListOpen(ctx context.Context) ([]model.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) MarkOffersReceived(ctx context.Context, id string, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

func (m *MockQuoteRepository) Cancel(ctx context.Context, id, traderID string, now time.Time) (*repository.CancelResult, error) {
	args := m.Called(ctx, id, traderID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.CancelResult), args.Error(1)
}

func (m *MockQuoteRepository) ExpireDue(ctx context.Context, now time.Time) ([]model.Quote, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteRepository) CountByStatus(ctx context.Context) (map[model.QuoteStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.QuoteStatus]int), args.Error(1)
}
