package mocks

import (
	"context"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, o *model.Offer) (*model.Offer, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindLive(ctx context.Context, quoteID, partnerID string) (*model.Offer, error) {
	args := m.Called(ctx, quoteID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListByQuote(ctx context.Context, quoteID string) ([]model.Offer, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockOfferRepository) ListByPartner(ctx context.Context, partnerID string, pq repository.PageQuery) (*repository.PageResult[model.Offer], error) {
	args := m.Called(ctx, partnerID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Offer]), args.Error(1)
}

func (m *MockOfferRepository) Withdraw(ctx context.Context, id, partnerID string, now time.Time) error {
	args := m.Called(ctx, id, partnerID, now)
	return args.Error(0)
}

func (m *MockOfferRepository) CountByStatus(ctx context.Context) (map[model.OfferStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.OfferStatus]int), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) BookOffer(ctx context.Context, p repository.BookingParams) (*repository.BookingResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.BookingResult), args.Error(1)
}
