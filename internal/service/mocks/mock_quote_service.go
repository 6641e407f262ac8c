package mocks

import (
	"context"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/pricing"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Create(ctx context.Context, traderID string, in service.QuoteInput) (*model.Quote, error) {
	args := m.Called(ctx, traderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) List(ctx context.Context, p auth.Principal, status model.QuoteStatus, limit, offset int) (*service.ListResult[model.Quote], error) {
	args := m.Called(ctx, p, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Quote]), args.Error(1)
}

func (m *MockQuoteService) Get(ctx context.Context, p auth.Principal, id string) (*service.QuoteView, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.QuoteView), args.Error(1)
}

func (m *MockQuoteService) Cancel(ctx context.Context, p auth.Principal, id string) (*model.Quote, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) Matches(ctx context.Context, p auth.Principal, id string) ([]model.PartnerProfile, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PartnerProfile), args.Error(1)
}

func (m *MockQuoteService) LeadCostPreview(ctx context.Context, p auth.Principal, id string) (*pricing.Breakdown, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Breakdown), args.Error(1)
}

func (m *MockQuoteService) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) Submit(ctx context.Context, partnerID, quoteID string, in service.OfferInput) (*model.Offer, error) {
	args := m.Called(ctx, partnerID, quoteID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockOfferService) ListForQuote(ctx context.Context, p auth.Principal, quoteID string) ([]model.Offer, error) {
	args := m.Called(ctx, p, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockOfferService) ListMine(ctx context.Context, partnerID string, limit, offset int) (*service.ListResult[model.Offer], error) {
	args := m.Called(ctx, partnerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Offer]), args.Error(1)
}

func (m *MockOfferService) Withdraw(ctx context.Context, partnerID, offerID string) error {
	args := m.Called(ctx, partnerID, offerID)
	return args.Error(0)
}

func (m *MockOfferService) Select(ctx context.Context, traderID, offerID string) (*service.Booking, error) {
	args := m.Called(ctx, traderID, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Booking), args.Error(1)
}
