package mocks

import (
	"context"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockShipmentService struct {
	mock.Mock
}

func (m *MockShipmentService) List(ctx context.Context, p auth.Principal, limit, offset int) (*service.ListResult[model.Shipment], error) {
	args := m.Called(ctx, p, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Shipment]), args.Error(1)
}

func (m *MockShipmentService) Get(ctx context.Context, p auth.Principal, id string) (*model.Shipment, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shipment), args.Error(1)
}

func (m *MockShipmentService) Track(ctx context.Context, p auth.Principal, tracking string) (*model.Shipment, error) {
	args := m.Called(ctx, p, tracking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shipment), args.Error(1)
}

func (m *MockShipmentService) AddEvent(ctx context.Context, p auth.Principal, id string, in service.EventInput) (*model.Shipment, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shipment), args.Error(1)
}

func (m *MockShipmentService) Confirmation(ctx context.Context, p auth.Principal, id string) (*service.File, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.File), args.Error(1)
}

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) Get(ctx context.Context, partnerID string) (*model.LeadWallet, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LeadWallet), args.Error(1)
}

func (m *MockWalletService) Transactions(ctx context.Context, partnerID string, limit, offset int) (*service.ListResult[model.WalletTransaction], error) {
	args := m.Called(ctx, partnerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.WalletTransaction]), args.Error(1)
}

func (m *MockWalletService) RequestTopUp(ctx context.Context, partnerID string, in service.TopUpInput) (*model.PaymentRequest, error) {
	args := m.Called(ctx, partnerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentRequest), args.Error(1)
}

func (m *MockWalletService) ListMyRequests(ctx context.Context, partnerID string, status model.PaymentStatus, limit, offset int) (*service.ListResult[model.PaymentRequest], error) {
	args := m.Called(ctx, partnerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.PaymentRequest]), args.Error(1)
}
