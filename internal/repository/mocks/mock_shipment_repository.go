package mocks

import (
	"context"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id string) (*model.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByTracking(ctx context.Context, tracking string) (*model.Shipment, error) {
	args := m.Called(ctx, tracking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) List(ctx context.Context, f repository.ShipmentFilter, pq repository.PageQuery) (*repository.PageResult[model.Shipment], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Shipment]), args.Error(1)
}

func (m *MockShipmentRepository) AddEvent(ctx context.Context, from model.ShipmentStatus, ev *model.ShipmentEvent) error {
	args := m.Called(ctx, from, ev)
	return args.Error(0)
}

func (m *MockShipmentRepository) CountByStatus(ctx context.Context) (map[model.ShipmentStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ShipmentStatus]int), args.Error(1)
}
