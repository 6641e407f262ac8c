package mocks

import (
	"context"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Get(ctx context.Context, partnerID string) (*model.LeadWallet, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LeadWallet), args.Error(1)
}

func (m *MockWalletRepository) ListTransactions(ctx context.Context, partnerID string, pq repository.PageQuery) (*repository.PageResult[model.WalletTransaction], error) {
	args := m.Called(ctx, partnerID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.WalletTransaction]), args.Error(1)
}

func (m *MockWalletRepository) TotalBalance(ctx context.Context) (model.Money, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Money), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *model.PaymentRequest) (*model.PaymentRequest, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id string) (*model.PaymentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRepository) List(ctx context.Context, f repository.PaymentFilter, pq repository.PageQuery) (*repository.PageResult[model.PaymentRequest], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.PaymentRequest]), args.Error(1)
}

func (m *MockPaymentRepository) Approve(ctx context.Context, id, reviewerID string, now time.Time) (*model.PaymentRequest, *model.WalletTransaction, error) {
	args := m.Called(ctx, id, reviewerID, now)
	var (
		req *model.PaymentRequest
		wt  *model.WalletTransaction
	)
	if v := args.Get(0); v != nil {
		req = v.(*model.PaymentRequest)
	}
	if v := args.Get(1); v != nil {
		wt = v.(*model.WalletTransaction)
	}
	return req, wt, args.Error(2)
}

func (m *MockPaymentRepository) Reject(ctx context.Context, id, reviewerID, note string, now time.Time) (*model.PaymentRequest, error) {
	args := m.Called(ctx, id, reviewerID, note, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentRequest), args.Error(1)
}
