package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	repoMocks "github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository/mocks"
)

func newTestWalletService() (*walletService, *repoMocks.MockWalletRepository, *repoMocks.MockPaymentRepository) {
	w, p := new(repoMocks.MockWalletRepository), new(repoMocks.MockPaymentRepository)
	svc := NewWalletService(w, p).(*walletService)
	svc.now = fixedClock
	return svc, w, p
}

func TestWalletService_Get(t *testing.T) {
	ctx := context.Background()
	svc, wallets, _ := newTestWalletService()
	wallets.On("Get", ctx, "partner-1").Return(&model.LeadWallet{PartnerID: "partner-1", Balance: 500000, Currency: "INR"}, nil)
	wallets.On("Get", ctx, "partner-2").Return(nil, sql.ErrNoRows)

	w, err := svc.Get(ctx, "partner-1")
	require.NoError(t, err)
	assert.Equal(t, model.Money(500000), w.Balance)

	w, err = svc.Get(ctx, "partner-2")
	require.NoError(t, err)
	assert.Equal(t, model.Money(0), w.Balance)
	assert.Equal(t, "INR", w.Currency)
}

func TestWalletService_Transactions(t *testing.T) {
	ctx := context.Background()
	svc, wallets, _ := newTestWalletService()
	wallets.On("ListTransactions", ctx, "partner-1", repository.PageQuery{Limit: 20, Offset: 40}).
		Return(&repository.PageResult[model.WalletTransaction]{Items: []model.WalletTransaction{{ID: "tx-1"}}, Total: 41}, nil)

	res, err := svc.Transactions(ctx, "partner-1", 20, 40)
	require.NoError(t, err)
	assert.Equal(t, 41, res.Total)
}

func TestWalletService_RequestTopUp(t *testing.T) {
	ctx := context.Background()

	svc, _, payments := newTestWalletService()
	payments.On("Create", ctx, mock.MatchedBy(func(p *model.PaymentRequest) bool {
		return p.Amount == 1000000 && p.Method == "NEFT" && p.Status == model.PaymentPending && p.CreatedAt.Equal(fixedNow)
	})).Return(&model.PaymentRequest{ID: "pr-1", Status: model.PaymentPending}, nil)

	pr, err := svc.RequestTopUp(ctx, "partner-1", TopUpInput{Amount: 1000000, Method: " neft ", Reference: "UTR123"})
	require.NoError(t, err)
	assert.Equal(t, "pr-1", pr.ID)

	_, err = svc.RequestTopUp(ctx, "partner-1", TopUpInput{Amount: 0, Method: "NEFT"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RequestTopUp(ctx, "partner-1", TopUpInput{Amount: 100})
	assert.ErrorIs(t, err, ErrValidation)
	payments.AssertNumberOfCalls(t, "Create", 1)
}

func TestWalletService_ListMyRequests(t *testing.T) {
	ctx := context.Background()
	svc, _, payments := newTestWalletService()
	payments.On("List", ctx, repository.PaymentFilter{PartnerID: "partner-1", Status: model.PaymentPending}, repository.PageQuery{Limit: 10}).
		Return(&repository.PageResult[model.PaymentRequest]{}, nil)

	res, err := svc.ListMyRequests(ctx, "partner-1", model.PaymentPending, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	payments.AssertExpectations(t)
}
