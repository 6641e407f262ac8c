package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	repoMocks "github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository/mocks"
)

type stubSweep struct {
	n   int
	err error
}

func (s stubSweep) RunOnce(context.Context) (int, error) { return s.n, s.err }

type adminFixture struct {
	users     *repoMocks.MockUserRepository
	quotes    *repoMocks.MockQuoteRepository
	offers    *repoMocks.MockOfferRepository
	shipments *repoMocks.MockShipmentRepository
	wallets   *repoMocks.MockWalletRepository
	payments  *repoMocks.MockPaymentRepository
	notifier  *fakeNotifier
	svc       *adminService
}

func newAdminFixture(sweep Sweep) *adminFixture {
	f := &adminFixture{
		users:     new(repoMocks.MockUserRepository),
		quotes:    new(repoMocks.MockQuoteRepository),
		offers:    new(repoMocks.MockOfferRepository),
		shipments: new(repoMocks.MockShipmentRepository),
		wallets:   new(repoMocks.MockWalletRepository),
		payments:  new(repoMocks.MockPaymentRepository),
		notifier:  &fakeNotifier{},
	}
	repos := Repositories{
		Users:     f.users,
		Quotes:    f.quotes,
		Offers:    f.offers,
		Shipments: f.shipments,
		Wallets:   f.wallets,
		Payments:  f.payments,
	}
	f.svc = NewAdminService(repos, f.notifier, sweep).(*adminService)
	f.svc.now = fixedClock
	return f
}

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(nil)
	f.users.On("List", ctx, model.RolePartner, repository.PageQuery{Limit: 10}).
		Return(&repository.PageResult[model.User]{Items: []model.User{{ID: "partner-1"}}, Total: 1}, nil)

	res, err := f.svc.ListUsers(ctx, model.RolePartner, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = f.svc.ListUsers(ctx, "GUEST", 0, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdminService_VerifyUser(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(nil)
	f.users.On("SetVerified", ctx, "partner-1", true).Return(nil)
	f.users.On("FindByID", ctx, "partner-1").Return(&model.User{ID: "partner-1", Role: model.RolePartner, Verified: true}, nil)
	f.users.On("SetVerified", ctx, "ghost", true).Return(sql.ErrNoRows)

	u, err := f.svc.VerifyUser(ctx, "partner-1")
	require.NoError(t, err)
	assert.True(t, u.Verified)
	assert.Equal(t, model.NotifyAccountVerified, f.notifier.kinds()["partner-1"])

	_, err = f.svc.VerifyUser(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminService_ReviewPayments(t *testing.T) {
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		f := newAdminFixture(nil)
		f.payments.On("Approve", ctx, "pr-1", "admin-1", fixedNow).Return(
			&model.PaymentRequest{ID: "pr-1", PartnerID: "partner-1", Amount: 1000000, Status: model.PaymentApproved},
			&model.WalletTransaction{Kind: model.TxCredit, Amount: 1000000, BalanceAfter: 1500000},
			nil,
		)
		f.users.On("FindByID", ctx, "partner-1").Return(&model.User{ID: "partner-1"}, nil)

		pr, err := f.svc.ApprovePayment(ctx, "admin-1", "pr-1")
		require.NoError(t, err)
		assert.Equal(t, model.PaymentApproved, pr.Status)
		assert.Equal(t, model.NotifyPaymentReviewed, f.notifier.kinds()["partner-1"])
	})

	t.Run("approve twice", func(t *testing.T) {
		f := newAdminFixture(nil)
		f.payments.On("Approve", ctx, "pr-1", "admin-1", fixedNow).Return(nil, nil, repository.ErrStateChanged)
		_, err := f.svc.ApprovePayment(ctx, "admin-1", "pr-1")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("reject", func(t *testing.T) {
		f := newAdminFixture(nil)
		f.payments.On("Reject", ctx, "pr-2", "admin-1", "UTR not found", fixedNow).Return(
			&model.PaymentRequest{ID: "pr-2", PartnerID: "partner-1", Amount: 50000, Status: model.PaymentRejected}, nil)
		f.users.On("FindByID", ctx, "partner-1").Return(&model.User{ID: "partner-1"}, nil)

		pr, err := f.svc.RejectPayment(ctx, "admin-1", "pr-2", "UTR not found")
		require.NoError(t, err)
		assert.Equal(t, model.PaymentRejected, pr.Status)
	})

	t.Run("reject missing", func(t *testing.T) {
		f := newAdminFixture(nil)
		f.payments.On("Reject", ctx, "pr-3", "admin-1", "", fixedNow).Return(nil, sql.ErrNoRows)
		_, err := f.svc.RejectPayment(ctx, "admin-1", "pr-3", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(nil)
	f.users.On("CountByRole", ctx).Return(map[model.Role]int{model.RoleTrader: 4, model.RolePartner: 2}, nil)
	f.quotes.On("CountByStatus", ctx).Return(map[model.QuoteStatus]int{model.QuoteOpen: 3}, nil)
	f.offers.On("CountByStatus", ctx).Return(map[model.OfferStatus]int{model.OfferPending: 5}, nil)
	f.shipments.On("CountByStatus", ctx).Return(map[model.ShipmentStatus]int{model.ShipmentInTransit: 1}, nil)
	f.wallets.On("TotalBalance", ctx).Return(model.Money(2500000), nil)

	st, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Users[model.RoleTrader])
	assert.Equal(t, 3, st.Quotes[model.QuoteOpen])
	assert.Equal(t, model.Money(2500000), st.WalletBalance)
	assert.Equal(t, "INR", st.Currency)
}

func TestAdminService_StatsError(t *testing.T) {
	ctx := context.Background()
	f := newAdminFixture(nil)
	f.users.On("CountByRole", ctx).Return(nil, errors.New("db fail"))

	_, err := f.svc.Stats(ctx)
	assert.ErrorContains(t, err, "count users: db fail")
}

func TestAdminService_ExpireNow(t *testing.T) {
	f := newAdminFixture(stubSweep{n: 3})
	n, err := f.svc.ExpireNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
