package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	repoMocks "github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository/mocks"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/webhook"
)

type offerFixture struct {
	quotes   *repoMocks.MockQuoteRepository
	offers   *repoMocks.MockOfferRepository
	bookings *repoMocks.MockBookingRepository
	partners *repoMocks.MockPartnerRepository
	users    *repoMocks.MockUserRepository
	notifier *fakeNotifier
	hooks    *fakeHooks
	svc      *offerService
}

func newOfferFixture() *offerFixture {
	f := &offerFixture{
		quotes:   new(repoMocks.MockQuoteRepository),
		offers:   new(repoMocks.MockOfferRepository),
		bookings: new(repoMocks.MockBookingRepository),
		partners: new(repoMocks.MockPartnerRepository),
		users:    new(repoMocks.MockUserRepository),
		notifier: &fakeNotifier{},
		hooks:    &fakeHooks{},
	}
	repos := Repositories{Quotes: f.quotes, Offers: f.offers, Bookings: f.bookings, Partners: f.partners, Users: f.users}
	f.svc = NewOfferService(repos, f.notifier, f.hooks, testCalculator()).(*offerService)
	f.svc.now = fixedClock
	return f
}

func validOfferInput() OfferInput {
	return OfferInput{Price: 4500000, TransitDays: 3, ValidUntil: fixedNow.Add(48 * time.Hour), Remarks: "ADR tanker"}
}

func pendingOffer(id, partnerID string) *model.Offer {
	return &model.Offer{ID: id, QuoteID: "quote-1", PartnerID: partnerID, Price: 4500000, Status: model.OfferPending}
}

func TestOfferService_Submit(t *testing.T) {
	ctx := context.Background()
	f := newOfferFixture()

	f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
	f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
	f.offers.On("Create", ctx, mock.MatchedBy(func(o *model.Offer) bool {
		// 12 t band 1000 INR x hazard 3 (1.4), FREE tier
		return o.LeadCost == 140000 && o.Status == model.OfferPending && o.Currency == "INR" && o.PartnerID == "partner-1"
	})).Return(pendingOffer("offer-1", "partner-1"), nil)
	f.quotes.On("MarkOffersReceived", ctx, "quote-1", fixedNow).Return(nil)
	f.users.On("FindByID", ctx, "trader-1").Return(&model.User{ID: "trader-1"}, nil)

	o, err := f.svc.Submit(ctx, "partner-1", "quote-1", validOfferInput())
	require.NoError(t, err)
	assert.Equal(t, "offer-1", o.ID)
	assert.Equal(t, model.NotifyOfferReceived, f.notifier.kinds()["trader-1"])
	f.quotes.AssertExpectations(t)
	f.offers.AssertExpectations(t)
}

func TestOfferService_SubmitSecondOfferKeepsStatus(t *testing.T) {
	ctx := context.Background()
	f := newOfferFixture()
	q := openQuote()
	q.Status = model.QuoteOffersReceived

	f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
	f.quotes.On("FindByID", ctx, "quote-1").Return(q, nil)
	f.offers.On("Create", ctx, mock.Anything).Return(pendingOffer("offer-2", "partner-1"), nil)
	f.users.On("FindByID", ctx, "trader-1").Return(&model.User{ID: "trader-1"}, nil)

	_, err := f.svc.Submit(ctx, "partner-1", "quote-1", validOfferInput())
	require.NoError(t, err)
	f.quotes.AssertNotCalled(t, "MarkOffersReceived", mock.Anything, mock.Anything, mock.Anything)
}

func TestOfferService_SubmitRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      func() OfferInput
		setup   func(f *offerFixture)
		wantErr error
	}{
		{
			name:    "valid until in the past",
			in:      func() OfferInput { in := validOfferInput(); in.ValidUntil = fixedNow.Add(-time.Hour); return in },
			setup:   func(f *offerFixture) {},
			wantErr: ErrValidation,
		},
		{
			name:    "zero price",
			in:      func() OfferInput { in := validOfferInput(); in.Price = 0; return in },
			setup:   func(f *offerFixture) {},
			wantErr: ErrValidation,
		},
		{
			name: "no profile",
			in:   validOfferInput,
			setup: func(f *offerFixture) {
				f.partners.On("Get", ctx, "partner-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrValidation,
		},
		{
			name: "unverified partner",
			in:   validOfferInput,
			setup: func(f *offerFixture) {
				p := partnerProfile("partner-1")
				p.Verified = false
				f.partners.On("Get", ctx, "partner-1").Return(p, nil)
			},
			wantErr: ErrNotVerified,
		},
		{
			name: "quote expired before the sweep",
			in:   validOfferInput,
			setup: func(f *offerFixture) {
				q := openQuote()
				q.ExpiresAt = fixedNow
				f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(q, nil)
			},
			wantErr: ErrQuoteClosed,
		},
		{
			name: "quote booked",
			in:   validOfferInput,
			setup: func(f *offerFixture) {
				q := openQuote()
				q.Status = model.QuoteBooked
				f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(q, nil)
			},
			wantErr: ErrQuoteClosed,
		},
		{
			name: "partner cannot carry cargo",
			in:   validOfferInput,
			setup: func(f *offerFixture) {
				q := openQuote()
				q.Quantity = 40
				f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(q, nil)
			},
			wantErr: ErrNotMatched,
		},
		{
			name: "second live offer",
			in:   validOfferInput,
			setup: func(f *offerFixture) {
				f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
				f.offers.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOfferFixture()
			tt.setup(f)
			o, err := f.svc.Submit(ctx, "partner-1", "quote-1", tt.in())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, o)
		})
	}
}

func TestOfferService_Withdraw(t *testing.T) {
	ctx := context.Background()

	f := newOfferFixture()
	f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
	f.offers.On("Withdraw", ctx, "offer-1", "partner-1", fixedNow).Return(nil)
	assert.NoError(t, f.svc.Withdraw(ctx, "partner-1", "offer-1"))

	f = newOfferFixture()
	f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
	assert.ErrorIs(t, f.svc.Withdraw(ctx, "partner-2", "offer-1"), ErrForbidden)

	f = newOfferFixture()
	accepted := pendingOffer("offer-1", "partner-1")
	accepted.Status = model.OfferAccepted
	f.offers.On("FindByID", ctx, "offer-1").Return(accepted, nil)
	assert.ErrorIs(t, f.svc.Withdraw(ctx, "partner-1", "offer-1"), ErrInvalidState)
}

func TestOfferService_ListForQuote(t *testing.T) {
	ctx := context.Background()
	f := newOfferFixture()
	f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
	f.offers.On("ListByQuote", ctx, "quote-1").Return(nil, nil)

	got, err := f.svc.ListForQuote(ctx, trader, "quote-1")
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = f.svc.ListForQuote(ctx, partner, "quote-1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOfferService_Select(t *testing.T) {
	ctx := context.Background()
	f := newOfferFixture()

	f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
	f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
	f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
	f.partners.On("Get", ctx, "partner-2").Return(partnerProfile("partner-2"), nil)

	booked := *openQuote()
	booked.Status = model.QuoteBooked
	accepted := *pendingOffer("offer-1", "partner-1")
	accepted.Status, accepted.LeadCost = model.OfferAccepted, 140000
	rejected := *pendingOffer("offer-2", "partner-2")
	rejected.Status = model.OfferRejected

	f.bookings.On("BookOffer", ctx, mock.MatchedBy(func(p repository.BookingParams) bool {
		return p.QuoteID == "quote-1" && p.OfferID == "offer-1" && p.TraderID == "trader-1" &&
			p.LeadCost == 140000 && strings.HasPrefix(p.TrackingNumber, "BCZ-") && p.Now.Equal(fixedNow)
	})).Return(&repository.BookingResult{
		Quote:          booked,
		Accepted:       accepted,
		RejectedOffers: []model.Offer{rejected},
		Shipment:       model.Shipment{ID: "ship-1", TrackingNumber: "BCZ-ABCDEF12", Status: model.ShipmentBooked},
	}, nil)
	f.users.On("FindByID", ctx, "partner-1").Return(&model.User{ID: "partner-1"}, nil)
	f.users.On("FindByID", ctx, "partner-2").Return(&model.User{ID: "partner-2"}, nil)

	b, err := f.svc.Select(ctx, "trader-1", "offer-1")
	require.NoError(t, err)
	assert.Equal(t, "ship-1", b.Shipment.ID)
	assert.Equal(t, model.Money(140000), b.LeadCost.Total)
	assert.Equal(t, map[string]model.NotificationKind{
		"partner-1": model.NotifyOfferAccepted,
		"partner-2": model.NotifyOfferRejected,
	}, f.notifier.kinds())
	assert.Equal(t, []webhook.Event{webhook.EventOfferAccepted, webhook.EventOfferRejected}, f.hooks.events())
	f.bookings.AssertExpectations(t)
}

func TestOfferService_SelectFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		trader  string
		setup   func(f *offerFixture)
		wantErr error
	}{
		{
			name:   "not the quote owner",
			trader: "trader-9",
			setup: func(f *offerFixture) {
				f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:   "expired quote",
			trader: "trader-1",
			setup: func(f *offerFixture) {
				q := openQuote()
				q.ExpiresAt = fixedNow.Add(-time.Second)
				f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(q, nil)
			},
			wantErr: ErrQuoteClosed,
		},
		{
			name:   "withdrawn offer",
			trader: "trader-1",
			setup: func(f *offerFixture) {
				o := pendingOffer("offer-1", "partner-1")
				o.Status = model.OfferWithdrawn
				f.offers.On("FindByID", ctx, "offer-1").Return(o, nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
			},
			wantErr: ErrInvalidState,
		},
		{
			name:   "insufficient wallet balance",
			trader: "trader-1",
			setup: func(f *offerFixture) {
				f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
				f.partners.On("Get", ctx, "partner-1").Return(nil, sql.ErrNoRows)
				f.bookings.On("BookOffer", ctx, mock.Anything).Return(nil, repository.ErrInsufficientBalance)
			},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:   "concurrent selection",
			trader: "trader-1",
			setup: func(f *offerFixture) {
				f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
				f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
				f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
				f.bookings.On("BookOffer", ctx, mock.Anything).Return(nil, repository.ErrStateChanged)
			},
			wantErr: ErrInvalidState,
		},
		{
			name:   "offer missing",
			trader: "trader-1",
			setup: func(f *offerFixture) {
				f.offers.On("FindByID", ctx, "offer-1").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOfferFixture()
			tt.setup(f)
			b, err := f.svc.Select(ctx, tt.trader, "offer-1")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, b)
			assert.Empty(t, f.notifier.sent)
			assert.Empty(t, f.hooks.sent)
		})
	}
}

func TestOfferService_SelectRepositoryError(t *testing.T) {
	ctx := context.Background()
	f := newOfferFixture()
	f.offers.On("FindByID", ctx, "offer-1").Return(pendingOffer("offer-1", "partner-1"), nil)
	f.quotes.On("FindByID", ctx, "quote-1").Return(openQuote(), nil)
	f.partners.On("Get", ctx, "partner-1").Return(partnerProfile("partner-1"), nil)
	f.bookings.On("BookOffer", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := f.svc.Select(ctx, "trader-1", "offer-1")
	assert.ErrorContains(t, err, "book offer: connection reset")
}
