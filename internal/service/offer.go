package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/matching"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/notify"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/pricing"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/webhook"
)

// OfferInput is a partner's bid.
type OfferInput struct {
	Price       model.Money
	TransitDays int
	ValidUntil  time.Time
	Remarks     string
}

// Booking is the outcome of selecting an offer.
type Booking struct {
	Quote    model.Quote       `json:"quote"`
	Offer    model.Offer       `json:"offer"`
	Shipment model.Shipment    `json:"shipment"`
	LeadCost pricing.Breakdown `json:"lead_cost"`
}

// OfferService handles bidding and selection.
type OfferService interface {
	Submit(ctx context.Context, partnerID, quoteID string, in OfferInput) (*model.Offer, error)
	ListForQuote(ctx context.Context, p auth.Principal, quoteID string) ([]model.Offer, error)
	ListMine(ctx context.Context, partnerID string, limit, offset int) (*ListResult[model.Offer], error)
	Withdraw(ctx context.Context, partnerID, offerID string) error
	// Select books the offer for the quote owner: it is all-or-nothing and debits the
	// winning partner's lead wallet.
	Select(ctx context.Context, traderID, offerID string) (*Booking, error)
}

type offerService struct {
	quotes   repository.QuoteRepository
	offers   repository.OfferRepository
	bookings repository.BookingRepository
	partners repository.PartnerRepository
	announce announcer
	calc     *pricing.Calculator
	now      func() time.Time
}

// NewOfferService constructs a new OfferService.
func NewOfferService(repos Repositories, notifier notify.Publisher, hooks webhook.Publisher, calc *pricing.Calculator) OfferService {
	return &offerService{
		quotes:   repos.Quotes,
		offers:   repos.Offers,
		bookings: repos.Bookings,
		partners: repos.Partners,
		announce: announcer{users: repos.Users, partners: repos.Partners, notifier: notifier, hooks: hooks},
		calc:     calc,
		now:      utcNow,
	}
}

func (s *offerService) Submit(ctx context.Context, partnerID, quoteID string, in OfferInput) (*model.Offer, error) {
	if partnerID == "" || quoteID == "" {
		return nil, ErrIDRequired
	}
	now := s.now()
	switch {
	case in.Price <= 0:
		return nil, invalid("price must be greater than zero")
	case in.TransitDays <= 0:
		return nil, invalid("transit days must be greater than zero")
	case !in.ValidUntil.After(now):
		return nil, invalid("valid until must be in the future")
	}

	profile, err := s.partners.Get(ctx, partnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invalid("partner profile is not set up")
		}
		return nil, err
	}
	if !profile.Verified {
		return nil, ErrNotVerified
	}

	q, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return nil, notFound(err)
	}
	if !q.Status.AcceptsOffers() || q.Expired(now) {
		return nil, ErrQuoteClosed
	}
	if !matching.Eligible(q, profile) {
		return nil, ErrNotMatched
	}

	lead := s.calc.LeadCost(pricing.InputFor(q, profile.SubscriptionTier, now))
	o, err := s.offers.Create(ctx, &model.Offer{
		ID:          uuid.NewString(),
		QuoteID:     q.ID,
		PartnerID:   partnerID,
		Price:       in.Price,
		Currency:    model.Currency,
		TransitDays: in.TransitDays,
		ValidUntil:  in.ValidUntil.UTC(),
		Remarks:     strings.TrimSpace(in.Remarks),
		Status:      model.OfferPending,
		LeadCost:    lead.Total,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("offer on %s: %w", q.Reference, ErrConflict)
		}
		return nil, fmt.Errorf("create offer: %w", err)
	}

	if q.Status == model.QuoteOpen {
		if err := s.quotes.MarkOffersReceived(ctx, q.ID, now); err != nil {
			logger.FromContext(ctx).Error("mark offers received failed",
				"component", "service", "quote_id", q.ID, "error", err)
		}
	}
	s.announce.user(ctx, q.TraderID, model.NotifyOfferReceived, "New offer received",
		fmt.Sprintf("%s: offer of INR %s, %d days transit.", q.Reference, o.Price.Rupees(), o.TransitDays))
	return o, nil
}

func (s *offerService) ListForQuote(ctx context.Context, p auth.Principal, quoteID string) ([]model.Offer, error) {
	if quoteID == "" {
		return nil, ErrIDRequired
	}
	q, err := s.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return nil, notFound(err)
	}
	if !canSeeAll(p) && q.TraderID != p.UserID {
		return nil, ErrForbidden
	}
	offers, err := s.offers.ListByQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []model.Offer{}
	}
	return offers, nil
}

func (s *offerService) ListMine(ctx context.Context, partnerID string, limit, offset int) (*ListResult[model.Offer], error) {
	if partnerID == "" {
		return nil, ErrIDRequired
	}
	res, err := s.offers.ListByPartner(ctx, partnerID, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return listResult(res), nil
}

func (s *offerService) Withdraw(ctx context.Context, partnerID, offerID string) error {
	if offerID == "" {
		return ErrIDRequired
	}
	o, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return notFound(err)
	}
	if o.PartnerID != partnerID {
		return ErrForbidden
	}
	if o.Status != model.OfferPending {
		return fmt.Errorf("withdraw offer in status %s: %w", o.Status, ErrInvalidState)
	}
	if err := s.offers.Withdraw(ctx, offerID, partnerID, s.now()); err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return ErrInvalidState
		}
		return err
	}
	return nil
}

func (s *offerService) Select(ctx context.Context, traderID, offerID string) (*Booking, error) {
	if offerID == "" {
		return nil, ErrIDRequired
	}
	o, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, notFound(err)
	}
	q, err := s.quotes.FindByID(ctx, o.QuoteID)
	if err != nil {
		return nil, notFound(err)
	}
	if q.TraderID != traderID {
		return nil, ErrForbidden
	}
	now := s.now()
	if !q.Status.AcceptsOffers() || q.Expired(now) {
		return nil, ErrQuoteClosed
	}
	if o.Status != model.OfferPending {
		return nil, fmt.Errorf("select offer in status %s: %w", o.Status, ErrInvalidState)
	}

	tier, err := partnerTier(ctx, s.partners, o.PartnerID)
	if err != nil {
		return nil, err
	}
	lead := s.calc.LeadCost(pricing.InputFor(q, tier, now))

	res, err := s.bookings.BookOffer(ctx, repository.BookingParams{
		QuoteID:        q.ID,
		OfferID:        o.ID,
		TraderID:       traderID,
		LeadCost:       lead.Total,
		ShipmentID:     uuid.NewString(),
		TrackingNumber: "BCZ-" + shortCode(8),
		Now:            now,
	})
	switch {
	case errors.Is(err, repository.ErrInsufficientBalance):
		return nil, ErrInsufficientBalance
	case errors.Is(err, repository.ErrStateChanged):
		return nil, ErrInvalidState
	case err != nil:
		return nil, fmt.Errorf("book offer: %w", notFound(err))
	}

	logger.FromContext(ctx).Info("offer selected",
		"component", "service", "quote_id", q.ID, "offer_id", o.ID,
		"shipment_id", res.Shipment.ID, "lead_cost", int64(lead.Total))

	s.announceBooking(ctx, res)
	return &Booking{Quote: res.Quote, Offer: res.Accepted, Shipment: res.Shipment, LeadCost: lead}, nil
}

func (s *offerService) announceBooking(ctx context.Context, res *repository.BookingResult) {
	ref := res.Quote.Reference
	s.announce.user(ctx, res.Accepted.PartnerID, model.NotifyOfferAccepted, "Offer accepted",
		fmt.Sprintf("Your offer on %s was accepted. Tracking number %s; lead cost INR %s debited.",
			ref, res.Shipment.TrackingNumber, res.Accepted.LeadCost.Rupees()))
	s.announce.webhook(ctx, res.Accepted.PartnerID, webhook.EventOfferAccepted, OfferDecisionEvent{
		OfferID:        res.Accepted.ID,
		QuoteID:        res.Quote.ID,
		QuoteReference: ref,
		Status:         res.Accepted.Status,
		Price:          res.Accepted.Price,
		LeadCost:       res.Accepted.LeadCost,
		ShipmentID:     res.Shipment.ID,
		TrackingNumber: res.Shipment.TrackingNumber,
	})

	for _, o := range res.RejectedOffers {
		s.announce.user(ctx, o.PartnerID, model.NotifyOfferRejected, "Offer not selected",
			fmt.Sprintf("The trader selected another offer on %s.", ref))
		s.announce.webhook(ctx, o.PartnerID, webhook.EventOfferRejected, OfferDecisionEvent{
			OfferID:        o.ID,
			QuoteID:        res.Quote.ID,
			QuoteReference: ref,
			Status:         o.Status,
			Price:          o.Price,
		})
	}
}
