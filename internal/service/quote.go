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
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/quotetimer"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/webhook"
)

// QuoteInput is a trader's freight request.
type QuoteInput struct {
	CargoName             string
	CASNumber             string
	UNNumber              string
	HazardClass           int
	Quantity              float64
	Unit                  model.QuantityUnit
	Packaging             string
	PickupCity            string
	PickupRegion          string
	DeliveryCity          string
	DeliveryRegion        string
	PickupDate            time.Time
	TemperatureControlled bool
	SpecialInstructions   string
}

// QuoteView is a quote with its live bidding countdown.
type QuoteView struct {
	model.Quote
	Countdown quotetimer.Countdown `json:"countdown"`
}

// QuoteService handles the freight request lifecycle.
type QuoteService interface {
	Create(ctx context.Context, traderID string, in QuoteInput) (*model.Quote, error)
	// List returns the caller's quotes (trader), the open quotes it can carry (partner), or all (admin).
	List(ctx context.Context, p auth.Principal, status model.QuoteStatus, limit, offset int) (*ListResult[model.Quote], error)
	Get(ctx context.Context, p auth.Principal, id string) (*QuoteView, error)
	Cancel(ctx context.Context, p auth.Principal, id string) (*model.Quote, error)
	// Matches lists the partners able to carry the quote, best rated first.
	Matches(ctx context.Context, p auth.Principal, id string) ([]model.PartnerProfile, error)
	// LeadCostPreview prices the lead for the calling partner as of now.
	LeadCostPreview(ctx context.Context, p auth.Principal, id string) (*pricing.Breakdown, error)
	// ExpireDue closes quotes whose window has ended and tells their traders.
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

type quoteService struct {
	quotes   repository.QuoteRepository
	offers   repository.OfferRepository
	partners repository.PartnerRepository
	announce announcer
	calc     *pricing.Calculator
	window   time.Duration
	now      func() time.Time
}

var _ quotetimer.Expirer = (*quoteService)(nil)

// NewQuoteService constructs a new QuoteService. window is how long quotes stay open for bids.
func NewQuoteService(repos Repositories, notifier notify.Publisher, hooks webhook.Publisher, calc *pricing.Calculator, window time.Duration) QuoteService {
	return &quoteService{
		quotes:   repos.Quotes,
		offers:   repos.Offers,
		partners: repos.Partners,
		announce: announcer{users: repos.Users, partners: repos.Partners, notifier: notifier, hooks: hooks},
		calc:     calc,
		window:   window,
		now:      utcNow,
	}
}

func (s *quoteService) Create(ctx context.Context, traderID string, in QuoteInput) (*model.Quote, error) {
	if traderID == "" {
		return nil, ErrIDRequired
	}
	now := s.now()
	if err := validateQuote(&in, now); err != nil {
		return nil, err
	}

	q, err := s.quotes.Create(ctx, &model.Quote{
		ID:                    uuid.NewString(),
		Reference:             "QT-" + now.Format("20060102") + "-" + shortCode(6),
		TraderID:              traderID,
		CargoName:             strings.TrimSpace(in.CargoName),
		CASNumber:             strings.TrimSpace(in.CASNumber),
		UNNumber:              strings.TrimSpace(in.UNNumber),
		HazardClass:           in.HazardClass,
		Quantity:              in.Quantity,
		Unit:                  in.Unit,
		Packaging:             strings.TrimSpace(in.Packaging),
		PickupCity:            strings.TrimSpace(in.PickupCity),
		PickupRegion:          strings.TrimSpace(in.PickupRegion),
		DeliveryCity:          strings.TrimSpace(in.DeliveryCity),
		DeliveryRegion:        strings.TrimSpace(in.DeliveryRegion),
		PickupDate:            in.PickupDate.UTC(),
		TemperatureControlled: in.TemperatureControlled,
		SpecialInstructions:   strings.TrimSpace(in.SpecialInstructions),
		Status:                model.QuoteOpen,
		ExpiresAt:             quotetimer.Deadline(now, s.window),
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	s.announceMatches(ctx, q)
	return q, nil
}

func validateQuote(in *QuoteInput, now time.Time) error {
	switch {
	case strings.TrimSpace(in.CargoName) == "":
		return invalid("cargo name is required")
	case in.HazardClass < 0 || in.HazardClass > 9:
		return invalid("hazard class must be between 0 and 9")
	case in.Quantity <= 0:
		return invalid("quantity must be greater than zero")
	case strings.TrimSpace(in.PickupCity) == "" || strings.TrimSpace(in.DeliveryCity) == "":
		return invalid("pickup and delivery cities are required")
	case strings.TrimSpace(in.PickupRegion) == "":
		return invalid("pickup region is required")
	case in.PickupDate.IsZero():
		return invalid("pickup date is required")
	}
	if in.Unit == "" {
		in.Unit = model.UnitMetricTons
	}
	switch in.Unit {
	case model.UnitMetricTons, model.UnitKilograms, model.UnitLitres:
	default:
		return invalid("unit must be MT, KG or L")
	}
	// Pickup dates are calendar days; today is still allowed.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.PickupDate.UTC().Before(today) {
		return invalid("pickup date is in the past")
	}
	return nil
}

// announceMatches tells every matched partner about a new quote.
func (s *quoteService) announceMatches(ctx context.Context, q *model.Quote) {
	partners, err := s.partners.ListActive(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("list partners for matching failed",
			"component", "service", "quote_id", q.ID, "error", err)
		return
	}
	matched := matching.Match(q, partners)
	logger.FromContext(ctx).Info("quote matched",
		"component", "service", "quote_id", q.ID, "reference", q.Reference, "partners", len(matched))

	event := quoteMatchedEvent(q)
	msg := fmt.Sprintf("%s: %s from %s to %s, bidding closes %s",
		q.Reference, q.CargoName, q.PickupCity, q.DeliveryCity, q.ExpiresAt.Format(time.RFC1123))
	for i := range matched {
		p := &matched[i]
		s.announce.user(ctx, p.UserID, model.NotifyQuoteMatched, "New matching quote", msg)
		s.announce.webhookTo(p, webhook.EventQuoteMatched, event)
	}
}

func (s *quoteService) List(ctx context.Context, p auth.Principal, status model.QuoteStatus, limit, offset int) (*ListResult[model.Quote], error) {
	pq := pageQuery(limit, offset)
	switch p.Role {
	case model.RoleAdmin:
		res, err := s.quotes.List(ctx, repository.QuoteFilter{Status: status}, pq)
		if err != nil {
			return nil, err
		}
		return listResult(res), nil
	case model.RoleTrader:
		res, err := s.quotes.List(ctx, repository.QuoteFilter{TraderID: p.UserID, Status: status}, pq)
		if err != nil {
			return nil, err
		}
		return listResult(res), nil
	case model.RolePartner:
		return s.listForPartner(ctx, p.UserID, status, pq)
	}
	return nil, ErrForbidden
}

// listForPartner filters open, unexpired quotes through the matcher and pages the result in memory.
func (s *quoteService) listForPartner(ctx context.Context, partnerID string, status model.QuoteStatus, pq repository.PageQuery) (*ListResult[model.Quote], error) {
	empty := &ListResult[model.Quote]{Items: []model.Quote{}}
	profile, err := s.partners.Get(ctx, partnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return empty, nil
		}
		return nil, err
	}
	open, err := s.quotes.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	visible := make([]model.Quote, 0, len(open))
	for i := range open {
		q := &open[i]
		if q.Expired(now) || (status != "" && q.Status != status) {
			continue
		}
		if matching.Eligible(q, profile) {
			visible = append(visible, *q)
		}
	}

	total := len(visible)
	if pq.Offset >= total {
		return &ListResult[model.Quote]{Items: []model.Quote{}, Total: total}, nil
	}
	end := min(pq.Offset+pq.Limit, total)
	return &ListResult[model.Quote]{Items: visible[pq.Offset:end], Total: total}, nil
}

func (s *quoteService) Get(ctx context.Context, p auth.Principal, id string) (*QuoteView, error) {
	q, err := s.visibleQuote(ctx, p, id)
	if err != nil {
		return nil, err
	}
	return &QuoteView{Quote: *q, Countdown: quotetimer.Remaining(q.ExpiresAt, s.now())}, nil
}

// visibleQuote loads a quote the caller may see: the owner, an admin, a partner that can
// still bid on it, or a partner that has already bid.
func (s *quoteService) visibleQuote(ctx context.Context, p auth.Principal, id string) (*model.Quote, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	switch {
	case canSeeAll(p), q.TraderID == p.UserID:
		return q, nil
	case p.Role != model.RolePartner:
		return nil, ErrForbidden
	}

	if q.Status.AcceptsOffers() && !q.Expired(s.now()) {
		profile, err := s.partners.Get(ctx, p.UserID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if profile != nil && matching.Eligible(q, profile) {
			return q, nil
		}
	}
	if _, err := s.offers.FindLive(ctx, q.ID, p.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return q, nil
}

func (s *quoteService) Cancel(ctx context.Context, p auth.Principal, id string) (*model.Quote, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if q.TraderID != p.UserID {
		return nil, ErrForbidden
	}
	if !q.Status.AcceptsOffers() {
		return nil, fmt.Errorf("cancel quote in status %s: %w", q.Status, ErrInvalidState)
	}

	res, err := s.quotes.Cancel(ctx, id, p.UserID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("cancel quote: %w", err)
	}

	for _, o := range res.RejectedOffers {
		s.announce.user(ctx, o.PartnerID, model.NotifyQuoteCancelled, "Quote cancelled",
			fmt.Sprintf("%s was cancelled by the trader; your offer was closed.", res.Quote.Reference))
		s.announce.webhook(ctx, o.PartnerID, webhook.EventOfferRejected, OfferDecisionEvent{
			OfferID:        o.ID,
			QuoteID:        o.QuoteID,
			QuoteReference: res.Quote.Reference,
			Status:         o.Status,
			Price:          o.Price,
		})
	}
	return &res.Quote, nil
}

func (s *quoteService) Matches(ctx context.Context, p auth.Principal, id string) ([]model.PartnerProfile, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !canSeeAll(p) && q.TraderID != p.UserID {
		return nil, ErrForbidden
	}
	partners, err := s.partners.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return matching.Match(q, partners), nil
}

func (s *quoteService) LeadCostPreview(ctx context.Context, p auth.Principal, id string) (*pricing.Breakdown, error) {
	if p.Role != model.RolePartner {
		return nil, ErrForbidden
	}
	q, err := s.visibleQuote(ctx, p, id)
	if err != nil {
		return nil, err
	}
	tier, err := partnerTier(ctx, s.partners, p.UserID)
	if err != nil {
		return nil, err
	}
	b := s.calc.LeadCost(pricing.InputFor(q, tier, s.now()))
	return &b, nil
}

func (s *quoteService) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.quotes.ExpireDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("expire quotes: %w", err)
	}
	for _, q := range expired {
		s.announce.user(ctx, q.TraderID, model.NotifyQuoteExpired, "Quote expired",
			fmt.Sprintf("Bidding on %s (%s) has closed.", q.Reference, q.CargoName))
	}
	return len(expired), nil
}

// partnerTier returns the partner's subscription tier, FREE when no profile exists.
func partnerTier(ctx context.Context, partners repository.PartnerRepository, partnerID string) (model.SubscriptionTier, error) {
	profile, err := partners.Get(ctx, partnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TierFree, nil
		}
		return "", err
	}
	if profile.SubscriptionTier == "" {
		return model.TierFree, nil
	}
	return profile.SubscriptionTier, nil
}
