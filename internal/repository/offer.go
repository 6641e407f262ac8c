package repository

import (
	"context"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// OfferRepository persists partner bids.
type OfferRepository interface {
	// Create inserts an offer. Returns ErrDuplicate when the partner already has a
	// live (non-withdrawn) offer on the quote.
	Create(ctx context.Context, o *model.Offer) (*model.Offer, error)
	FindByID(ctx context.Context, id string) (*model.Offer, error)
	// FindLive returns the partner's non-withdrawn offer on a quote, or sql.ErrNoRows.
	FindLive(ctx context.Context, quoteID, partnerID string) (*model.Offer, error)
	ListByQuote(ctx context.Context, quoteID string) ([]model.Offer, error)
	ListByPartner(ctx context.Context, partnerID string, pq PageQuery) (*PageResult[model.Offer], error)
	// Withdraw marks a PENDING offer of partnerID as WITHDRAWN, else ErrStateChanged.
	Withdraw(ctx context.Context, id, partnerID string, now time.Time) error
	CountByStatus(ctx context.Context) (map[model.OfferStatus]int, error)
}

// BookingParams carries everything needed to turn an offer into a shipment.
type BookingParams struct {
	QuoteID        string
	OfferID        string
	TraderID       string
	LeadCost       model.Money
	ShipmentID     string
	TrackingNumber string
	Now            time.Time
}

// BookingResult is what a successful booking changed.
type BookingResult struct {
	Quote          model.Quote
	Accepted       model.Offer
	RejectedOffers []model.Offer
	Shipment       model.Shipment
	Debit          model.WalletTransaction
}

// BookingRepository performs offer selection as one database transaction.
type BookingRepository interface {
	// BookOffer accepts the offer, rejects its competitors, books the quote, debits the
	// winning partner's wallet by LeadCost and creates the shipment, or changes nothing.
	// Errors: sql.ErrNoRows (quote/offer missing), ErrStateChanged (quote not open, expired,
	// not owned by TraderID, or offer not pending), ErrInsufficientBalance.
	BookOffer(ctx context.Context, p BookingParams) (*BookingResult, error)
}
