package repository

import (
	"context"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// QuoteFilter narrows quote listings. Zero values mean "any".
type QuoteFilter struct {
	TraderID string
	Status   model.QuoteStatus
	OpenOnly bool
}

// CancelResult is what a cancellation touched.
type CancelResult struct {
	Quote          model.Quote
	RejectedOffers []model.Offer
}

// QuoteRepository persists freight requests.
type QuoteRepository interface {
	Create(ctx context.Context, q *model.Quote) (*model.Quote, error)
	FindByID(ctx context.Context, id string) (*model.Quote, error)
	List(ctx context.Context, f QuoteFilter, pq PageQuery) (*PageResult[model.Quote], error)
	// ListOpen returns every quote still accepting offers, oldest deadline first.
	ListOpen(ctx context.Context) ([]model.Quote, error)
	// MarkOffersReceived moves an OPEN quote to OFFERS_RECEIVED; other states are left alone.
	MarkOffersReceived(ctx context.Context, id string, now time.Time) error
	// Cancel closes an open quote owned by traderID and rejects its pending offers.
	// Returns ErrStateChanged when the quote is not open or not owned by traderID.
	Cancel(ctx context.Context, id, traderID string, now time.Time) (*CancelResult, error)
	// ExpireDue expires open quotes whose deadline is at or before now, rejecting their
	// pending offers, and returns the expired quotes.
	ExpireDue(ctx context.Context, now time.Time) ([]model.Quote, error)
	CountByStatus(ctx context.Context) (map[model.QuoteStatus]int, error)
}
