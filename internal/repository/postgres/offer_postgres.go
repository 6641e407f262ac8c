package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const offerColumns = `id, quote_id, partner_id, price, currency, transit_days, valid_until, remarks,
	status, lead_cost, created_at, updated_at`

// OfferPostgres is a PostgreSQL implementation of repository.OfferRepository.
type OfferPostgres struct {
	db *sql.DB
}

// NewOfferPostgres creates a new OfferPostgres repository.
func NewOfferPostgres(db *sql.DB) *OfferPostgres {
	return &OfferPostgres{db: db}
}

var _ repository.OfferRepository = (*OfferPostgres)(nil)

func scanOffer(s scanner) (*model.Offer, error) {
	var o model.Offer
	if err := s.Scan(
		&o.ID,
		&o.QuoteID,
		&o.PartnerID,
		&o.Price,
		&o.Currency,
		&o.TransitDays,
		&o.ValidUntil,
		&o.Remarks,
		&o.Status,
		&o.LeadCost,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts an offer and returns the stored row.
func (r *OfferPostgres) Create(ctx context.Context, o *model.Offer) (*model.Offer, error) {
	q := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + offerColumns
	out, err := scanOffer(r.db.QueryRowContext(ctx, q,
		o.ID,
		o.QuoteID,
		o.PartnerID,
		o.Price,
		o.Currency,
		o.TransitDays,
		o.ValidUntil,
		o.Remarks,
		o.Status,
		o.LeadCost,
		o.CreatedAt,
		o.UpdatedAt,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

// FindByID fetches an offer by id.
func (r *OfferPostgres) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	return scanOffer(r.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
}

// FindLive returns the partner's non-withdrawn offer on the quote.
func (r *OfferPostgres) FindLive(ctx context.Context, quoteID, partnerID string) (*model.Offer, error) {
	q := `SELECT ` + offerColumns + ` FROM offers WHERE quote_id = $1 AND partner_id = $2 AND status <> 'WITHDRAWN'`
	return scanOffer(r.db.QueryRowContext(ctx, q, quoteID, partnerID))
}

// ListByQuote returns all offers on a quote, cheapest first.
func (r *OfferPostgres) ListByQuote(ctx context.Context, quoteID string) ([]model.Offer, error) {
	q := `SELECT ` + offerColumns + ` FROM offers WHERE quote_id = $1 ORDER BY price, created_at`
	rows, err := r.db.QueryContext(ctx, q, quoteID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanOffer)
}

// ListByPartner returns a partner's offers newest first.
func (r *OfferPostgres) ListByPartner(ctx context.Context, partnerID string, pq repository.PageQuery) (*repository.PageResult[model.Offer], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM offers WHERE partner_id = $1`, partnerID).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE partner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, q, partnerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanOffer)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Offer]{Items: items, Total: total}, nil
}

// Withdraw retracts a pending offer.
func (r *OfferPostgres) Withdraw(ctx context.Context, id, partnerID string, now time.Time) error {
	const q = `
		UPDATE offers SET status = 'WITHDRAWN', updated_at = $3
		WHERE id = $1 AND partner_id = $2 AND status = 'PENDING'
	`
	res, err := r.db.ExecContext(ctx, q, id, partnerID, now)
	if err != nil {
		return fmt.Errorf("withdraw offer: %w", err)
	}
	return mustAffect(res, repository.ErrStateChanged)
}

// CountByStatus returns the number of offers per status.
func (r *OfferPostgres) CountByStatus(ctx context.Context) (map[model.OfferStatus]int, error) {
	return countBy[model.OfferStatus](ctx, r.db, `SELECT status, COUNT(*) FROM offers GROUP BY status`)
}

// rejectPending rejects pending offers on a quote, except keepID when set.
func rejectPending(ctx context.Context, db queryer, quoteID, keepID string, now time.Time) ([]model.Offer, error) {
	q := `
		UPDATE offers SET status = 'REJECTED', updated_at = $2
		WHERE quote_id = $1 AND status = 'PENDING' AND id::text <> $3
		RETURNING ` + offerColumns
	rows, err := db.QueryContext(ctx, q, quoteID, now, keepID)
	if err != nil {
		return nil, fmt.Errorf("reject pending offers: %w", err)
	}
	return collect(rows, scanOffer)
}
