package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const quoteColumns = `id, reference, trader_id, cargo_name, cas_number, un_number, hazard_class,
	quantity, unit, packaging, pickup_city, pickup_region, delivery_city, delivery_region,
	pickup_date, temperature_controlled, special_instructions, status, selected_offer_id,
	expires_at, created_at, updated_at`

// openStatuses is the SQL list of quote states that still accept offers.
const openStatuses = `('OPEN', 'OFFERS_RECEIVED')`

// QuotePostgres is a PostgreSQL implementation of repository.QuoteRepository.
type QuotePostgres struct {
	db *sql.DB
}

// NewQuotePostgres creates a new QuotePostgres repository.
func NewQuotePostgres(db *sql.DB) *QuotePostgres {
	return &QuotePostgres{db: db}
}

var _ repository.QuoteRepository = (*QuotePostgres)(nil)

func scanQuote(s scanner) (*model.Quote, error) {
	var q model.Quote
	if err := s.Scan(
		&q.ID,
		&q.Reference,
		&q.TraderID,
		&q.CargoName,
		&q.CASNumber,
		&q.UNNumber,
		&q.HazardClass,
		&q.Quantity,
		&q.Unit,
		&q.Packaging,
		&q.PickupCity,
		&q.PickupRegion,
		&q.DeliveryCity,
		&q.DeliveryRegion,
		&q.PickupDate,
		&q.TemperatureControlled,
		&q.SpecialInstructions,
		&q.Status,
		&q.SelectedOfferID,
		&q.ExpiresAt,
		&q.CreatedAt,
		&q.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a quote and returns the stored row.
func (r *QuotePostgres) Create(ctx context.Context, q *model.Quote) (*model.Quote, error) {
	stmt := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING ` + quoteColumns
	out, err := scanQuote(r.db.QueryRowContext(ctx, stmt,
		q.ID,
		q.Reference,
		q.TraderID,
		q.CargoName,
		q.CASNumber,
		q.UNNumber,
		q.HazardClass,
		q.Quantity,
		q.Unit,
		q.Packaging,
		q.PickupCity,
		q.PickupRegion,
		q.DeliveryCity,
		q.DeliveryRegion,
		q.PickupDate,
		q.TemperatureControlled,
		q.SpecialInstructions,
		q.Status,
		q.SelectedOfferID,
		q.ExpiresAt,
		q.CreatedAt,
		q.UpdatedAt,
	))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

// FindByID fetches a quote by id.
func (r *QuotePostgres) FindByID(ctx context.Context, id string) (*model.Quote, error) {
	return scanQuote(r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
}

func quoteWhere(f repository.QuoteFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.TraderID != "" {
		args = append(args, f.TraderID)
		conds = append(conds, fmt.Sprintf("trader_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.OpenOnly {
		conds = append(conds, "status IN "+openStatuses)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns quotes newest first.
func (r *QuotePostgres) List(ctx context.Context, f repository.QuoteFilter, pq repository.PageQuery) (*repository.PageResult[model.Quote], error) {
	where, args := quoteWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotes`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	n := len(args)
	q := `SELECT ` + quoteColumns + ` FROM quotes` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanQuote)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Quote]{Items: items, Total: total}, nil
}

// ListOpen returns quotes that still accept offers, closest deadline first.
func (r *QuotePostgres) ListOpen(ctx context.Context) ([]model.Quote, error) {
	q := `SELECT ` + quoteColumns + ` FROM quotes WHERE status IN ` + openStatuses + ` ORDER BY expires_at, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanQuote)
}

// MarkOffersReceived records that the first offer arrived.
func (r *QuotePostgres) MarkOffersReceived(ctx context.Context, id string, now time.Time) error {
	const q = `UPDATE quotes SET status = 'OFFERS_RECEIVED', updated_at = $2 WHERE id = $1 AND status = 'OPEN'`
	_, err := r.db.ExecContext(ctx, q, id, now)
	return err
}

// Cancel closes the quote and rejects its pending offers in one transaction.
func (r *QuotePostgres) Cancel(ctx context.Context, id, traderID string, now time.Time) (*repository.CancelResult, error) {
	var res repository.CancelResult
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		q := `
			UPDATE quotes SET status = 'CANCELLED', updated_at = $3
			WHERE id = $1 AND trader_id = $2 AND status IN ` + openStatuses + `
			RETURNING ` + quoteColumns
		quote, err := scanQuote(tx.QueryRowContext(ctx, q, id, traderID, now))
		if err != nil {
			if isNoRows(err) {
				return repository.ErrStateChanged
			}
			return err
		}
		res.Quote = *quote

		rejected, err := rejectPending(ctx, tx, id, "", now)
		if err != nil {
			return err
		}
		res.RejectedOffers = rejected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ExpireDue closes every open quote past its deadline and rejects their pending offers.
func (r *QuotePostgres) ExpireDue(ctx context.Context, now time.Time) ([]model.Quote, error) {
	q := `
		WITH expired AS (
			UPDATE quotes SET status = 'EXPIRED', updated_at = $1
			WHERE status IN ` + openStatuses + ` AND expires_at <= $1
			RETURNING ` + quoteColumns + `
		), rejected AS (
			UPDATE offers SET status = 'REJECTED', updated_at = $1
			WHERE status = 'PENDING' AND quote_id IN (SELECT id FROM expired)
		)
		SELECT ` + quoteColumns + ` FROM expired ORDER BY expires_at, id
	`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, fmt.Errorf("expire quotes: %w", err)
	}
	return collect(rows, scanQuote)
}

// CountByStatus returns the number of quotes per status.
func (r *QuotePostgres) CountByStatus(ctx context.Context) (map[model.QuoteStatus]int, error) {
	return countBy[model.QuoteStatus](ctx, r.db, `SELECT status, COUNT(*) FROM quotes GROUP BY status`)
}
