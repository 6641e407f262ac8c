package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/database"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const shipmentColumns = `id, tracking_number, quote_id, offer_id, trader_id, partner_id, status, created_at, updated_at`

const eventColumns = `id, shipment_id, status, location, note, created_at`

// ShipmentPostgres is a PostgreSQL implementation of repository.ShipmentRepository.
type ShipmentPostgres struct {
	db *sql.DB
}

// NewShipmentPostgres creates a new ShipmentPostgres repository.
func NewShipmentPostgres(db *sql.DB) *ShipmentPostgres {
	return &ShipmentPostgres{db: db}
}

var _ repository.ShipmentRepository = (*ShipmentPostgres)(nil)

func scanShipment(s scanner) (*model.Shipment, error) {
	var sh model.Shipment
	if err := s.Scan(
		&sh.ID,
		&sh.TrackingNumber,
		&sh.QuoteID,
		&sh.OfferID,
		&sh.TraderID,
		&sh.PartnerID,
		&sh.Status,
		&sh.CreatedAt,
		&sh.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sh, nil
}

func scanEvent(s scanner) (*model.ShipmentEvent, error) {
	var ev model.ShipmentEvent
	if err := s.Scan(&ev.ID, &ev.ShipmentID, &ev.Status, &ev.Location, &ev.Note, &ev.CreatedAt); err != nil {
		return nil, err
	}
	return &ev, nil
}

// FindByID fetches a shipment together with its tracking history.
func (r *ShipmentPostgres) FindByID(ctx context.Context, id string) (*model.Shipment, error) {
	sh, err := scanShipment(r.db.QueryRowContext(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	return r.withEvents(ctx, sh)
}

// FindByTracking fetches a shipment by its public tracking number.
func (r *ShipmentPostgres) FindByTracking(ctx context.Context, tracking string) (*model.Shipment, error) {
	sh, err := scanShipment(r.db.QueryRowContext(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE tracking_number = $1`, tracking))
	if err != nil {
		return nil, err
	}
	return r.withEvents(ctx, sh)
}

func (r *ShipmentPostgres) withEvents(ctx context.Context, sh *model.Shipment) (*model.Shipment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM shipment_events WHERE shipment_id = $1 ORDER BY created_at, id`, sh.ID)
	if err != nil {
		return nil, err
	}
	events, err := collect(rows, scanEvent)
	if err != nil {
		return nil, err
	}
	sh.Events = events
	return sh, nil
}

// List returns shipments newest first without events.
func (r *ShipmentPostgres) List(ctx context.Context, f repository.ShipmentFilter, pq repository.PageQuery) (*repository.PageResult[model.Shipment], error) {
	const where = ` WHERE ($1::text = '' OR trader_id::text = $1) AND ($2::text = '' OR partner_id::text = $2)`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shipments`+where, f.TraderID, f.PartnerID).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + shipmentColumns + ` FROM shipments` + where + ` ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, q, f.TraderID, f.PartnerID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanShipment)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Shipment]{Items: items, Total: total}, nil
}

// AddEvent applies a status transition guarded on the current status and logs the event.
func (r *ShipmentPostgres) AddEvent(ctx context.Context, from model.ShipmentStatus, ev *model.ShipmentEvent) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE shipments SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
			ev.ShipmentID, from, ev.Status, ev.CreatedAt)
		if err != nil {
			return fmt.Errorf("update shipment status: %w", err)
		}
		if err := mustAffect(res, repository.ErrStateChanged); err != nil {
			return err
		}
		return insertEvent(ctx, tx, ev)
	})
}

// CountByStatus returns the number of shipments per status.
func (r *ShipmentPostgres) CountByStatus(ctx context.Context) (map[model.ShipmentStatus]int, error) {
	return countBy[model.ShipmentStatus](ctx, r.db, `SELECT status, COUNT(*) FROM shipments GROUP BY status`)
}

func insertEvent(ctx context.Context, db queryer, ev *model.ShipmentEvent) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO shipment_events (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.ShipmentID, ev.Status, ev.Location, ev.Note, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert shipment event: %w", err)
	}
	return nil
}
