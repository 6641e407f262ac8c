package repository

import (
	"context"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// ShipmentFilter narrows shipment listings to one participant. Empty means all.
type ShipmentFilter struct {
	TraderID  string
	PartnerID string
}

// ShipmentRepository persists bookings and their tracking history.
type ShipmentRepository interface {
	// FindByID returns the shipment with its events, oldest first.
	FindByID(ctx context.Context, id string) (*model.Shipment, error)
	FindByTracking(ctx context.Context, tracking string) (*model.Shipment, error)
	List(ctx context.Context, f ShipmentFilter, pq PageQuery) (*PageResult[model.Shipment], error)
	// AddEvent moves the shipment from `from` to ev.Status and records the event.
	// Returns ErrStateChanged if the shipment is no longer in `from`.
	AddEvent(ctx context.Context, from model.ShipmentStatus, ev *model.ShipmentEvent) error
	CountByStatus(ctx context.Context) (map[model.ShipmentStatus]int, error)
}
