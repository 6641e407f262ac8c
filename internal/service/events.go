package service

import (
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
)

// QuoteMatchedEvent is the quote.matched webhook payload.
type QuoteMatchedEvent struct {
	QuoteID               string             `json:"quote_id"`
	Reference             string             `json:"reference"`
	CargoName             string             `json:"cargo_name"`
	HazardClass           int                `json:"hazard_class"`
	Quantity              float64            `json:"quantity"`
	Unit                  model.QuantityUnit `json:"unit"`
	PickupCity            string             `json:"pickup_city"`
	DeliveryCity          string             `json:"delivery_city"`
	PickupDate            time.Time          `json:"pickup_date"`
	TemperatureControlled bool               `json:"temperature_controlled"`
	ExpiresAt             time.Time          `json:"expires_at"`
}

func quoteMatchedEvent(q *model.Quote) QuoteMatchedEvent {
	return QuoteMatchedEvent{
		QuoteID:               q.ID,
		Reference:             q.Reference,
		CargoName:             q.CargoName,
		HazardClass:           q.HazardClass,
		Quantity:              q.Quantity,
		Unit:                  q.Unit,
		PickupCity:            q.PickupCity,
		DeliveryCity:          q.DeliveryCity,
		PickupDate:            q.PickupDate,
		TemperatureControlled: q.TemperatureControlled,
		ExpiresAt:             q.ExpiresAt,
	}
}

// OfferDecisionEvent is the payload of offer.accepted and offer.rejected.
// ShipmentID and TrackingNumber are set only for accepted offers.
type OfferDecisionEvent struct {
	OfferID        string            `json:"offer_id"`
	QuoteID        string            `json:"quote_id"`
	QuoteReference string            `json:"quote_reference"`
	Status         model.OfferStatus `json:"status"`
	Price          model.Money       `json:"price"`
	LeadCost       model.Money       `json:"lead_cost,omitempty"`
	ShipmentID     string            `json:"shipment_id,omitempty"`
	TrackingNumber string            `json:"tracking_number,omitempty"`
}

// ShipmentUpdatedEvent is the shipment.updated webhook payload.
type ShipmentUpdatedEvent struct {
	ShipmentID     string               `json:"shipment_id"`
	TrackingNumber string               `json:"tracking_number"`
	Status         model.ShipmentStatus `json:"status"`
	Location       string               `json:"location,omitempty"`
	Note           string               `json:"note,omitempty"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
