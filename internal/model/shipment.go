package model

import "time"

// ShipmentStatus is the tracking state of a booked shipment.
type ShipmentStatus string

const (
	ShipmentBooked    ShipmentStatus = "BOOKED"
	ShipmentPickedUp  ShipmentStatus = "PICKED_UP"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentCancelled ShipmentStatus = "CANCELLED"
)

var shipmentOrder = map[ShipmentStatus]int{
	ShipmentBooked:    0,
	ShipmentPickedUp:  1,
	ShipmentInTransit: 2,
	ShipmentDelivered: 3,
}

// Terminal reports whether no further transitions are allowed.
func (s ShipmentStatus) Terminal() bool {
	return s == ShipmentDelivered || s == ShipmentCancelled
}

// CanTransition reports whether a shipment may move from s to next.
// Progress moves one step at a time; cancellation is allowed until the cargo is in transit.
func (s ShipmentStatus) CanTransition(next ShipmentStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == ShipmentCancelled {
		return s == ShipmentBooked || s == ShipmentPickedUp
	}
	cur, ok1 := shipmentOrder[s]
	nxt, ok2 := shipmentOrder[next]
	return ok1 && ok2 && nxt == cur+1
}

// Shipment is the booking created once an offer is selected.
type Shipment struct {
	ID             string          `json:"id"`
	TrackingNumber string          `json:"tracking_number"`
	QuoteID        string          `json:"quote_id"`
	OfferID        string          `json:"offer_id"`
	TraderID       string          `json:"trader_id"`
	PartnerID      string          `json:"partner_id"`
	Status         ShipmentStatus  `json:"status"`
	Events         []ShipmentEvent `json:"events,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ShipmentEvent is one tracking update reported by the partner.
type ShipmentEvent struct {
	ID         string         `json:"id"`
	ShipmentID string         `json:"shipment_id"`
	Status     ShipmentStatus `json:"status"`
	Location   string         `json:"location,omitempty"`
	Note       string         `json:"note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
