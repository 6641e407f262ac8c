package model

import "time"

// OfferStatus is the lifecycle state of a partner's bid.
type OfferStatus string

const (
	OfferPending   OfferStatus = "PENDING"
	OfferAccepted  OfferStatus = "ACCEPTED"
	OfferRejected  OfferStatus = "REJECTED"
	OfferWithdrawn OfferStatus = "WITHDRAWN"
)

// Offer is a logistics partner's bid against a quote.
type Offer struct {
	ID          string      `json:"id"`
	QuoteID     string      `json:"quote_id"`
	PartnerID   string      `json:"partner_id"`
	Price       Money       `json:"price"`
	Currency    string      `json:"currency"`
	TransitDays int         `json:"transit_days"`
	ValidUntil  time.Time   `json:"valid_until"`
	Remarks     string      `json:"remarks,omitempty"`
	Status      OfferStatus `json:"status"`
	LeadCost    Money       `json:"lead_cost"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
