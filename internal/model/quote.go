package model

import "time"

// QuoteStatus is the lifecycle state of a freight request.
type QuoteStatus string

const (
	QuoteOpen           QuoteStatus = "OPEN"
	QuoteOffersReceived QuoteStatus = "OFFERS_RECEIVED"
	QuoteBooked         QuoteStatus = "BOOKED"
	QuoteExpired        QuoteStatus = "EXPIRED"
	QuoteCancelled      QuoteStatus = "CANCELLED"
)

// AcceptsOffers reports whether partners may still bid in this state.
func (s QuoteStatus) AcceptsOffers() bool {
	return s == QuoteOpen || s == QuoteOffersReceived
}

// QuantityUnit is the unit a cargo quantity is expressed in.
type QuantityUnit string

const (
	UnitMetricTons QuantityUnit = "MT"
	UnitKilograms  QuantityUnit = "KG"
	UnitLitres     QuantityUnit = "L"
)

// Tons converts q in unit u to metric tonnes. Litres are treated as kilograms.
func (u QuantityUnit) Tons(q float64) float64 {
	switch u {
	case UnitKilograms, UnitLitres:
		return q / 1000
	default:
		return q
	}
}

// Quote is a trader's freight request for a chemical cargo.
// HazardClass is the UN dangerous goods class 1..9, or 0 for non-hazardous cargo.
type Quote struct {
	ID                    string       `json:"id"`
	Reference             string       `json:"reference"`
	TraderID              string       `json:"trader_id"`
	CargoName             string       `json:"cargo_name"`
	CASNumber             string       `json:"cas_number,omitempty"`
	UNNumber              string       `json:"un_number,omitempty"`
	HazardClass           int          `json:"hazard_class"`
	Quantity              float64      `json:"quantity"`
	Unit                  QuantityUnit `json:"unit"`
	Packaging             string       `json:"packaging,omitempty"`
	PickupCity            string       `json:"pickup_city"`
	PickupRegion          string       `json:"pickup_region"`
	DeliveryCity          string       `json:"delivery_city"`
	DeliveryRegion        string       `json:"delivery_region"`
	PickupDate            time.Time    `json:"pickup_date"`
	TemperatureControlled bool         `json:"temperature_controlled"`
	SpecialInstructions   string       `json:"special_instructions,omitempty"`
	Status                QuoteStatus  `json:"status"`
	SelectedOfferID       *string      `json:"selected_offer_id,omitempty"`
	ExpiresAt             time.Time    `json:"expires_at"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// Expired reports whether the bidding window has closed at now.
func (q *Quote) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}

// QuantityTons returns the cargo quantity in metric tonnes.
func (q *Quote) QuantityTons() float64 {
	return q.Unit.Tons(q.Quantity)
}
