package model

import "time"

// NotificationKind groups notifications for filtering in the UI.
type NotificationKind string

const (
	NotifyQuoteMatched    NotificationKind = "QUOTE_MATCHED"
	NotifyQuoteExpired    NotificationKind = "QUOTE_EXPIRED"
	NotifyQuoteCancelled  NotificationKind = "QUOTE_CANCELLED"
	NotifyOfferReceived   NotificationKind = "OFFER_RECEIVED"
	NotifyOfferAccepted   NotificationKind = "OFFER_ACCEPTED"
	NotifyOfferRejected   NotificationKind = "OFFER_REJECTED"
	NotifyShipmentUpdated NotificationKind = "SHIPMENT_UPDATED"
	NotifyPaymentReviewed NotificationKind = "PAYMENT_REVIEWED"
	NotifyAccountVerified NotificationKind = "ACCOUNT_VERIFIED"
)

// Notification is an in-app message for a single user.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
