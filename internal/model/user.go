package model

import "time"

// User is an account on the platform: a trader, a logistics partner or an admin.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubscriptionTier drives the lead-cost discount a partner receives.
type SubscriptionTier string

const (
	TierFree     SubscriptionTier = "FREE"
	TierStandard SubscriptionTier = "STANDARD"
	TierPremium  SubscriptionTier = "PREMIUM"
)

// Valid reports whether t is a known tier.
func (t SubscriptionTier) Valid() bool {
	switch t {
	case TierFree, TierStandard, TierPremium:
		return true
	}
	return false
}

// RegionAll in ServiceRegions means the partner picks up anywhere.
const RegionAll = "ALL"

// PartnerProfile describes what a logistics partner can carry and where.
type PartnerProfile struct {
	UserID                string           `json:"user_id"`
	CompanyName           string           `json:"company_name,omitempty"`
	Verified              bool             `json:"verified"`
	HazardClasses         []int            `json:"hazard_classes"`
	ServiceRegions        []string         `json:"service_regions"`
	MaxCapacityTons       float64          `json:"max_capacity_tons"`
	TemperatureControlled bool             `json:"temperature_controlled"`
	Rating                float64          `json:"rating"`
	SubscriptionTier      SubscriptionTier `json:"subscription_tier"`
	WebhookURL            string           `json:"webhook_url,omitempty"`
	WebhookSecret         string           `json:"-"`
	Active                bool             `json:"active"`
	UpdatedAt             time.Time        `json:"updated_at"`
}
