package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

const partnerSelect = `
	SELECT p.user_id, u.company, u.verified, p.hazard_classes, p.service_regions,
	       p.max_capacity_tons, p.temperature_controlled, p.rating, p.subscription_tier,
	       p.webhook_url, p.webhook_secret, p.active, p.updated_at
	FROM partner_profiles p
	JOIN users u ON u.id = p.user_id
`

// PartnerPostgres is a PostgreSQL implementation of repository.PartnerRepository.
// Hazard classes and regions are stored as JSONB arrays.
type PartnerPostgres struct {
	db *sql.DB
}

// NewPartnerPostgres creates a new PartnerPostgres repository.
func NewPartnerPostgres(db *sql.DB) *PartnerPostgres {
	return &PartnerPostgres{db: db}
}

var _ repository.PartnerRepository = (*PartnerPostgres)(nil)

func scanPartner(s scanner) (*model.PartnerProfile, error) {
	var (
		p               model.PartnerProfile
		hazards, region []byte
	)
	if err := s.Scan(
		&p.UserID,
		&p.CompanyName,
		&p.Verified,
		&hazards,
		&region,
		&p.MaxCapacityTons,
		&p.TemperatureControlled,
		&p.Rating,
		&p.SubscriptionTier,
		&p.WebhookURL,
		&p.WebhookSecret,
		&p.Active,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hazards, &p.HazardClasses); err != nil {
		return nil, fmt.Errorf("decode hazard_classes: %w", err)
	}
	if err := json.Unmarshal(region, &p.ServiceRegions); err != nil {
		return nil, fmt.Errorf("decode service_regions: %w", err)
	}
	return &p, nil
}

// Get returns the profile of a partner user.
func (r *PartnerPostgres) Get(ctx context.Context, userID string) (*model.PartnerProfile, error) {
	return scanPartner(r.db.QueryRowContext(ctx, partnerSelect+` WHERE p.user_id = $1`, userID))
}

// Upsert creates or replaces a profile. Rating is preserved on update.
func (r *PartnerPostgres) Upsert(ctx context.Context, p *model.PartnerProfile) (*model.PartnerProfile, error) {
	hazards, err := jsonColumn(p.HazardClasses)
	if err != nil {
		return nil, err
	}
	regions, err := jsonColumn(p.ServiceRegions)
	if err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO partner_profiles (
			user_id, hazard_classes, service_regions, max_capacity_tons, temperature_controlled,
			rating, subscription_tier, webhook_url, webhook_secret, active, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			hazard_classes         = EXCLUDED.hazard_classes,
			service_regions        = EXCLUDED.service_regions,
			max_capacity_tons      = EXCLUDED.max_capacity_tons,
			temperature_controlled = EXCLUDED.temperature_controlled,
			subscription_tier      = EXCLUDED.subscription_tier,
			webhook_url            = EXCLUDED.webhook_url,
			webhook_secret         = EXCLUDED.webhook_secret,
			active                 = EXCLUDED.active,
			updated_at             = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, q,
		p.UserID,
		hazards,
		regions,
		p.MaxCapacityTons,
		p.TemperatureControlled,
		p.Rating,
		p.SubscriptionTier,
		p.WebhookURL,
		p.WebhookSecret,
		p.Active,
		p.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert partner profile: %w", err)
	}
	return r.Get(ctx, p.UserID)
}

// ListActive returns all active profiles.
func (r *PartnerPostgres) ListActive(ctx context.Context) ([]model.PartnerProfile, error) {
	rows, err := r.db.QueryContext(ctx, partnerSelect+` WHERE p.active ORDER BY p.updated_at, p.user_id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPartner)
}
