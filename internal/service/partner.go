package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/repository"
)

// ProfileInput is what a partner declares about its fleet.
type ProfileInput struct {
	HazardClasses         []int
	ServiceRegions        []string
	MaxCapacityTons       float64
	TemperatureControlled bool
	SubscriptionTier      model.SubscriptionTier
	WebhookURL            string
	WebhookSecret         string
	Active                bool
}

// PartnerService manages logistics partner capability profiles.
type PartnerService interface {
	GetProfile(ctx context.Context, userID string) (*model.PartnerProfile, error)
	UpsertProfile(ctx context.Context, userID string, in ProfileInput) (*model.PartnerProfile, error)
}

type partnerService struct {
	partners repository.PartnerRepository
	now      func() time.Time
}

// NewPartnerService constructs a new PartnerService.
func NewPartnerService(partners repository.PartnerRepository) PartnerService {
	return &partnerService{partners: partners, now: utcNow}
}

func (s *partnerService) GetProfile(ctx context.Context, userID string) (*model.PartnerProfile, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	p, err := s.partners.Get(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *partnerService) UpsertProfile(ctx context.Context, userID string, in ProfileInput) (*model.PartnerProfile, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	if len(in.HazardClasses) == 0 {
		return nil, invalid("at least one hazard class is required")
	}
	seen := make(map[int]bool, len(in.HazardClasses))
	classes := make([]int, 0, len(in.HazardClasses))
	for _, c := range in.HazardClasses {
		if c < 1 || c > 9 {
			return nil, invalid("hazard class %d is outside 1..9", c)
		}
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}

	regions := make([]string, 0, len(in.ServiceRegions))
	for _, r := range in.ServiceRegions {
		if r = strings.TrimSpace(r); r != "" {
			regions = append(regions, r)
		}
	}
	if len(regions) == 0 {
		return nil, invalid("at least one service region is required")
	}
	if in.MaxCapacityTons <= 0 {
		return nil, invalid("max capacity must be greater than zero")
	}

	tier := in.SubscriptionTier
	if tier == "" {
		tier = model.TierFree
	}
	if !tier.Valid() {
		return nil, invalid("unknown subscription tier %q", tier)
	}
	if in.WebhookURL != "" {
		u, err := url.Parse(in.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, invalid("webhook url must be an absolute http(s) url")
		}
	}

	p, err := s.partners.Upsert(ctx, &model.PartnerProfile{
		UserID:                userID,
		HazardClasses:         classes,
		ServiceRegions:        regions,
		MaxCapacityTons:       in.MaxCapacityTons,
		TemperatureControlled: in.TemperatureControlled,
		SubscriptionTier:      tier,
		WebhookURL:            in.WebhookURL,
		WebhookSecret:         in.WebhookSecret,
		Active:                in.Active,
		UpdatedAt:             s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("save partner profile: %w", err)
	}
	return p, nil
}
