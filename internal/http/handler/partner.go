package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

type profileRequest struct {
	HazardClasses         []int    `json:"hazard_classes" validate:"required,min=1,dive,min=1,max=9"`
	ServiceRegions        []string `json:"service_regions" validate:"required,min=1,dive,required"`
	MaxCapacityTons       float64  `json:"max_capacity_tons" validate:"gt=0"`
	TemperatureControlled bool     `json:"temperature_controlled"`
	SubscriptionTier      string   `json:"subscription_tier" validate:"omitempty,oneof=FREE STANDARD PREMIUM"`
	WebhookURL            string   `json:"webhook_url" validate:"omitempty,http_url"`
	WebhookSecret         string   `json:"webhook_secret" validate:"max=256"`
	Active                *bool    `json:"active"`
}

// GetProfile returns the caller's partner profile.
func GetProfile(svc service.PartnerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.GetProfile(c.UserContext(), principal(c).UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// UpsertProfile creates or replaces the caller's partner profile.
func UpsertProfile(svc service.PartnerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profileRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		active := true
		if req.Active != nil {
			active = *req.Active
		}
		p, err := svc.UpsertProfile(c.UserContext(), principal(c).UserID, service.ProfileInput{
			HazardClasses:         req.HazardClasses,
			ServiceRegions:        req.ServiceRegions,
			MaxCapacityTons:       req.MaxCapacityTons,
			TemperatureControlled: req.TemperatureControlled,
			SubscriptionTier:      model.SubscriptionTier(req.SubscriptionTier),
			WebhookURL:            req.WebhookURL,
			WebhookSecret:         req.WebhookSecret,
			Active:                active,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}
