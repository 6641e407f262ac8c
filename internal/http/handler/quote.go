package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

type quoteRequest struct {
	CargoName             string  `json:"cargo_name" validate:"required,max=200"`
	CASNumber             string  `json:"cas_number" validate:"max=32"`
	UNNumber              string  `json:"un_number" validate:"max=16"`
	HazardClass           int     `json:"hazard_class" validate:"min=0,max=9"`
	Quantity              float64 `json:"quantity" validate:"gt=0"`
	Unit                  string  `json:"unit" validate:"required,oneof=MT KG L"`
	Packaging             string  `json:"packaging" validate:"max=120"`
	PickupCity            string  `json:"pickup_city" validate:"required,max=120"`
	PickupRegion          string  `json:"pickup_region" validate:"required,max=120"`
	DeliveryCity          string  `json:"delivery_city" validate:"required,max=120"`
	DeliveryRegion        string  `json:"delivery_region" validate:"required,max=120"`
	PickupDate            string  `json:"pickup_date" validate:"required"`
	TemperatureControlled bool    `json:"temperature_controlled"`
	SpecialInstructions   string  `json:"special_instructions" validate:"max=2000"`
}

// parseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// CreateQuote opens a freight request for the calling trader.
func CreateQuote(svc service.QuoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req quoteRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		pickup, ok := parseDate(req.PickupDate)
		if !ok {
			return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "pickup_date must be YYYY-MM-DD or RFC 3339")
		}

		q, err := svc.Create(c.UserContext(), principal(c).UserID, service.QuoteInput{
			CargoName:             req.CargoName,
			CASNumber:             req.CASNumber,
			UNNumber:              req.UNNumber,
			HazardClass:           req.HazardClass,
			Quantity:              req.Quantity,
			Unit:                  model.QuantityUnit(req.Unit),
			Packaging:             req.Packaging,
			PickupCity:            req.PickupCity,
			PickupRegion:          req.PickupRegion,
			DeliveryCity:          req.DeliveryCity,
			DeliveryRegion:        req.DeliveryRegion,
			PickupDate:            pickup,
			TemperatureControlled: req.TemperatureControlled,
			SpecialInstructions:   req.SpecialInstructions,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(q)
	}
}

// ListQuotes lists quotes visible to the caller, optionally filtered by ?status=.
func ListQuotes(svc service.QuoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		status, ok, err := statusFilter(c, "status",
			string(model.QuoteOpen), string(model.QuoteOffersReceived), string(model.QuoteBooked),
			string(model.QuoteExpired), string(model.QuoteCancelled))
		if !ok {
			return err
		}

		res, err := svc.List(c.UserContext(), principal(c), model.QuoteStatus(status), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetQuote returns a quote with its countdown.
func GetQuote(svc service.QuoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		v, err := svc.Get(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(v)
	}
}

// CancelQuote withdraws an open quote.
func CancelQuote(svc service.QuoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		q, err := svc.Cancel(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(q)
	}
}

// QuoteMatches lists partners able to carry the quote.
func QuoteMatches(svc service.QuoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		partners, err := svc.Matches(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": partners, "total": len(partners)})
	}
}

// LeadCostPreview prices the lead for the calling partner.
func LeadCostPreview(svc service.QuoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		b, err := svc.LeadCostPreview(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(b)
	}
}
