package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

// offerRequest carries the price in paise.
type offerRequest struct {
	Price       int64     `json:"price" validate:"gt=0"`
	TransitDays int       `json:"transit_days" validate:"min=1,max=90"`
	ValidUntil  time.Time `json:"valid_until" validate:"required"`
	Remarks     string    `json:"remarks" validate:"max=2000"`
}

// SubmitOffer places the calling partner's bid on a quote.
func SubmitOffer(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quoteID, ok, err := idParam(c)
		if !ok {
			return err
		}
		var req offerRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}

		o, err := svc.Submit(c.UserContext(), principal(c).UserID, quoteID, service.OfferInput{
			Price:       model.Money(req.Price),
			TransitDays: req.TransitDays,
			ValidUntil:  req.ValidUntil,
			Remarks:     req.Remarks,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(o)
	}
}

// ListQuoteOffers lists the bids on a quote for its owner.
func ListQuoteOffers(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		quoteID, ok, err := idParam(c)
		if !ok {
			return err
		}
		offers, err := svc.ListForQuote(c.UserContext(), principal(c), quoteID)
		if err != nil {
			return writeServiceError(c, err)
		}
		if offers == nil {
			offers = []model.Offer{}
		}
		return c.JSON(fiber.Map{"data": offers, "total": len(offers)})
	}
}

// ListMyOffers lists the calling partner's bids.
func ListMyOffers(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		res, err := svc.ListMine(c.UserContext(), principal(c).UserID, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// WithdrawOffer pulls back a pending bid.
func WithdrawOffer(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		if err := svc.Withdraw(c.UserContext(), principal(c).UserID, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SelectOffer books an offer for the quote owner.
func SelectOffer(svc service.OfferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		b, err := svc.Select(c.UserContext(), principal(c).UserID, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}
