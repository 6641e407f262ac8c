package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

type eventRequest struct {
	Status   string `json:"status" validate:"required,oneof=PICKED_UP IN_TRANSIT DELIVERED CANCELLED"`
	Location string `json:"location" validate:"max=200"`
	Note     string `json:"note" validate:"max=1000"`
}

// ListShipments lists the caller's shipments (all for admins).
func ListShipments(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		res, err := svc.List(c.UserContext(), principal(c), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetShipment returns a shipment with its event history.
func GetShipment(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		s, err := svc.Get(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// TrackShipment looks a shipment up by tracking number.
func TrackShipment(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tracking := strings.TrimSpace(c.Params("tracking"))
		if tracking == "" || len(tracking) > 32 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TRACKING_NUMBER", "invalid tracking number")
		}
		s, err := svc.Track(c.UserContext(), principal(c), tracking)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// AddShipmentEvent records a status update.
func AddShipmentEvent(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		var req eventRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		s, err := svc.AddEvent(c.UserContext(), principal(c), id, service.EventInput{
			Status:   model.ShipmentStatus(req.Status),
			Location: req.Location,
			Note:     req.Note,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// ShipmentConfirmation streams the booking confirmation PDF.
func ShipmentConfirmation(svc service.ShipmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		f, err := svc.Confirmation(c.UserContext(), principal(c), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, f.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Filename))
		return c.Send(f.Content)
	}
}
