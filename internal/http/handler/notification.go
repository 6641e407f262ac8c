package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

// ListNotifications lists the caller's notifications; ?unread=true keeps unread ones only.
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		unread, convErr := strconv.ParseBool(c.Query("unread", "false"))
		if convErr != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_UNREAD", "unread must be true or false")
		}
		res, err := svc.List(c.UserContext(), principal(c).UserID, unread, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// MarkNotificationRead marks one notification read.
func MarkNotificationRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		if err := svc.MarkRead(c.UserContext(), principal(c).UserID, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// MarkAllNotificationsRead marks every unread notification read.
func MarkAllNotificationsRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.MarkAllRead(c.UserContext(), principal(c).UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"updated": n})
	}
}
