package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

type rejectRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// ListUsers lists accounts, optionally by ?role=.
func ListUsers(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		role, ok, err := statusFilter(c, "role",
			string(model.RoleTrader), string(model.RolePartner), string(model.RoleAdmin))
		if !ok {
			return err
		}
		res, err := svc.ListUsers(c.UserContext(), model.Role(role), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// VerifyUser marks an account verified.
func VerifyUser(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		u, err := svc.VerifyUser(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// ListPaymentRequests lists top-up requests, optionally by ?status=.
func ListPaymentRequests(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		status, ok, err := statusFilter(c, "status", paymentStatuses...)
		if !ok {
			return err
		}
		res, err := svc.ListPaymentRequests(c.UserContext(), model.PaymentStatus(status), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ApprovePayment credits the requested amount.
func ApprovePayment(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		pr, err := svc.ApprovePayment(c.UserContext(), principal(c).UserID, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(pr)
	}
}

// RejectPayment closes a request without crediting. The body is optional.
func RejectPayment(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, err := idParam(c)
		if !ok {
			return err
		}
		var req rejectRequest
		if len(c.Body()) > 0 {
			if ok, err := bindJSON(c, &req); !ok {
				return err
			}
		}
		pr, err := svc.RejectPayment(c.UserContext(), principal(c).UserID, id, req.Note)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(pr)
	}
}

// PlatformStats returns marketplace counters.
func PlatformStats(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}

// ExpireQuotes runs the expiry sweep immediately.
func ExpireQuotes(svc service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.ExpireNow(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"expired": n})
	}
}
