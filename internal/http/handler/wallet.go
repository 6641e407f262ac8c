package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

var paymentStatuses = []string{
	string(model.PaymentPending), string(model.PaymentApproved), string(model.PaymentRejected),
}

// topUpRequest carries the amount in paise.
type topUpRequest struct {
	Amount    int64  `json:"amount" validate:"gt=0"`
	Method    string `json:"method" validate:"required,max=32"`
	Reference string `json:"reference" validate:"max=120"`
}

// GetWallet returns the calling partner's lead wallet.
func GetWallet(svc service.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := svc.Get(c.UserContext(), principal(c).UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(w)
	}
}

// WalletTransactions lists ledger entries, newest first.
func WalletTransactions(svc service.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		res, err := svc.Transactions(c.UserContext(), principal(c).UserID, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// RequestTopUp files a top-up for admin review.
func RequestTopUp(svc service.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req topUpRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		pr, err := svc.RequestTopUp(c.UserContext(), principal(c).UserID, service.TopUpInput{
			Amount:    model.Money(req.Amount),
			Method:    req.Method,
			Reference: req.Reference,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pr)
	}
}

// ListMyPaymentRequests lists the partner's top-up requests, optionally by ?status=.
func ListMyPaymentRequests(svc service.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok, err := page(c)
		if !ok {
			return err
		}
		status, ok, err := statusFilter(c, "status", paymentStatuses...)
		if !ok {
			return err
		}
		res, err := svc.ListMyRequests(c.UserContext(), principal(c).UserID, model.PaymentStatus(status), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
