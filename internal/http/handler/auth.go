package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/model"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=120"`
	Company  string `json:"company" validate:"max=200"`
	Phone    string `json:"phone" validate:"max=32"`
	Role     string `json:"role" validate:"required,oneof=TRADER LOGISTICS_PARTNER"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a trader or partner account and returns a session.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		sess, err := svc.Register(c.UserContext(), service.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Company:  req.Company,
			Phone:    req.Phone,
			Role:     model.Role(req.Role),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sess)
	}
}

// Login exchanges credentials for a session.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if ok, err := bindJSON(c, &req); !ok {
			return err
		}
		sess, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(sess)
	}
}

// Me returns the authenticated user.
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Me(c.UserContext(), principal(c).UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}
