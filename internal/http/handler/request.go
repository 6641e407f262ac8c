package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/http/middleware"
)

var validate = newValidator()

// newValidator reports JSON field names instead of Go struct field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bindJSON parses the body into dst and validates it. On failure it writes the error
// response and returns ok=false; the caller returns err as is.
func bindJSON(c *fiber.Ctx, dst any) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
	}
	if err := validate.Struct(dst); err != nil {
		return false, writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// page reads limit and offset query parameters (defaults 10 and 0).
func page(c *fiber.Ctx) (limit, offset int, ok bool, err error) {
	limit, convErr := strconv.Atoi(c.Query("limit", "10"))
	if convErr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
	}
	offset, convErr = strconv.Atoi(c.Query("offset", "0"))
	if convErr != nil {
		return 0, 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
	}
	return limit, offset, true, nil
}

// idParam returns the :id route parameter once it parses as a UUID.
func idParam(c *fiber.Ctx) (id string, ok bool, err error) {
	id = c.Params("id")
	if _, parseErr := uuid.Parse(id); parseErr != nil {
		return "", false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}

// principal returns the caller attached by middleware.Auth. Routes without Auth get
// the zero Principal, which no service treats as privileged.
func principal(c *fiber.Ctx) auth.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

// statusFilter reads an optional upper-cased query filter restricted to allowed values.
func statusFilter(c *fiber.Ctx, key string, allowed ...string) (value string, ok bool, err error) {
	value = strings.ToUpper(strings.TrimSpace(c.Query(key)))
	if value == "" {
		return "", true, nil
	}
	for _, a := range allowed {
		if value == a {
			return value, true, nil
		}
	}
	return "", false, writeError(c, fiber.StatusBadRequest, "INVALID_"+strings.ToUpper(key),
		fmt.Sprintf("%s must be one of: %s", key, strings.Join(allowed, ", ")))
}
