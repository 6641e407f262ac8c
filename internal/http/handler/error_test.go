package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: quantity must be positive", service.ErrValidation), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"id required", service.ErrIDRequired, http.StatusBadRequest, "INVALID_ID"},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"balance", fmt.Errorf("book offer: %w", service.ErrInsufficientBalance), http.StatusPaymentRequired, "INSUFFICIENT_BALANCE"},
		{"not verified", service.ErrNotVerified, http.StatusForbidden, "NOT_VERIFIED"},
		{"not matched", service.ErrNotMatched, http.StatusForbidden, "NOT_MATCHED"},
		{"forbidden", service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"no rows", fmt.Errorf("find: %w", sql.ErrNoRows), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", service.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"quote closed", service.ErrQuoteClosed, http.StatusConflict, "QUOTE_CLOSED"},
		{"state", fmt.Errorf("cancel quote in status BOOKED: %w", service.ErrInvalidState), http.StatusConflict, "INVALID_STATE"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeServiceError(c, tt.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			res := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, res.Error.Code)
			assert.NotContains(t, res.Error.Message, "pq:")
		})
	}
}

func TestValidationMessageEchoed(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeServiceError(c, fmt.Errorf("%w: pickup date is in the past", service.ErrValidation))
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, decodeError(t, resp).Error.Message, "pickup date is in the past")
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		status   int
		wantCode string
		want     int
	}{
		{fiber.StatusBadRequest, "BAD_REQUEST", fiber.StatusBadRequest},
		{fiber.StatusUnauthorized, "UNAUTHORIZED", fiber.StatusUnauthorized},
		{fiber.StatusForbidden, "FORBIDDEN", fiber.StatusForbidden},
		{fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", fiber.StatusRequestEntityTooLarge},
		{fiber.StatusTooManyRequests, "RATE_LIMITED", fiber.StatusTooManyRequests},
		{fiber.StatusConflict, "CONFLICT", fiber.StatusConflict},
		{fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", fiber.StatusUnsupportedMediaType},
		{fiber.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", fiber.StatusUnprocessableEntity},
		{fiber.StatusServiceUnavailable, "INTERNAL_ERROR", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return fiber.NewError(tt.status, "boom") })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
		})
	}
}

func TestErrorHandler_KeepsClientErrorMessage(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnsupportedMediaType, "content type must be application/json")
	})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
	assert.Equal(t, "content type must be application/json", decodeError(t, resp).Error.Message)
}

func TestErrorHandler_PlainError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error { return errors.New("db exploded") })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)
}
