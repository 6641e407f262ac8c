package handler

import (
	"database/sql"
	"errors"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/auth"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/http/middleware"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	return middleware.RequestIDFrom(c)
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// serviceErrors maps service sentinels to their HTTP form. Order matters: the first
// match wins.
var serviceErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{service.ErrIDRequired, fiber.StatusBadRequest, "INVALID_ID", "id is required"},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password"},
	{auth.ErrInvalidToken, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token"},
	{service.ErrInsufficientBalance, fiber.StatusPaymentRequired, "INSUFFICIENT_BALANCE", "insufficient lead wallet balance"},
	{service.ErrNotVerified, fiber.StatusForbidden, "NOT_VERIFIED", "partner account is not verified"},
	{service.ErrNotMatched, fiber.StatusForbidden, "NOT_MATCHED", "quote does not match partner capabilities"},
	{service.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "forbidden"},
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "resource not found"},
	{sql.ErrNoRows, fiber.StatusNotFound, "NOT_FOUND", "resource not found"},
	{service.ErrConflict, fiber.StatusConflict, "CONFLICT", "resource already exists"},
	{service.ErrQuoteClosed, fiber.StatusConflict, "QUOTE_CLOSED", "quote is no longer accepting offers"},
	{service.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE", "operation not allowed in current state"},
}

// writeServiceError translates a service error. Validation messages are built by the
// service from user input and are safe to echo; anything unknown becomes a logged 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrValidation) {
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	}
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.message)
		}
	}

	logger.FromContext(c.UserContext()).Error("request failed",
		"component", "http", "method", c.Method(), "path", c.Path(), "error", err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "authentication required")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "forbidden")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		default:
			if status >= fiber.StatusBadRequest && status < fiber.StatusInternalServerError {
				return writeError(c, status, statusCode(status), e.Message)
			}
			logger.FromContext(c.UserContext()).Error("unhandled error",
				"component", "http", "method", c.Method(), "path", c.Path(), "error", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
	}
}

// statusCode turns a status text into an error code, e.g. 415 -> UNSUPPORTED_MEDIA_TYPE.
func statusCode(status int) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, utils.StatusMessage(status)))
}
