package middleware

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
)

// Logger logs each HTTP request as one JSON record with request_id, method, path,
// status and latency (milliseconds, float). When a span is active its trace_id is
// added too.
//
// A request-scoped logger carrying request_id is stored in the user context so that
// services can fetch it with logger.FromContext.
func Logger(log *slog.Logger) fiber.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := RequestIDFrom(c)

		reqLog := log
		if rid != "" {
			reqLog = log.With(slog.String("request_id", rid))
		}
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLog))

		err := c.Next()

		attrs := []any{
			slog.String("request_id", rid),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", statusOf(c, err)),
			slog.Float64("latency", float64(time.Since(start).Microseconds())/1000),
		}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
		}
		log.Info("http_request", attrs...)

		return err
	}
}

// LoggerWithWriter is Logger writing JSON lines to w at info level.
func LoggerWithWriter(w io.Writer) fiber.Handler {
	return Logger(logger.NewWithWriter(w, "info"))
}

// statusOf returns the status the client will see. Errors returned down the chain
// are rendered later by the app's error handler, so the response status is not set yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
