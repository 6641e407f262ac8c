package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(2, time.Minute, nil))
	app.Get("/a", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/b", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/a", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/a", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Counters are per path.
	resp, err = app.Test(httptest.NewRequest("GET", "/b", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimitWindowResets(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(1, time.Second, nil))
	app.Get("/a", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/a", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/a", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// fiber's limiter clock ticks once per second, so the window can end up to a second late.
	require.Eventually(t, func() bool {
		resp, err := app.Test(httptest.NewRequest("GET", "/a", nil))
		return err == nil && resp.StatusCode == fiber.StatusOK
	}, 4*time.Second, 250*time.Millisecond)
}

func TestRateLimitDisabled(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimit(0, time.Minute, nil))
	app.Get("/a", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/a", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	app := fiber.New()
	app.Use(CORS("https://app.bidchemz.test"))
	app.Get("/a", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/a", nil)
	req.Header.Set("Origin", "https://app.bidchemz.test")
	req.Header.Set("Access-Control-Request-Method", "GET")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://app.bidchemz.test", resp.Header.Get("Access-Control-Allow-Origin"))
}
