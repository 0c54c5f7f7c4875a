package rayid_test

import (
	"net/http/httptest"
	"testing"

	"moment-server/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayID(t *testing.T) {
	var seen string
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		seen, _ = c.Locals(rayid.LocalsKey).(string)
		return nil
	})

	t.Run("Generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)

		header := resp.Header.Get(rayid.HeaderName)
		_, parseErr := uuid.Parse(header)
		assert.NoError(t, parseErr)
		assert.Equal(t, header, seen)
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(rayid.HeaderName, "client-ray")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "client-ray", resp.Header.Get(rayid.HeaderName))
		assert.Equal(t, "client-ray", seen)
	})
}

func TestRayID_CustomGenerator(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New(rayid.Config{Generator: func() string { return "fixed" }}))
	app.Get("/", func(c *fiber.Ctx) error { return nil })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "fixed", resp.Header.Get(rayid.HeaderName))
}

func TestRayID_SurvivesResponseReset(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New(rayid.Config{Generator: func() string { return "kept" }}))
	app.Get("/", func(c *fiber.Ctx) error {
		c.Response().Reset()
		return fiber.ErrNotFound
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "kept", resp.Header.Get(rayid.HeaderName))
}
