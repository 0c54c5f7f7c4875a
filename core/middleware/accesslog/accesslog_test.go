package accesslog_test

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"moment-server/core/middleware/accesslog"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(accesslog.New(accesslog.Config{Output: &buf}))
	app.Get("/index.html", func(c *fiber.Ctx) error {
		return c.SendString("hello")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/index.html", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/missing.mp3", nil))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], ` - "GET /index.html HTTP/1.1" 200 5`)
	assert.Contains(t, lines[1], ` - "GET /missing.mp3 HTTP/1.1" 404`)
}

func TestAccessLog_Done(t *testing.T) {
	var got []string
	app := fiber.New()
	app.Use(accesslog.New(accesslog.Config{
		Output: &bytes.Buffer{},
		Done: func(c *fiber.Ctx, line []byte) {
			got = append(got, string(line))
		},
	}))
	app.Get("/", func(c *fiber.Ctx) error { return nil })

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Contains(t, got[0], `"GET / HTTP/1.1" 200`)
}
