package cors

import (
	"github.com/gofiber/fiber/v2"
)

// Config defines the headers added to every response.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	Next func(c *fiber.Ctx) bool
	// AllowOrigin is sent as Access-Control-Allow-Origin.
	AllowOrigin string
	// AllowMethods is sent as Access-Control-Allow-Methods.
	AllowMethods string
	// AllowHeaders is sent as Access-Control-Allow-Headers.
	AllowHeaders string
}

// ConfigDefault lets any origin fetch the player's files.
var ConfigDefault = Config{
	AllowOrigin:  "*",
	AllowMethods: "GET, POST, OPTIONS",
	AllowHeaders: "*",
}

// New creates the CORS middleware.
//
// Unlike fiber's cors middleware, the headers are attached to every response
// regardless of the request's Origin, and preflight requests are answered
// with an empty 200 instead of 204.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		if c.Method() == fiber.MethodOptions {
			setHeaders(c, cfg)
			c.Status(fiber.StatusOK)
			return nil
		}

		err := c.Next()
		// The static handler may reset the response on a miss, so the headers
		// are applied once the rest of the chain has run.
		setHeaders(c, cfg)
		return err
	}
}

func setHeaders(c *fiber.Ctx, cfg Config) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, cfg.AllowOrigin)
	c.Set(fiber.HeaderAccessControlAllowMethods, cfg.AllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, cfg.AllowHeaders)
}
