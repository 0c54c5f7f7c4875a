package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// LocalsKey is where the RayID is stored in the request locals.
	LocalsKey = "ray_id"
	// HeaderName is the response header carrying the RayID.
	HeaderName = "X-Ray-ID"
)

// Config defines the config for the RayID middleware.
type Config struct {
	// Generator returns a new RayID. Defaults to a random UUID.
	Generator func() string
}

// New creates a middleware that tags every request with a RayID.
// An incoming X-Ray-ID header is reused so a caller can correlate its own
// requests with the server logs.
func New(config ...Config) fiber.Handler {
	generate := uuid.NewString
	if len(config) > 0 && config[0].Generator != nil {
		generate = config[0].Generator
	}

	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = generate()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		err := c.Next()
		// A file miss resets the response headers.
		c.Set(HeaderName, rid)
		return err
	}
}
