package accesslog

import (
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Format renders `<client-address> - "<request line>" <status> <bytes>`.
const Format = "${ip} - \"${method} ${url} ${" + TagHTTPVersion + "}\" ${status} ${bytesSent}\n"

// TagHTTPVersion renders the request's protocol version, e.g. HTTP/1.1.
// fiber's own ${protocol} tag renders the scheme instead.
const TagHTTPVersion = "httpVersion"

// Config defines the config for the access log middleware.
type Config struct {
	// Output receives one line per request. Defaults to os.Stdout.
	Output io.Writer
	// Done is called with every rendered line after it was written.
	Done func(c *fiber.Ctx, line []byte)
}

// New creates the access log middleware on top of fiber's logger.
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return logger.New(logger.Config{
		Format:        Format,
		Output:        cfg.Output,
		Done:          cfg.Done,
		DisableColors: true,
		CustomTags: map[string]logger.LogFunc{
			TagHTTPVersion: func(output logger.Buffer, c *fiber.Ctx, _ *logger.Data, _ string) (int, error) {
				return output.Write(c.Request().Header.Protocol())
			},
		},
	})
}
