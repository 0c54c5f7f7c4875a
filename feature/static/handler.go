package static

import (
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Config controls how the serving root is exposed.
type Config struct {
	// Root is the absolute directory files are served from.
	Root string
	// Index is served for directory requests.
	Index string
	// Browse enables directory listings for folders without an index.
	Browse bool
}

// Handler serves files from the serving root.
type Handler struct {
	cfg    Config
	logger *zap.Logger
	serve  fasthttp.RequestHandler
}

// NewHandler creates a new static file handler.
//
// Every request opens the file again: fasthttp's handler cache is skipped,
// otherwise an edited file would be served with its old length until the
// cache entry expires.
func NewHandler(cfg Config, logger *zap.Logger) *Handler {
	if cfg.Index == "" {
		cfg.Index = "index.html"
	}

	fs := &fasthttp.FS{
		Root:               cfg.Root,
		IndexNames:         []string{cfg.Index},
		GenerateIndexPages: cfg.Browse,
		AcceptByteRange:    true,
		Compress:           false,
		SkipCache:          true,
		PathNotFound: func(ctx *fasthttp.RequestCtx) {
			ctx.Response.SetStatusCode(fiber.StatusNotFound)
		},
	}

	return &Handler{cfg: cfg, logger: logger, serve: fs.NewRequestHandler()}
}

// RegisterRoutes mounts the serving root at "/".
//
// Paths are normalised by fasthttp before lookup, so "..", including its
// percent-encoded forms, can never leave the root. Misses fall through to
// the next handler, which ends in fiber's 404.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	h.logger.Debug("Mounting serving root",
		zap.String("root", h.cfg.Root),
		zap.String("index", h.cfg.Index),
		zap.Bool("browse", h.cfg.Browse),
	)

	app.Get("/*", h.ServeFile)
}

// ServeFile answers GET and HEAD requests from the serving root.
func (h *Handler) ServeFile(c *fiber.Ctx) error {
	h.serve(c.Context())

	status := c.Response().StatusCode()
	if status != fiber.StatusNotFound && status != fiber.StatusForbidden {
		return nil
	}

	// Leave no trace of the miss for the next handler.
	c.Context().SetContentType("")
	c.Response().SetStatusCode(fiber.StatusOK)
	c.Response().SetBodyString("")
	return c.Next()
}
