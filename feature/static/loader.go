package static

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	handler *Handler
}

// NewFeature creates the static file feature.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	return &Feature{cfg: cfg, handler: NewHandler(cfg, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled reports whether a serving root is configured.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Root != ""
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
