// Package loader provides the feature registry of the dev server.
//
// Each feature implements the Feature interface and mounts its handlers on
// the fiber application when loaded.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Features load in registration order, which matters because the static file
// feature falls through to the next handler when a path is not found.
package loader
