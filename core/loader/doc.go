// Package loader provides the feature loading system of the HTTP server.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registered features and LoadAll registers the routes of
// the enabled ones. The serve command registers the importer (/sync) and the
// history (/runs) features; history is disabled when no database is configured.
package loader
