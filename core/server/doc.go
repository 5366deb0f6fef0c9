// Package server holds the HTTP server configuration.
//
// The serve command starts a Fiber application listening on Config.Address().
// When an API key is configured every route except /health requires it
// (see core/middleware/auth).
package server
