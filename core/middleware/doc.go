// Package middleware groups the HTTP middleware of the serve command.
//
// # Components
//
//   - auth: rejects requests without the configured X-API-Key header.
//   - rayid: assigns every request a ray id (UUID), stores it in the Fiber locals
//     for logger.WithRayID and echoes it in the X-Ray-ID response header.
//
// rayid is registered first so every later log line carries the id.
package middleware
