// Package netbox provides a small client for the NetBox REST API.
//
// Only the operations the importer needs are exposed through the Client interface:
// paginated listing, bulk creation, multipart image upload for device types and
// version discovery. The interface keeps the reconciliation engine independent of
// HTTP so it can be tested against an in-memory fake (see core/netbox/mocks).
//
// # Authentication
//
// Requests carry "Authorization: Token <token>", or "Bearer <token>" for NetBox v2
// tokens (prefixed "nbt_"). TLS certificate verification can be disabled with
// IGNORE_SSL_ERRORS for lab instances with self-signed certificates.
//
// # Errors
//
// Any non-2xx answer is returned as a *RequestError carrying the status code and
// the server's error payload. No request is retried.
//
// # Capabilities
//
// ParseCapabilities turns the reported version (API-Version header) into a
// Capabilities value; module types are supported from NetBox 3.2 on.
package netbox
