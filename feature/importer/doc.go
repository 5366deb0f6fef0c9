// Package importer sequences a full import of the device-type library into NetBox.
//
// A run updates the library checkout, reads the NetBox version to decide whether
// module types are supported, loads the catalog and hands it to the reconcile engine
// in dependency order:
//
//	manufacturers -> device roles -> device types
//	manufacturers (module vendors) -> module types   (NetBox >= 3.2)
//
// The resulting Summary is logged and optionally recorded in the run history and
// archived as JSON in an object storage bucket.
//
// The Feature exposes POST /sync (optionally ?dry_run=true), GET /check and GET /archive.
// Concurrent /sync requests of the same mode share one run.
package importer
