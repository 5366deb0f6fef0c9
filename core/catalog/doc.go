// Package catalog reads the NetBox device-type library.
//
// The library is a directory tree of YAML files:
//
//	device-types/<Vendor>/<model>.yaml
//	module-types/<Vendor>/<model>.yaml
//	device-roles/<role>.yaml
//	elevation-images/<Vendor>/<slug>.<front|rear>.<ext>
//
// Loader.Load discovers vendor folders (skipping "Testing"), parses every file into a
// Record and applies the vendor and slug filters. Vendor filtering compares folder
// names case-insensitively. Slug filtering is an exact, case-insensitive match on
// the record slug; module types have no slug and are matched on Slugify(model).
//
// A Record keeps the top-level attributes of the file as decoded by gopkg.in/yaml.v3
// and splits the sub-entity lists (interfaces, power-ports, ...) into Components
// keyed by Kind. Files that cannot be parsed are logged and skipped.
package catalog
