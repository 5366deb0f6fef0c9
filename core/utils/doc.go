// Package utils provides common utility functions for the dtl-import application.
// It includes helpers for converting loosely typed values decoded from YAML and
// JSON documents that don't fit into domain-specific packages.
package utils
