// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a human-friendly console
// encoding for interactive runs and JSON for scheduled jobs and log shipping.
//
// # Verbosity
//
// Per-entity decisions of the importer ("exists", "queued", "created") are logged
// at debug level. Run summaries and remote errors are logged at info and error.
// The --verbose flag of the CLI forces the debug level.
//
// # Context Awareness
//
// When running the HTTP trigger server, WithRayID extracts the RayID from a Fiber
// context and attaches it to the log entry so that all logs of one request correlate.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Import started")
package logger
