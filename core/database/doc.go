// Package database handles the connection to the run history database.
//
// It wraps GORM and selects the dialector from the configuration: MySQL for shared
// deployments, SQLite (a file path or ":memory:") for a single host or tests.
//
// # Connect
//
// Connect opens the database, applies pool settings and pings it within the configured
// timeout. History is optional, callers should log a failure and continue without it.
//
// # Schema Inspection
//
// TableColumns and MissingColumns report how an existing table compares with the columns
// the history store expects. The check command uses them to flag an outdated schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("History disabled", zap.Error(err))
//	}
package database
