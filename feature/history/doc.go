// Package history keeps a record of import runs in a SQL database.
//
// Runs are stored in the import_runs table through GORM, so both MySQL and SQLite
// deployments work. Migrate creates the table and then verifies its columns, which
// catches tables created by hand with an older layout.
//
// Repository implements importer.Recorder. The Feature exposes GET /runs and
// GET /runs/:id when a database is configured.
package history
