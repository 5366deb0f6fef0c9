// Package config provides configuration management for the importer.
//
// It loads an optional .env file with godotenv and then reads environment variables
// through Viper. Defaults come from the `default` struct tags of every section and
// nested keys map to upper-case variables (netbox.url -> NETBOX_URL).
//
// # Configuration Structure
//
//   - NetBox: API URL, token, TLS verification, timeout and page size
//   - Repo: device-type library git URL, branch and checkout path
//   - Catalog: vendor (comma separated) and slug (space separated) filters
//   - Log: logging level and format
//   - Database: optional run history store (mysql or sqlite)
//   - Storage: optional S3/MinIO archive of run summaries
//   - Server: HTTP port and API key for the serve command
//
// IGNORE_SSL_ERRORS, VENDORS and SLUGS are still honoured as aliases of the
// prefixed variables.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
