// Package config provides configuration management for stock-sync.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from `default:` struct tags on each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Odoo: ODOO_URL, ODOO_DB, ODOO_USERNAME (or ODOO_USER), ODOO_PASSWORD, ODOO_LOCATION_ID
//   - WooCommerce: WC_URL, WC_CONSUMER_KEY, WC_CONSUMER_SECRET, WC_TIMEOUT_SECONDS
//   - Mapping: MAPPING_SOURCE (file, storage, database), MAPPING_PATH, MAPPING_OBJECT
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL/SQLite connection details for the database mapping source
//   - Storage: S3/MinIO credentials and bucket for the storage mapping source
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Odoo.URL)
package config
