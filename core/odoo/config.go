package odoo

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultLocationID is the stock location used when ODOO_LOCATION_ID is unset or invalid.
const DefaultLocationID = 8

// Config holds configuration for the Odoo connection.
type Config struct {
	// URL is the Odoo base URL, e.g. https://erp.example.com.
	URL string `mapstructure:"url" default:""`
	// DB is the Odoo database (tenant) name.
	DB string `mapstructure:"db" default:""`
	// Username is the login used for authentication. ODOO_USER is accepted as an alias.
	Username string `mapstructure:"username" default:""`
	// Password is the password or API key.
	Password string `mapstructure:"password" default:""`
	// LocationID is the stock location whose quantity is reported as available.
	LocationID string `mapstructure:"location_id" default:"8"`
	// TimeoutSeconds bounds each RPC call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Missing returns the environment variables required to connect that are empty.
func (c Config) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.URL) == "" {
		missing = append(missing, "ODOO_URL")
	}
	if strings.TrimSpace(c.DB) == "" {
		missing = append(missing, "ODOO_DB")
	}
	if strings.TrimSpace(c.Username) == "" {
		missing = append(missing, "ODOO_USERNAME/ODOO_USER")
	}
	if c.Password == "" {
		missing = append(missing, "ODOO_PASSWORD")
	}
	return missing
}

// ParseLocationID returns the configured stock location, falling back to
// DefaultLocationID with a warning when the value is not an integer.
func (c Config) ParseLocationID(logger *zap.Logger) int {
	raw := strings.TrimSpace(c.LocationID)
	if raw == "" {
		return DefaultLocationID
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Invalid ODOO_LOCATION_ID value - using default",
			zap.String("value", raw),
			zap.Int("default", DefaultLocationID),
		)
		return DefaultLocationID
	}
	return id
}
