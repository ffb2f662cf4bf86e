package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// SyncTimeoutSeconds bounds a sync run triggered over HTTP.
	SyncTimeoutSeconds int `mapstructure:"sync_timeout_seconds" default:"600"`
}

// IsAuthEnabled reports whether requests must carry the API key.
func (c Config) IsAuthEnabled() bool {
	return c.ApiKey != ""
}

// SyncTimeout returns the bound for an HTTP-triggered run.
func (c Config) SyncTimeout() time.Duration {
	if c.SyncTimeoutSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.SyncTimeoutSeconds) * time.Second
}
