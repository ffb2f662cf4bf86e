// Package server holds the HTTP server configuration.
//
// The HTTP server is optional: stock-sync normally runs one sync from the
// command line and exits. When started with `stock-sync start`, it exposes the
// stock feature so a run can be triggered remotely.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting every route,
// and the timeout applied to HTTP-triggered runs.
package server
