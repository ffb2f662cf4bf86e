// Package logger provides a structured logging facility based on Zap.
//
// Console encoding is the default because stock-sync mostly runs as a CLI job
// (cron, CI); json encoding suits log shipping when the HTTP server is used.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so all logs related to a specific request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Stock sync started", zap.Int("mapped_products", 12))
package logger
