// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting every route.
//   - rayid: assigns each request a RayID, stored in the context and echoed
//     in the X-Ray-ID response header for tracing.
//
// RayID must be registered first so every later log line can carry it.
package middleware
