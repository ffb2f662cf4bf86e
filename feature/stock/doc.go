// Package stock exposes stock synchronization over HTTP.
//
// # Routes
//
//   - POST /stock/sync: runs one sync and returns the report. Responds 409
//     while another run is active and 502 when Odoo cannot be reached.
//     dry_run=true fetches quantities without updating WooCommerce.
//   - GET /stock/status: the last report kept in memory, 404 before the first run.
//   - GET /stock/mapping: the product mapping as currently configured.
//
// Runs are serialized by the Service; items inside a run stay sequential.
package stock
