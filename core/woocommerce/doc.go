// Package woocommerce implements the Sink side of a stock sync: it overwrites
// product stock through the WooCommerce REST API (wc/v3).
//
// Each update is a single PUT /wp-json/wc/v3/products/{id} with Basic
// authentication derived from the consumer key and secret. The body always
// turns stock management on and sets stock_status from the quantity.
//
// Responses are classified as success (2xx), not found (404), HTTP error
// (any other status) or transport error. Nothing is retried.
package woocommerce
