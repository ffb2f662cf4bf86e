// Package transport builds HTTP transports with bounded timeouts shared by the
// storage, Odoo and WooCommerce clients.
package transport
