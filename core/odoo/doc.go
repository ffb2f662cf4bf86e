// Package odoo implements the Source side of a stock sync: it reads product
// quantities from Odoo over XML-RPC.
//
// # Connection
//
// Connect performs the two-step handshake against /xmlrpc/2/common:
//   - version(): diagnostic only, the server version is logged
//   - authenticate(db, user, password, {}): returns the user id, false on bad credentials
//
// Missing settings are reported as a *MissingConfigError before any network I/O.
//
// # Lookups
//
// FetchQuantity calls execute_kw on /xmlrpc/2/object with a search_read on
// product.product filtered by barcode (limit 1). The configured stock location
// is passed in the call context, so qty_available reflects that location only.
//
// # Usage
//
//	client := odoo.NewClient(cfg.Odoo, log)
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	defer client.Close()
//	res := client.FetchQuantity(ctx, "ABC123")
package odoo
