// Package mapping provides the identifier table that links Source products
// (keyed by barcode) to Sink products (keyed by numeric id).
//
// A Mapping is loaded once per run and never mutated. Iteration order is the
// order in which keys appear in the backing document, which is also the order
// in which a run fetches and pushes items.
//
// # Sources
//
//   - file: a local JSON object (or YAML map) such as {"ABC123": "55"}
//   - storage: the same document stored as an object in the S3/MinIO bucket
//   - database: rows of the product_mappings table, ordered by primary key
//
// Sink ids may be strings or numbers; they are validated once at load time and
// entries that do not hold a positive integer are skipped with a warning.
//
// # Usage
//
//	loader := mapping.NewLoader(cfg.Mapping, log, mapping.WithStorage(client, cfg.Storage.Bucket))
//	m := loader.Load(ctx) // never nil, empty on any failure
//	for e := range m.All() {
//	    fmt.Println(e.SourceKey, e.SinkID)
//	}
package mapping
