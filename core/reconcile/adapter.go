package reconcile

import (
	"context"

	"stock-sync/core/mapping"
)

// Source is the inventory system of record, queried read-only.
type Source interface {
	// Connect establishes the session used by every later lookup.
	// Any returned error is terminal for the run.
	Connect(ctx context.Context) error

	// FetchQuantity looks up one product by barcode. Faults are reported
	// through the outcome, never as a panic.
	FetchQuantity(ctx context.Context, sourceKey string) FetchResult
}

// Sink is the storefront whose stock fields are overwritten.
type Sink interface {
	// PushQuantity sets the absolute stock quantity of one product.
	// Every failure is classified in the returned UpdateResult.
	PushQuantity(ctx context.Context, sinkID int64, quantity float64, displayName string) UpdateResult
}

// MappingLoader supplies the mapping for a run. It never fails; problems
// degrade to an empty mapping.
type MappingLoader interface {
	Load(ctx context.Context) *mapping.Mapping
}

// StaticMapping adapts an already-loaded mapping to MappingLoader.
type StaticMapping struct {
	Mapping *mapping.Mapping
}

// Load returns the wrapped mapping, or an empty one if it is nil.
func (s StaticMapping) Load(context.Context) *mapping.Mapping {
	if s.Mapping == nil {
		return mapping.Empty()
	}
	return s.Mapping
}
