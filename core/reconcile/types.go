package reconcile

// StockRecord is the quantity of one product as reported by the Source.
type StockRecord struct {
	// SourceKey is the barcode the record was looked up by.
	SourceKey string `json:"barcode"`

	// SourceID is the Source's internal product id.
	SourceID int64 `json:"source_id"`

	// DisplayName is the product name on the Source side.
	DisplayName string `json:"name"`

	// Quantity is the available quantity at the configured stock location.
	Quantity float64 `json:"quantity"`
}

// FetchOutcome classifies a single Source lookup.
type FetchOutcome string

const (
	// FetchFound means exactly one product matched the barcode.
	FetchFound FetchOutcome = "found"
	// FetchNotFound means no product matched the barcode.
	FetchNotFound FetchOutcome = "not_found"
	// FetchFailed means the lookup could not be completed (transport or RPC fault).
	FetchFailed FetchOutcome = "failed"
)

// FetchResult is the outcome of one Source lookup.
type FetchResult struct {
	Record  StockRecord
	Outcome FetchOutcome
	Err     error
}

// Item is a fetched record paired with the Sink product it maps to.
type Item struct {
	SinkID int64
	Record StockRecord
}

// UpdateOutcome classifies a single Sink push.
type UpdateOutcome string

const (
	// UpdateSuccess is any 2xx response.
	UpdateSuccess UpdateOutcome = "success"
	// UpdateNotFound is a 404: the product does not exist on the Sink.
	UpdateNotFound UpdateOutcome = "not_found"
	// UpdateHTTPError is any other non-2xx response.
	UpdateHTTPError UpdateOutcome = "http_error"
	// UpdateTransportError is a failure before a response was received.
	UpdateTransportError UpdateOutcome = "transport_error"
	// UpdateSkipped marks items that were not pushed because of a dry run.
	UpdateSkipped UpdateOutcome = "skipped"
)

// UpdateResult is the outcome of one Sink push.
type UpdateResult struct {
	SinkID      int64         `json:"wc_id"`
	SourceKey   string        `json:"barcode,omitempty"`
	DisplayName string        `json:"name"`
	Quantity    float64       `json:"quantity"`
	Outcome     UpdateOutcome `json:"outcome"`
	StatusCode  int           `json:"status_code,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// State is the position of a run in its lifecycle.
type State string

const (
	StateInit      State = "init"
	StateConnected State = "connected"
	StateFetching  State = "fetching"
	StatePushing   State = "pushing"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// RunSummary provides aggregate counts for a run.
type RunSummary struct {
	// TotalMapped is the number of mapping entries.
	TotalMapped int `json:"total_mapped"`

	// TotalFetched is the number of records fetched from the Source.
	TotalFetched int `json:"total_fetched"`

	// TotalUpdated is the number of successful Sink pushes.
	TotalUpdated int `json:"total_updated"`

	// TotalErrors is the number of failed Sink pushes (including 404s).
	TotalErrors int `json:"total_errors"`

	// Skipped is the number of mapping entries dropped during fetch.
	// These are not errors.
	Skipped int `json:"skipped"`
}

// Report is the full result of a run.
type Report struct {
	State   State          `json:"state"`
	DryRun  bool           `json:"dry_run"`
	Summary RunSummary     `json:"summary"`
	Results []UpdateResult `json:"results"`
}

// Options controls run behavior.
type Options struct {
	// DryRun fetches quantities but never calls the Sink.
	DryRun bool
}
