package reconcile

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"stock-sync/core/mapping"

	"go.uber.org/zap"
)

// ErrConnectFailed wraps any Source connection failure. It is the only error a run returns.
var ErrConnectFailed = errors.New("source connection failed")

// Engine runs one reconciliation: load mapping, connect, fetch, push, summarize.
// Items are processed strictly one at a time in mapping order.
type Engine struct {
	mappings MappingLoader
	source   Source
	sink     Sink
	logger   *zap.Logger
	opts     Options
}

// NewEngine creates an engine from its collaborators.
func NewEngine(mappings MappingLoader, source Source, sink Sink, logger *zap.Logger, opts Options) *Engine {
	return &Engine{
		mappings: mappings,
		source:   source,
		sink:     sink,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes a full run. The returned report is never nil. An error is
// returned only when the Source connection fails, in which case nothing was
// fetched or pushed. Per-item failures are counted in the summary instead.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		State:   StateInit,
		DryRun:  e.opts.DryRun,
		Results: []UpdateResult{},
	}

	m := e.mappings.Load(ctx)
	report.Summary.TotalMapped = m.Len()

	e.logger.Info("Odoo to WooCommerce stock sync started",
		zap.Time("date", time.Now()),
		zap.Int("mapped_products", m.Len()),
		zap.Bool("dry_run", e.opts.DryRun),
	)
	if m.Len() == 0 {
		e.logger.Warn("Product mapping is empty")
	}

	if err := e.source.Connect(ctx); err != nil {
		report.State = StateFailed
		e.logger.Error("Odoo connection failed", zap.Error(err))
		return report, fmt.Errorf("%w: %w", ErrConnectFailed, err)
	}
	report.State = StateConnected

	report.State = StateFetching
	e.logger.Info("Fetching stock from Odoo", zap.Int("count", m.Len()))
	items := slices.Collect(FetchAll(ctx, e.source, m, e.logger))
	report.Summary.TotalFetched = len(items)
	report.Summary.Skipped = m.Len() - len(items)

	if len(items) == 0 {
		e.logger.Warn("No products to synchronize")
		report.State = StateDone
		return report, nil
	}

	report.State = StatePushing
	e.logger.Info("Updating stock in WooCommerce", zap.Int("count", len(items)))
	for _, item := range items {
		result := e.push(ctx, item)
		switch result.Outcome {
		case UpdateSuccess:
			report.Summary.TotalUpdated++
		case UpdateSkipped:
		default:
			report.Summary.TotalErrors++
		}
		report.Results = append(report.Results, result)
	}

	report.State = StateDone
	e.logSummary(report.Summary)
	return report, nil
}

func (e *Engine) push(ctx context.Context, item Item) UpdateResult {
	rec := item.Record
	e.logger.Info("Product",
		zap.String("barcode", rec.SourceKey),
		zap.String("name", rec.DisplayName),
		zap.Float64("quantity", rec.Quantity),
		zap.Int64("wc_id", item.SinkID),
	)

	if e.opts.DryRun {
		return UpdateResult{
			SinkID:      item.SinkID,
			SourceKey:   rec.SourceKey,
			DisplayName: rec.DisplayName,
			Quantity:    rec.Quantity,
			Outcome:     UpdateSkipped,
		}
	}

	result := e.sink.PushQuantity(ctx, item.SinkID, rec.Quantity, rec.DisplayName)
	result.SourceKey = rec.SourceKey
	return result
}

func (e *Engine) logSummary(s RunSummary) {
	fields := []zap.Field{
		zap.Int("mapped", s.TotalMapped),
		zap.Int("fetched", s.TotalFetched),
		zap.Int("updated", s.TotalUpdated),
		zap.Int("skipped", s.Skipped),
	}
	if s.TotalErrors > 0 {
		e.logger.Warn("Synchronization completed with errors", append(fields, zap.Int("errors", s.TotalErrors))...)
		return
	}
	e.logger.Info("Synchronization completed", fields...)
}

// FetchAll lazily looks up every mapping entry in order. Entries that are not
// found, or whose lookup fails, are logged and omitted; iteration continues.
// Each call starts a fresh pass over the Source.
func FetchAll(ctx context.Context, source Source, m *mapping.Mapping, logger *zap.Logger) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for entry := range m.All() {
			res := source.FetchQuantity(ctx, entry.SourceKey)
			if res.Outcome != FetchFound {
				logger.Info("SKIPPED",
					zap.String("barcode", entry.SourceKey),
					zap.String("outcome", string(res.Outcome)),
				)
				continue
			}

			logger.Info("OK",
				zap.String("barcode", entry.SourceKey),
				zap.String("name", res.Record.DisplayName),
				zap.Float64("quantity", res.Record.Quantity),
				zap.Int64("wc_id", entry.SinkID),
			)
			if !yield(Item{SinkID: entry.SinkID, Record: res.Record}) {
				return
			}
		}
	}
}
