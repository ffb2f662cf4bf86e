package stock

import (
	"context"
	"errors"
	"sync/atomic"

	"stock-sync/core/mapping"
	"stock-sync/core/reconcile"

	"go.uber.org/zap"
)

// fakeSource serves quantities from a map. Connect blocks on gate when set.
type fakeSource struct {
	stock      map[string]float64
	connectErr error
	entered    chan struct{}
	gate       chan struct{}
}

func (f *fakeSource) Connect(ctx context.Context) error {
	if f.entered != nil {
		close(f.entered)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.connectErr
}

func (f *fakeSource) FetchQuantity(ctx context.Context, key string) reconcile.FetchResult {
	qty, ok := f.stock[key]
	if !ok {
		return reconcile.FetchResult{Outcome: reconcile.FetchNotFound}
	}
	return reconcile.FetchResult{
		Outcome: reconcile.FetchFound,
		Record:  reconcile.StockRecord{SourceKey: key, DisplayName: "Product " + key, Quantity: qty},
	}
}

// fakeSink accepts every push except product ids listed in missing.
type fakeSink struct {
	missing map[int64]bool
	calls   atomic.Int32
}

func (f *fakeSink) PushQuantity(ctx context.Context, sinkID int64, qty float64, name string) reconcile.UpdateResult {
	f.calls.Add(1)
	res := reconcile.UpdateResult{SinkID: sinkID, DisplayName: name, Quantity: qty, Outcome: reconcile.UpdateSuccess, StatusCode: 200}
	if f.missing[sinkID] {
		res.Outcome = reconcile.UpdateNotFound
		res.StatusCode = 404
		res.Error = "product not found"
	}
	return res
}

func mustMapping(doc string) *mapping.Mapping {
	m, err := mapping.Parse([]byte(doc), mapping.FormatJSON, zap.NewNop())
	if err != nil {
		panic(err)
	}
	return m
}

var errRefused = errors.New("connection refused")
