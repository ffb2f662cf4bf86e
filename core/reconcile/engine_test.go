package reconcile

import (
	"context"
	"errors"
	"slices"
	"testing"

	"stock-sync/core/mapping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockSource is a testify-backed Source.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) Connect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockSource) FetchQuantity(ctx context.Context, sourceKey string) FetchResult {
	args := m.Called(ctx, sourceKey)
	if fn, ok := args.Get(0).(func(context.Context, string) FetchResult); ok {
		return fn(ctx, sourceKey)
	}
	return args.Get(0).(FetchResult)
}

// mockSink is a testify-backed Sink.
type mockSink struct {
	mock.Mock
}

func (m *mockSink) PushQuantity(ctx context.Context, sinkID int64, quantity float64, displayName string) UpdateResult {
	args := m.Called(ctx, sinkID, quantity, displayName)
	return args.Get(0).(UpdateResult)
}

func mustMapping(t *testing.T, doc string) *mapping.Mapping {
	t.Helper()
	m, err := mapping.Parse([]byte(doc), mapping.FormatJSON, zap.NewNop())
	require.NoError(t, err)
	return m
}

func found(key, name string, qty float64) FetchResult {
	return FetchResult{
		Outcome: FetchFound,
		Record:  StockRecord{SourceKey: key, DisplayName: name, Quantity: qty},
	}
}

func success(id int64, name string, qty float64) UpdateResult {
	return UpdateResult{SinkID: id, DisplayName: name, Quantity: qty, Outcome: UpdateSuccess, StatusCode: 200}
}

// TestRun_SingleItemSuccess covers a one-entry mapping pushed successfully.
func TestRun_SingleItemSuccess(t *testing.T) {
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(nil)
	src.On("FetchQuantity", mock.Anything, "ABC123").Return(found("ABC123", "Widget", 12))

	sink := new(mockSink)
	sink.On("PushQuantity", mock.Anything, int64(55), float64(12), "Widget").Return(success(55, "Widget", 12))

	engine := NewEngine(StaticMapping{mustMapping(t, `{"ABC123": "55"}`)}, src, sink, zap.NewNop(), Options{})
	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, RunSummary{TotalMapped: 1, TotalFetched: 1, TotalUpdated: 1, TotalErrors: 0}, report.Summary)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "ABC123", report.Results[0].SourceKey)
	src.AssertExpectations(t)
	sink.AssertExpectations(t)
}

// TestRun_ConnectFailure checks that nothing is fetched or pushed after a failed connect.
func TestRun_ConnectFailure(t *testing.T) {
	authErr := errors.New("invalid Odoo credentials")
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(authErr)
	sink := new(mockSink)

	m := mustMapping(t, `{"A": 1, "B": 2, "C": 3}`)
	engine := NewEngine(StaticMapping{m}, src, sink, zap.NewNop(), Options{})
	report, err := engine.Run(context.Background())

	assert.ErrorIs(t, err, ErrConnectFailed)
	assert.ErrorIs(t, err, authErr)
	require.NotNil(t, report)
	assert.Equal(t, StateFailed, report.State)
	assert.Equal(t, 3, report.Summary.TotalMapped)
	src.AssertNotCalled(t, "FetchQuantity", mock.Anything, mock.Anything)
	sink.AssertNotCalled(t, "PushQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestRun_FetchMissIsNotAnError checks that fetch-phase misses are skipped, not counted as errors.
func TestRun_FetchMissIsNotAnError(t *testing.T) {
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(nil)
	src.On("FetchQuantity", mock.Anything, "ABC123").Return(found("ABC123", "Widget", 12))
	src.On("FetchQuantity", mock.Anything, "MISSING").Return(FetchResult{Outcome: FetchNotFound})

	sink := new(mockSink)
	sink.On("PushQuantity", mock.Anything, int64(55), float64(12), "Widget").Return(success(55, "Widget", 12))

	engine := NewEngine(StaticMapping{mustMapping(t, `{"ABC123": "55", "MISSING": "56"}`)}, src, sink, zap.NewNop(), Options{})
	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.TotalUpdated)
	assert.Equal(t, 0, report.Summary.TotalErrors)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, 1, report.Summary.TotalFetched)
	sink.AssertNumberOfCalls(t, "PushQuantity", 1)
}

// TestRun_SinkFailuresAreCountedAndIsolated checks that a 404 and other failures do not stop the batch.
func TestRun_SinkFailuresAreCountedAndIsolated(t *testing.T) {
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(nil)
	src.On("FetchQuantity", mock.Anything, "A").Return(found("A", "Alpha", 1))
	src.On("FetchQuantity", mock.Anything, "B").Return(found("B", "Beta", 2))
	src.On("FetchQuantity", mock.Anything, "C").Return(found("C", "Gamma", 3))
	src.On("FetchQuantity", mock.Anything, "D").Return(found("D", "Delta", 4))

	sink := new(mockSink)
	sink.On("PushQuantity", mock.Anything, int64(10), float64(1), "Alpha").
		Return(UpdateResult{SinkID: 10, Outcome: UpdateNotFound, StatusCode: 404})
	sink.On("PushQuantity", mock.Anything, int64(20), float64(2), "Beta").
		Return(UpdateResult{SinkID: 20, Outcome: UpdateHTTPError, StatusCode: 500})
	sink.On("PushQuantity", mock.Anything, int64(30), float64(3), "Gamma").
		Return(UpdateResult{SinkID: 30, Outcome: UpdateTransportError, Error: "timeout"})
	sink.On("PushQuantity", mock.Anything, int64(40), float64(4), "Delta").
		Return(success(40, "Delta", 4))

	engine := NewEngine(StaticMapping{mustMapping(t, `{"A": 10, "B": 20, "C": 30, "D": 40}`)}, src, sink, zap.NewNop(), Options{})
	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, 1, report.Summary.TotalUpdated)
	assert.Equal(t, 3, report.Summary.TotalErrors)

	outcomes := make([]UpdateOutcome, 0, len(report.Results))
	for _, r := range report.Results {
		outcomes = append(outcomes, r.Outcome)
	}
	assert.Equal(t, []UpdateOutcome{UpdateNotFound, UpdateHTTPError, UpdateTransportError, UpdateSuccess}, outcomes)
}

// TestRun_PushOrderFollowsMapping checks that pushes happen in mapping insertion order.
func TestRun_PushOrderFollowsMapping(t *testing.T) {
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(nil)
	src.On("FetchQuantity", mock.Anything, mock.Anything).Return(func(_ context.Context, key string) FetchResult {
		return found(key, key, 5)
	})

	var pushed []int64
	sink := new(mockSink)
	sink.On("PushQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			pushed = append(pushed, args.Get(1).(int64))
		}).
		Return(UpdateResult{Outcome: UpdateSuccess})

	engine := NewEngine(StaticMapping{mustMapping(t, `{"Z": 3, "A": 1, "M": 2}`)}, src, sink, zap.NewNop(), Options{})
	_, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 1, 2}, pushed)
}

// TestRun_NothingFetchedIsSuccess checks the Fetching -> Done edge.
func TestRun_NothingFetchedIsSuccess(t *testing.T) {
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(nil)
	src.On("FetchQuantity", mock.Anything, "A").Return(FetchResult{Outcome: FetchFailed, Err: errors.New("boom")})
	sink := new(mockSink)

	engine := NewEngine(StaticMapping{mustMapping(t, `{"A": 1}`)}, src, sink, zap.NewNop(), Options{})
	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, RunSummary{TotalMapped: 1, Skipped: 1}, report.Summary)
	sink.AssertNotCalled(t, "PushQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestRun_EmptyMapping checks that an empty mapping still connects and succeeds.
func TestRun_EmptyMapping(t *testing.T) {
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(nil)
	sink := new(mockSink)

	engine := NewEngine(StaticMapping{}, src, sink, zap.NewNop(), Options{})
	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, report.State)
	assert.Equal(t, RunSummary{}, report.Summary)
	src.AssertCalled(t, "Connect", mock.Anything)
}

// TestRun_DryRunNeverPushes checks that a dry run fetches but does not call the Sink.
func TestRun_DryRunNeverPushes(t *testing.T) {
	src := new(mockSource)
	src.On("Connect", mock.Anything).Return(nil)
	src.On("FetchQuantity", mock.Anything, "ABC123").Return(found("ABC123", "Widget", 12))
	sink := new(mockSink)

	engine := NewEngine(StaticMapping{mustMapping(t, `{"ABC123": "55"}`)}, src, sink, zap.NewNop(), Options{DryRun: true})
	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 0, report.Summary.TotalUpdated)
	assert.Equal(t, 0, report.Summary.TotalErrors)
	require.Len(t, report.Results, 1)
	assert.Equal(t, UpdateSkipped, report.Results[0].Outcome)
	assert.Equal(t, int64(55), report.Results[0].SinkID)
	sink.AssertNotCalled(t, "PushQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestFetchAll_OmitsMissesAndContinues checks that a miss does not stop iteration.
func TestFetchAll_OmitsMissesAndContinues(t *testing.T) {
	src := new(mockSource)
	src.On("FetchQuantity", mock.Anything, "A").Return(found("A", "Alpha", 1))
	src.On("FetchQuantity", mock.Anything, "K").Return(FetchResult{Outcome: FetchNotFound})
	src.On("FetchQuantity", mock.Anything, "B").Return(found("B", "Beta", 2))

	m := mustMapping(t, `{"A": 1, "K": 2, "B": 3}`)
	items := slices.Collect(FetchAll(context.Background(), src, m, zap.NewNop()))

	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].SinkID)
	assert.Equal(t, "A", items[0].Record.SourceKey)
	assert.Equal(t, int64(3), items[1].SinkID)
	assert.Equal(t, "B", items[1].Record.SourceKey)
	src.AssertNumberOfCalls(t, "FetchQuantity", 3)
}

// TestFetchAll_IsLazy checks that breaking out of the loop stops further lookups.
func TestFetchAll_IsLazy(t *testing.T) {
	src := new(mockSource)
	src.On("FetchQuantity", mock.Anything, "A").Return(found("A", "Alpha", 1))

	m := mustMapping(t, `{"A": 1, "B": 2}`)
	for item := range FetchAll(context.Background(), src, m, zap.NewNop()) {
		assert.Equal(t, "A", item.Record.SourceKey)
		break
	}
	src.AssertNumberOfCalls(t, "FetchQuantity", 1)
}
