package cmd

import (
	"context"
	"testing"

	"stock-sync/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	connected bool
}

func (s *stubSource) Connect(ctx context.Context) error {
	s.connected = true
	return nil
}

func (s *stubSource) FetchQuantity(ctx context.Context, key string) reconcile.FetchResult {
	return reconcile.FetchResult{Outcome: reconcile.FetchNotFound}
}

type stubSink struct {
	calls int
}

func (s *stubSink) PushQuantity(ctx context.Context, sinkID int64, qty float64, name string) reconcile.UpdateResult {
	s.calls++
	return reconcile.UpdateResult{SinkID: sinkID, Outcome: reconcile.UpdateSuccess}
}

func TestNewApp_UnreachableMappingDatabase(t *testing.T) {
	t.Setenv("MAPPING_SOURCE", "database")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("DATABASE_HOST", "127.0.0.1")
	t.Setenv("DATABASE_PORT", "1")
	t.Setenv("DATABASE_TIMEOUT_SECONDS", "1")
	t.Setenv("LOG_LEVEL", "fatal")

	a, err := newApp()
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.db)

	ctx := context.Background()
	assert.Zero(t, a.mappingLoader().Load(ctx).Len())

	source := &stubSource{}
	sink := &stubSink{}
	engine := reconcile.NewEngine(a.mappingLoader(), source, sink, zap.NewNop(), reconcile.Options{})

	report, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.True(t, source.connected)
	assert.Equal(t, reconcile.StateDone, report.State)
	assert.Zero(t, report.Summary.TotalMapped)
	assert.Zero(t, sink.calls)
}

func TestNewApp_UnknownMappingSource(t *testing.T) {
	t.Setenv("MAPPING_SOURCE", "ftp")
	t.Setenv("LOG_LEVEL", "fatal")

	a, err := newApp()
	require.Error(t, err)
	assert.Nil(t, a)
	assert.Contains(t, err.Error(), "ftp")
}

func TestNewApp_FileSourceOpensNoDatabase(t *testing.T) {
	t.Setenv("MAPPING_SOURCE", "file")
	t.Setenv("DATABASE_ENABLED", "true")
	t.Setenv("DATABASE_HOST", "127.0.0.1")
	t.Setenv("DATABASE_PORT", "1")
	t.Setenv("LOG_LEVEL", "fatal")

	a, err := newApp()
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.db)
	assert.Nil(t, a.storage)
}
