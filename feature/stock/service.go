package stock

import (
	"context"
	"errors"
	"sync"
	"time"

	"stock-sync/core/mapping"
	"stock-sync/core/reconcile"

	"go.uber.org/zap"
)

// ErrRunInProgress is returned when a sync is requested while another is running.
var ErrRunInProgress = errors.New("a sync run is already in progress")

// Service triggers sync runs and keeps the last report in memory.
type Service struct {
	mappings reconcile.MappingLoader
	source   reconcile.Source
	sink     reconcile.Sink
	logger   *zap.Logger
	timeout  time.Duration

	running sync.Mutex

	mu       sync.RWMutex
	last     *reconcile.Report
	lastRun  time.Time
	finished time.Time
}

// NewService creates a new stock service. A zero timeout leaves runs unbounded.
func NewService(mappings reconcile.MappingLoader, source reconcile.Source, sink reconcile.Sink, logger *zap.Logger, timeout time.Duration) *Service {
	return &Service{
		mappings: mappings,
		source:   source,
		sink:     sink,
		logger:   logger,
		timeout:  timeout,
	}
}

// RunSync executes one run. It fails fast with ErrRunInProgress instead of
// queueing behind an active run.
func (s *Service) RunSync(ctx context.Context, opts reconcile.Options) (*reconcile.Report, error) {
	if !s.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.running.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	started := time.Now()
	engine := reconcile.NewEngine(s.mappings, s.source, s.sink, s.logger, opts)
	report, err := engine.Run(ctx)

	s.mu.Lock()
	s.last = report
	s.lastRun = started
	s.finished = time.Now()
	s.mu.Unlock()

	return report, err
}

// Status describes the most recent run.
type Status struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Report     *reconcile.Report `json:"report"`
}

// LastStatus returns the most recent run, or false when nothing has run yet.
func (s *Service) LastStatus() (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Status{}, false
	}
	return Status{StartedAt: s.lastRun, FinishedAt: s.finished, Report: s.last}, true
}

// IsRunning reports whether a run is active.
func (s *Service) IsRunning() bool {
	if s.running.TryLock() {
		s.running.Unlock()
		return false
	}
	return true
}

// Mapping loads the current product mapping.
func (s *Service) Mapping(ctx context.Context) []mapping.Entry {
	entries := s.mappings.Load(ctx).Entries()
	if entries == nil {
		return []mapping.Entry{}
	}
	return entries
}
