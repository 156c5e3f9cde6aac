// Package service loads the CSV snapshots once at startup and serves them
// read-only to the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/statsboard/internal/adapters/repository"
	"github.com/okian/statsboard/internal/domain/board"
	"github.com/okian/statsboard/internal/domain/dataset"
	"github.com/okian/statsboard/pkg/logger"
	"github.com/okian/statsboard/pkg/metrics"
)

// DatasetInfo describes one loaded snapshot.
type DatasetInfo struct {
	Sport   string   `json:"sport"`
	Path    string   `json:"path"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// Service implements the dashboard's read dependencies.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	catalog *board.Catalog
	sports  []string

	datasets map[string]*dataset.Table
	infos    map[string]DatasetInfo
	missing  map[string]string

	started  bool
	loadedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSports limits loading to the given sport keys.
func WithSports(sports ...string) Option {
	return func(s *Service) {
		if len(sports) > 0 {
			s.sports = append([]string(nil), sports...)
		}
	}
}

// WithCatalog replaces the board catalog.
func WithCatalog(c *board.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// New constructs a Service reading from store.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		catalog:  board.NewCatalog(),
		datasets: make(map[string]*dataset.Table),
		infos:    make(map[string]DatasetInfo),
		missing:  make(map[string]string),
	}
	for _, b := range s.catalog.Boards() {
		s.sports = append(s.sports, b.Sport)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot is the outcome of loading one sport.
type snapshot struct {
	sport   string
	path    string
	table   *dataset.Table
	missing string
}

// Start reads every sport's snapshot in parallel. A missing or unconfigured
// snapshot is logged and leaves the sport without data; any other read error
// aborts.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	loaded := make([]snapshot, len(s.sports))
	g, gctx := errgroup.WithContext(ctx)
	for i, sport := range s.sports {
		g.Go(func() error {
			snap, err := s.load(gctx, sport)
			loaded[i] = snap
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, snap := range loaded {
		if snap.table == nil {
			s.missing[snap.sport] = snap.missing
			if snap.path != "" {
				s.logger.Warn(ctx, "snapshot missing", logger.String("sport", snap.sport), logger.String("path", snap.path))
				metrics.UpdateDatasetRows(snap.sport, 0)
			}
			continue
		}
		t := snap.table
		s.datasets[snap.sport] = t
		s.infos[snap.sport] = DatasetInfo{Sport: snap.sport, Path: snap.path, Rows: t.Len(), Columns: t.Columns()}
		metrics.UpdateDatasetRows(snap.sport, t.Len())
		s.logger.Info(ctx, "snapshot loaded",
			logger.String("sport", snap.sport),
			logger.String("path", snap.path),
			logger.Int("rows", t.Len()),
			logger.Int("columns", len(t.Columns())))
	}

	s.started = true
	s.loadedAt = time.Now()
	return nil
}

func (s *Service) load(ctx context.Context, sport string) (snapshot, error) {
	snap := snapshot{sport: sport}
	path, err := s.store.Path(sport)
	if errors.Is(err, repository.ErrUnknownSport) {
		snap.missing = "no snapshot configured"
		return snap, nil
	}
	if err != nil {
		return snap, err
	}
	snap.path = path

	t, err := s.store.Load(ctx, sport)
	if errors.Is(err, repository.ErrNotFound) {
		snap.missing = "snapshot not found; run ingest " + sport
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("load %s: %w", sport, err)
	}
	snap.table = t
	return snap, nil
}

// Stop marks the service stopped. Loaded tables stay readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Catalog returns the board definitions.
func (s *Service) Catalog() *board.Catalog { return s.catalog }

// Datasets lists the loaded snapshots sorted by sport.
func (s *Service) Datasets(_ context.Context) []DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DatasetInfo, 0, len(s.infos))
	for _, info := range s.infos {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sport < out[j].Sport })
	return out
}

// Dataset returns the loaded table of sport. The table is shared; callers
// must not modify it.
func (s *Service) Dataset(_ context.Context, sport string) (*dataset.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.datasets[sport]; ok {
		return t, nil
	}
	if reason, ok := s.missing[sport]; ok {
		return nil, fmt.Errorf("%w: %s: %s", ErrNotLoaded, sport, reason)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSport, sport)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make(map[string]int, len(s.infos))
	for sport, info := range s.infos {
		rows[sport] = info.Rows
	}
	missing := make(map[string]string, len(s.missing))
	for sport, reason := range s.missing {
		missing[sport] = reason
	}
	stats := map[string]interface{}{
		"started": s.started,
		"rows":    rows,
		"missing": missing,
	}
	if s.started {
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
	}
	return stats
}
