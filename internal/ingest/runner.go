// Package ingest runs one sport's paginated download into a CSV snapshot.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/statsboard/internal/adapters/repository"
	"github.com/okian/statsboard/internal/adapters/upstream"
	"github.com/okian/statsboard/internal/domain/dataset"
	"github.com/okian/statsboard/internal/sources"
	"github.com/okian/statsboard/pkg/logger"
	"github.com/okian/statsboard/pkg/metrics"
)

// Failure kinds reported per skipped page.
const (
	KindUpstreamUnavailable = metrics.OutcomeUpstreamUnavailable
	KindMalformedResponse   = metrics.OutcomeMalformedResponse
)

// PageFailure records a skipped page.
type PageFailure struct {
	Label string
	URL   string
	Kind  string
	Err   error
}

// Result summarizes a run.
type Result struct {
	RunID       string
	Sport       string
	PagesOK     int
	PagesFailed int
	Rows        int
	// NullsImputed counts cells replaced by zero before writing.
	NullsImputed int
	// Path is empty when nothing was written.
	Path     string
	Table    *dataset.Table
	Failures []PageFailure
	Duration time.Duration
}

// Empty reports whether the run produced no rows, either because no page
// succeeded or because every page that did was empty.
func (r Result) Empty() bool { return r.PagesOK == 0 || r.Rows == 0 }

// Runner fetches every page of a source, in order, one at a time.
type Runner struct {
	fetcher upstream.Fetcher
	store   repository.Store
	logger  logger.Logger
	now     func() time.Time
	runID   func() string
}

// NewRunner creates a runner reading through fetcher and writing to store.
func NewRunner(fetcher upstream.Fetcher, store repository.Store, opts ...Option) *Runner {
	r := &Runner{
		fetcher: fetcher,
		store:   store,
		logger:  logger.Get().Named("ingest"),
		now:     time.Now,
		runID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run downloads every page of src. A failed page is logged and skipped;
// only a cancelled context or a failed write is returned as an error. When
// no page succeeds the result is empty and the existing snapshot is kept.
func (r *Runner) Run(ctx context.Context, src sources.Source) (Result, error) {
	if src == nil {
		return Result{}, ErrNilSource
	}
	start := r.now()
	res := Result{RunID: r.runID(), Sport: src.Sport()}
	log := r.logger.With(logger.String("run_id", res.RunID), logger.String("sport", res.Sport))

	pages := src.Pages()
	log.Info(ctx, "ingestion started", logger.Int("pages", len(pages)))

	tables := make([]*dataset.Table, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("ingest %s: %w", res.Sport, err)
		}
		t, err := r.fetchPage(ctx, src, page)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, fmt.Errorf("ingest %s: %w", res.Sport, ctxErr)
			}
			kind := classify(err)
			res.PagesFailed++
			res.Failures = append(res.Failures, PageFailure{Label: page.Label, URL: page.URL, Kind: kind, Err: err})
			recordPage(ctx, log, res.Sport, kind)
			log.Warn(ctx, "page skipped",
				logger.String("page", page.Label),
				logger.String("kind", kind),
				logger.Error(err))
			continue
		}
		res.PagesOK++
		recordPage(ctx, log, res.Sport, metrics.OutcomeOK)
		log.Debug(ctx, "page fetched", logger.String("page", page.Label), logger.Int("rows", t.Len()))
		tables = append(tables, t)
	}

	if len(tables) == 0 {
		res.Table = dataset.Empty()
		r.finish(&res, start)
		log.Warn(ctx, "no pages fetched, snapshot left untouched", logger.Int("failed", res.PagesFailed))
		return res, nil
	}

	merged := dataset.Concat(tables...)
	if merged.IsEmpty() {
		res.Table = merged
		r.finish(&res, start)
		log.Warn(ctx, "pages had no rows, snapshot left untouched", logger.Int("ok", res.PagesOK))
		return res, nil
	}
	res.NullsImputed = merged.FillNulls(dataset.Number(0))
	res.Rows = merged.Len()
	res.Table = merged
	metrics.RecordNullsImputed(res.Sport, res.NullsImputed)

	path, err := r.store.Save(ctx, res.Sport, merged)
	if err != nil {
		metrics.RecordWriteFailure(res.Sport)
		r.finish(&res, start)
		log.Error(ctx, "snapshot write failed", logger.Error(err))
		return res, fmt.Errorf("%w: %s: %w", ErrPersist, res.Sport, err)
	}
	res.Path = path
	metrics.RecordRowsWritten(res.Sport, res.Rows)
	r.finish(&res, start)

	log.Info(ctx, "ingestion finished",
		logger.Int("pages_ok", res.PagesOK),
		logger.Int("pages_failed", res.PagesFailed),
		logger.Int("rows", res.Rows),
		logger.Int("nulls_imputed", res.NullsImputed),
		logger.String("path", path),
		logger.Duration("took", res.Duration))
	return res, nil
}

func (r *Runner) finish(res *Result, start time.Time) {
	end := r.now()
	res.Duration = end.Sub(start)
	metrics.RecordRunFinished(res.Sport, res.Duration.Seconds(), end.Unix())
}

func (r *Runner) fetchPage(ctx context.Context, src sources.Source, page sources.PageRequest) (*dataset.Table, error) {
	body, err := r.fetcher.Fetch(ctx, page.URL)
	if err != nil {
		return nil, err
	}
	return src.Decode(body, page)
}

// recordPage counts a page outcome. A rejected outcome never fails the run.
func recordPage(ctx context.Context, log logger.Logger, sport, outcome string) {
	if err := metrics.RecordPage(sport, outcome); err != nil {
		log.Debug(ctx, "page metric not recorded", logger.String("outcome", outcome), logger.Error(err))
	}
}

// classify maps a page error to its failure kind.
func classify(err error) string {
	if errors.Is(err, upstream.ErrUnavailable) {
		return KindUpstreamUnavailable
	}
	return KindMalformedResponse
}
