package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/statsboard/internal/adapters/repository"
	"github.com/okian/statsboard/internal/adapters/upstream"
	"github.com/okian/statsboard/internal/domain/dataset"
	"github.com/okian/statsboard/internal/ingest"
	"github.com/okian/statsboard/internal/sources"
	"github.com/okian/statsboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

// mlbPage renders n hitting records; every third record omits rbi.
func mlbPage(year, offset string, n int) string {
	recs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		rbi := fmt.Sprintf(`,"rbi":%d`, 50+i)
		if i%3 == 0 {
			rbi = ""
		}
		recs = append(recs, fmt.Sprintf(`{"playerFullName":"Player %s-%d","teamName":"Team %d","year":%s,"homeRuns":%d%s}`,
			offset, i, i%5, year, i, rbi))
	}
	return `{"stats":[` + strings.Join(recs, ",") + `]}`
}

func mlbServer(failOffsets ...string) *httptest.Server {
	fail := make(map[string]bool, len(failOffsets))
	for _, o := range failOffsets {
		fail[o] = true
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if fail[q.Get("offset")] || fail["*"] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(mlbPage(q.Get("season"), q.Get("offset"), 25)))
	}))
}

type failingStore struct{ repository.Store }

func (failingStore) Save(context.Context, string, *dataset.Table) (string, error) {
	return "", errors.New("disk full")
}

func TestRunnerPartialFailure(t *testing.T) {
	Convey("Given one MLB season where offset 50 answers 500", t, func() {
		srv := mlbServer("50")
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "mlb_data.csv")
		store := repository.NewCSVStore(repository.WithPath(sources.SportMLB, path))
		src := sources.NewMLB(sources.WithMLBEndpoint(srv.URL), sources.WithMLBYears(2013, 1))
		runner := ingest.NewRunner(upstream.New(), store, ingest.WithRunID(func() string { return "run-1" }))

		Convey("When the run completes", func() {
			res, err := runner.Run(context.Background(), src)

			Convey("Then the failed page is skipped and the rest persisted", func() {
				So(err, ShouldBeNil)
				So(res.RunID, ShouldEqual, "run-1")
				So(res.PagesOK, ShouldEqual, 3)
				So(res.PagesFailed, ShouldEqual, 1)
				So(res.Rows, ShouldEqual, 75)
				So(res.Path, ShouldEqual, path)
				So(res.Failures, ShouldHaveLength, 1)
				So(res.Failures[0].Label, ShouldEqual, "year=2013 offset=50")
				So(res.Failures[0].Kind, ShouldEqual, ingest.KindUpstreamUnavailable)
			})

			Convey("Then the persisted file has every row and no nulls", func() {
				So(err, ShouldBeNil)
				tbl, rerr := repository.ReadFile(path)
				So(rerr, ShouldBeNil)
				So(tbl.Len(), ShouldEqual, 75)
				So(tbl.NullCount(), ShouldEqual, 0)
				So(res.NullsImputed, ShouldEqual, 27)

				rbi, ferr := tbl.Floats("rbi")
				So(ferr, ShouldBeNil)
				So(rbi[0], ShouldEqual, 0)
				So(rbi[1], ShouldEqual, 51)
			})

			Convey("Then rows keep request order", func() {
				names, _ := res.Table.Strings("playerFullName")
				So(names[0], ShouldEqual, "Player 0-0")
				So(names[25], ShouldEqual, "Player 25-0")
				So(names[50], ShouldEqual, "Player 75-0")
			})
		})
	})
}

func TestRunnerNoPages(t *testing.T) {
	Convey("Given an upstream that fails every page", t, func() {
		srv := mlbServer("*")
		defer srv.Close()

		path := filepath.Join(t.TempDir(), "mlb_data.csv")
		So(os.WriteFile(path, []byte("a\n1\n"), 0o644), ShouldBeNil)
		store := repository.NewCSVStore(repository.WithPath(sources.SportMLB, path))
		src := sources.NewMLB(sources.WithMLBEndpoint(srv.URL), sources.WithMLBYears(2013, 1))

		Convey("When the run completes", func() {
			res, err := ingest.NewRunner(upstream.New(), store).Run(context.Background(), src)

			Convey("Then the result is explicitly empty and the old snapshot stays", func() {
				So(err, ShouldBeNil)
				So(res.Empty(), ShouldBeTrue)
				So(res.PagesFailed, ShouldEqual, 4)
				So(res.Path, ShouldBeEmpty)
				So(res.Table.IsEmpty(), ShouldBeTrue)

				raw, rerr := os.ReadFile(path)
				So(rerr, ShouldBeNil)
				So(string(raw), ShouldEqual, "a\n1\n")
			})
		})
	})
}

func TestRunnerMalformedPage(t *testing.T) {
	Convey("Given a page whose envelope lacks the stats key", t, func() {
		srv := mlbServer()
		defer srv.Close()

		src := sources.NewMLB(sources.WithMLBEndpoint(srv.URL), sources.WithMLBYears(2013, 1), sources.WithMLBPaging(25, 1))
		store := repository.NewCSVStore(repository.WithPath(sources.SportMLB, filepath.Join(t.TempDir(), "m.csv")))
		fetcher := fetchFunc(func(ctx context.Context, url string) ([]byte, error) {
			return []byte(`{"meta":{}}`), nil
		})

		Convey("Then it is reported as a malformed response", func() {
			res, err := ingest.NewRunner(fetcher, store).Run(context.Background(), src)
			So(err, ShouldBeNil)
			So(res.Failures, ShouldHaveLength, 1)
			So(res.Failures[0].Kind, ShouldEqual, ingest.KindMalformedResponse)
			So(errors.Is(res.Failures[0].Err, sources.ErrEmptyPage), ShouldBeTrue)
		})
	})
}

func TestRunnerEmptySeasons(t *testing.T) {
	Convey("Given NBA seasons that answer headers without rows", t, func() {
		path := filepath.Join(t.TempDir(), "nba_data.csv")
		So(os.WriteFile(path, []byte("a\n1\n"), 0o644), ShouldBeNil)
		store := repository.NewCSVStore(repository.WithPath(sources.SportNBA, path))
		src := sources.NewNBA(sources.WithNBASeasons(2023, 2))
		fetcher := fetchFunc(func(ctx context.Context, url string) ([]byte, error) {
			return []byte(`{"resultSet":{"headers":["PLAYER","PTS"],"rowSet":[]}}`), nil
		})

		Convey("When the run completes", func() {
			res, err := ingest.NewRunner(fetcher, store).Run(context.Background(), src)

			Convey("Then the pages count as fetched and the old snapshot stays", func() {
				So(err, ShouldBeNil)
				So(res.PagesOK, ShouldEqual, 2)
				So(res.Failures, ShouldBeEmpty)
				So(res.Empty(), ShouldBeTrue)
				So(res.Path, ShouldBeEmpty)
				raw, rerr := os.ReadFile(path)
				So(rerr, ShouldBeNil)
				So(string(raw), ShouldEqual, "a\n1\n")
			})
		})
	})
}

type fetchFunc func(ctx context.Context, url string) ([]byte, error)

func (f fetchFunc) Fetch(ctx context.Context, url string) ([]byte, error) { return f(ctx, url) }

func TestRunnerWriteFailure(t *testing.T) {
	Convey("Given a store that cannot write", t, func() {
		srv := mlbServer()
		defer srv.Close()

		src := sources.NewMLB(sources.WithMLBEndpoint(srv.URL), sources.WithMLBYears(2013, 1))
		runner := ingest.NewRunner(upstream.New(), failingStore{})

		Convey("Then the run returns a persist error", func() {
			res, err := runner.Run(context.Background(), src)
			So(errors.Is(err, ingest.ErrPersist), ShouldBeTrue)
			So(res.Rows, ShouldEqual, 100)
			So(res.Path, ShouldBeEmpty)
		})
	})
}

func TestRunnerCancelled(t *testing.T) {
	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		fetcher := fetchFunc(func(context.Context, string) ([]byte, error) {
			calls++
			return nil, nil
		})
		store := repository.NewCSVStore(repository.WithPath(sources.SportNBA, filepath.Join(t.TempDir(), "n.csv")))

		Convey("Then the run stops before fetching", func() {
			_, err := ingest.NewRunner(fetcher, store).Run(ctx, sources.NewNBA())
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(calls, ShouldEqual, 0)
		})
	})

	Convey("Given a nil source", t, func() {
		_, err := ingest.NewRunner(nil, nil).Run(context.Background(), nil)
		So(errors.Is(err, ingest.ErrNilSource), ShouldBeTrue)
	})
}

func TestRunnerClock(t *testing.T) {
	Convey("Given a fixed clock", t, func() {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		ticks := 0
		clock := func() time.Time {
			ticks++
			return base.Add(time.Duration(ticks) * time.Second)
		}
		fetcher := fetchFunc(func(context.Context, string) ([]byte, error) {
			return []byte(`{"resultSet":{"headers":["PLAYER","PTS"],"rowSet":[["A",1]]}}`), nil
		})
		path := filepath.Join(t.TempDir(), "nba.csv")
		store := repository.NewCSVStore(repository.WithPath(sources.SportNBA, path))
		src := sources.NewNBA(sources.WithNBASeasons(2023, 2))

		Convey("Then the duration is measured from start to finish", func() {
			res, err := ingest.NewRunner(fetcher, store, ingest.WithClock(clock)).Run(context.Background(), src)
			So(err, ShouldBeNil)
			So(res.Duration, ShouldEqual, time.Second)
			So(res.Rows, ShouldEqual, 2)
			seasons, _ := res.Table.Strings(sources.SeasonColumn)
			So(seasons, ShouldResemble, []string{"2023-24", "2022-23"})
		})
	})
}
