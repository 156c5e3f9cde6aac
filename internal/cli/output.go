package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/okian/statsboard/internal/ingest"
)

type pageFailure struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type runSummary struct {
	RunID        string        `json:"run_id"`
	Sport        string        `json:"sport"`
	PagesOK      int           `json:"pages_ok"`
	PagesFailed  int           `json:"pages_failed"`
	Rows         int           `json:"rows"`
	NullsImputed int           `json:"nulls_imputed"`
	Path         string        `json:"path,omitempty"`
	DurationMS   int64         `json:"duration_ms"`
	Failures     []pageFailure `json:"failures,omitempty"`
}

func summarize(r ingest.Result) runSummary {
	s := runSummary{
		RunID:        r.RunID,
		Sport:        r.Sport,
		PagesOK:      r.PagesOK,
		PagesFailed:  r.PagesFailed,
		Rows:         r.Rows,
		NullsImputed: r.NullsImputed,
		Path:         r.Path,
		DurationMS:   r.Duration.Milliseconds(),
	}
	for _, f := range r.Failures {
		pf := pageFailure{Label: f.Label, URL: f.URL, Kind: f.Kind}
		if f.Err != nil {
			pf.Error = f.Err.Error()
		}
		s.Failures = append(s.Failures, pf)
	}
	return s
}

func printResults(w io.Writer, format string, results []ingest.Result) error {
	if format == "json" {
		out := make([]runSummary, len(results))
		for i, r := range results {
			out[i] = summarize(r)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, r := range results {
		var err error
		switch {
		case r.Empty():
			_, err = fmt.Fprintf(w, "%s: no rows from %d pages (%d skipped); snapshot left unchanged\n", r.Sport, r.PagesOK, r.PagesFailed)
		case r.Path == "":
			_, err = fmt.Fprintf(w, "%s: %d rows from %d pages (%d skipped) not written\n", r.Sport, r.Rows, r.PagesOK, r.PagesFailed)
		default:
			_, err = fmt.Fprintf(w, "%s: %d rows from %d pages (%d skipped), %d nulls imputed -> %s in %s\n",
				r.Sport, r.Rows, r.PagesOK, r.PagesFailed, r.NullsImputed, r.Path, r.Duration.Round(time.Millisecond))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
