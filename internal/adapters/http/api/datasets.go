package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	service "github.com/okian/statsboard/internal/app"
	"github.com/okian/statsboard/internal/domain/dataset"
)

const limitParam = "limit"

// DatasetsHandler serves the loaded snapshots as JSON.
type DatasetsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewDatasetsHandler creates a datasets handler.
func NewDatasetsHandler(deps Dependencies, maxLimit int) *DatasetsHandler {
	return &DatasetsHandler{deps: deps, maxLimit: maxLimit}
}

type listResponse struct {
	Datasets []DatasetInfo `json:"datasets"`
}

type rowsResponse struct {
	Sport   string              `json:"sport"`
	Columns []string            `json:"columns"`
	Total   int                 `json:"total"`
	Rows    []map[string]string `json:"rows"`
}

type valuesResponse struct {
	Sport  string   `json:"sport"`
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// HandleList handles GET /api/datasets.
func (h *DatasetsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	infos := h.deps.Datasets(r.Context())
	if infos == nil {
		infos = []DatasetInfo{}
	}
	writeJSON(w, http.StatusOK, listResponse{Datasets: infos})
}

// HandleRows handles GET /api/datasets/{sport}. Every query parameter other
// than limit is an equality filter on the column of that name.
func (h *DatasetsHandler) HandleRows(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_dataset"
	sport := r.PathValue("sport")
	t, ok := h.lookup(w, r, op, sport)
	if !ok {
		return
	}

	limit := h.maxLimit
	q := r.URL.Query()
	if raw := q.Get(limitParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	filtered, err := filterRows(t, q)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_column", WrapKind(op, ErrNotFound, err))
		return
	}

	n := min(limit, filtered.Len())
	rows := make([]map[string]string, n)
	for i := 0; i < n; i++ {
		rows[i] = filtered.Record(i)
	}
	writeJSON(w, http.StatusOK, rowsResponse{
		Sport:   sport,
		Columns: filtered.Columns(),
		Total:   filtered.Len(),
		Rows:    rows,
	})
}

// HandleValues handles GET /api/datasets/{sport}/values/{column}.
func (h *DatasetsHandler) HandleValues(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_values"
	sport, column := r.PathValue("sport"), r.PathValue("column")
	t, ok := h.lookup(w, r, op, sport)
	if !ok {
		return
	}
	vals, err := t.Unique(column)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_column", WrapKind(op, ErrNotFound, err))
		return
	}
	if vals == nil {
		vals = []string{}
	}
	writeJSON(w, http.StatusOK, valuesResponse{Sport: sport, Column: column, Values: vals})
}

func (h *DatasetsHandler) lookup(w http.ResponseWriter, r *http.Request, op, sport string) (*dataset.Table, bool) {
	t, err := h.deps.Dataset(r.Context(), sport)
	switch {
	case err == nil:
		return t, true
	case errors.Is(err, service.ErrUnknownSport):
		writeError(w, http.StatusNotFound, "unknown_sport", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, service.ErrNotLoaded):
		writeError(w, http.StatusNotFound, "not_loaded", WrapKind(op, ErrNotFound, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
	return nil, false
}

// filterRows applies every query parameter except limit as a column filter.
// A repeated parameter matches any of its values.
func filterRows(t *dataset.Table, q url.Values) (*dataset.Table, error) {
	sels := make([]dataset.Selection, 0, len(q))
	var multi []string
	for col, vals := range q {
		switch {
		case col == limitParam:
		case len(vals) > 1:
			multi = append(multi, col)
		default:
			sels = append(sels, dataset.Select(col, q.Get(col)))
		}
	}
	out, err := t.Filter(sels...)
	if err != nil {
		return nil, err
	}
	for _, col := range multi {
		if out, err = out.FilterIn(col, q[col]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
