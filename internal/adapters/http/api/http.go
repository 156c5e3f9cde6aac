// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/statsboard/internal/app"
	"github.com/okian/statsboard/internal/domain/dataset"
)

const defaultMaxLimit = 1000

// DatasetInfo mirrors the listing shape of a loaded snapshot.
type DatasetInfo = service.DatasetInfo

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Datasets(ctx context.Context) []DatasetInfo
	Dataset(ctx context.Context, sport string) (*dataset.Table, error)
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	datasetsHandler *DatasetsHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// rows returned per dataset request; values below 1 use the default.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	if maxLimit < 1 {
		maxLimit = defaultMaxLimit
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		datasetsHandler: NewDatasetsHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/datasets", MetricsMiddleware(s.datasetsHandler.HandleList, "datasets"))
	mux.HandleFunc("GET /api/datasets/{sport}", MetricsMiddleware(s.datasetsHandler.HandleRows, "dataset_rows"))
	mux.HandleFunc("GET /api/datasets/{sport}/values/{column}", MetricsMiddleware(s.datasetsHandler.HandleValues, "dataset_values"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
