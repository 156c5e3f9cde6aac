// Package site serves the HTML dashboard: one page per sport with a data
// table, filter forms and chart frames.
package site

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"maragu.dev/gomponents"

	"github.com/okian/statsboard/internal/adapters/http/api"
	service "github.com/okian/statsboard/internal/app"
	"github.com/okian/statsboard/internal/domain/board"
	"github.com/okian/statsboard/internal/domain/dataset"
	"github.com/okian/statsboard/pkg/logger"
)

const defaultRowLimit = 500

// Dependencies required by the pages.
type Dependencies interface {
	Catalog() *board.Catalog
	Dataset(ctx context.Context, sport string) (*dataset.Table, error)
}

// ChartRenderer writes a chart as a standalone HTML document.
type ChartRenderer interface {
	Render(w io.Writer, c *board.Chart) error
}

// Handler serves the dashboard pages and chart frames.
type Handler struct {
	deps     Dependencies
	charts   ChartRenderer
	rowLimit int
	logger   logger.Logger
}

// Option applies a configuration option to the Handler.
type Option func(*Handler)

// WithRowLimit caps the rows shown in a page's data table; 0 shows all.
func WithRowLimit(n int) Option {
	return func(h *Handler) {
		if n >= 0 {
			h.rowLimit = n
		}
	}
}

// WithLogger sets a custom logger for the handler.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates the site handler.
func NewHandler(deps Dependencies, charts ChartRenderer, opts ...Option) *Handler {
	h := &Handler{
		deps:     deps,
		charts:   charts,
		rowLimit: defaultRowLimit,
		logger:   logger.Get().Named("site"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register attaches the dashboard routes to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
	mux.HandleFunc("GET /{$}", api.MetricsMiddleware(h.HandleHome, "home"))
	mux.HandleFunc("GET /sports/{sport}", api.MetricsMiddleware(h.HandleSport, "sport"))
	mux.HandleFunc("GET /charts/{sport}/{chart}", api.MetricsMiddleware(h.HandleChart, "chart"))
}

// HandleHome handles GET /.
func (h *Handler) HandleHome(w http.ResponseWriter, _ *http.Request) {
	h.renderHTML(w, http.StatusOK, homePage(h.deps.Catalog().Boards()))
}

// HandleSport handles GET /sports/{sport}.
func (h *Handler) HandleSport(w http.ResponseWriter, r *http.Request) {
	boards := h.deps.Catalog().Boards()
	b, err := h.deps.Catalog().Board(r.PathValue("sport"))
	if err != nil {
		h.renderHTML(w, http.StatusNotFound, errorPage(boards, http.StatusNotFound, err.Error()))
		return
	}

	var notice string
	t, err := h.deps.Dataset(r.Context(), b.Sport)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotLoaded):
		notice = err.Error()
	default:
		h.serverError(w, r, boards, err)
		return
	}

	page, err := sportPage(boards, b, t, notice, h.rowLimit)
	if err != nil {
		h.serverError(w, r, boards, err)
		return
	}
	h.renderHTML(w, http.StatusOK, page)
}

// HandleChart handles GET /charts/{sport}/{chart}; the query carries the
// chart's filter choices.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	boards := h.deps.Catalog().Boards()
	b, err := h.deps.Catalog().Board(r.PathValue("sport"))
	if err != nil {
		h.renderHTML(w, http.StatusNotFound, errorPage(boards, http.StatusNotFound, err.Error()))
		return
	}
	def, err := b.Chart(r.PathValue("chart"))
	if err != nil {
		h.renderHTML(w, http.StatusNotFound, errorPage(boards, http.StatusNotFound, err.Error()))
		return
	}
	t, err := h.deps.Dataset(r.Context(), b.Sport)
	if err != nil {
		if errors.Is(err, service.ErrNotLoaded) {
			h.renderHTML(w, http.StatusOK, warningPage(def.Title, board.MsgNoData))
			return
		}
		h.serverError(w, r, boards, err)
		return
	}

	view, err := def.Build(t, board.Params(r.URL.Query()))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dataset.ErrUnknownColumn) || errors.Is(err, dataset.ErrNotNumeric) {
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn(r.Context(), "chart build failed",
			logger.String("sport", b.Sport),
			logger.String("chart", def.ID),
			logger.Error(err))
		h.renderHTML(w, status, warningPage(def.Title, err.Error()))
		return
	}
	if !view.Ready() {
		h.renderHTML(w, http.StatusOK, warningPage(def.Title, view.Warning))
		return
	}

	var buf bytes.Buffer
	if err := h.charts.Render(&buf, view.Chart); err != nil {
		h.serverError(w, r, boards, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, boards []*board.Board, err error) {
	h.logger.Error(r.Context(), "page failed", logger.String("path", r.URL.Path), logger.Error(err))
	h.renderHTML(w, http.StatusInternalServerError,
		errorPage(boards, http.StatusInternalServerError, "An unexpected error occurred while loading this page."))
}

func (h *Handler) renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		h.logger.Error(context.Background(), "render failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
