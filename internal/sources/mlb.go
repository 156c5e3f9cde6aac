package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okian/statsboard/internal/domain/dataset"
)

const (
	defaultMLBEndpoint     = "https://bdfed.stitch.mlbinfra.com/bdfed/stats/player"
	defaultMLBStartYear    = 2013
	defaultMLBNumYears     = 10
	defaultMLBPageSize     = 25
	defaultMLBPagesPerYear = 4
)

// MLBOption configures an MLB source.
type MLBOption func(*MLB)

// WithMLBEndpoint overrides the player stats endpoint.
func WithMLBEndpoint(endpoint string) MLBOption {
	return func(m *MLB) {
		if endpoint != "" {
			m.endpoint = endpoint
		}
	}
}

// WithMLBYears sets the first season and how many consecutive seasons to read.
func WithMLBYears(start, n int) MLBOption {
	return func(m *MLB) {
		if start > 0 {
			m.startYear = start
		}
		if n > 0 {
			m.numYears = n
		}
	}
}

// WithMLBPaging sets the page size and the number of pages per season.
func WithMLBPaging(size, pages int) MLBOption {
	return func(m *MLB) {
		if size > 0 {
			m.pageSize = size
		}
		if pages > 0 {
			m.pagesPerYear = pages
		}
	}
}

// MLB reads regular-season hitting leaders, sorted by OPS.
type MLB struct {
	endpoint     string
	startYear    int
	numYears     int
	pageSize     int
	pagesPerYear int
}

// NewMLB creates the MLB source.
func NewMLB(opts ...MLBOption) *MLB {
	m := &MLB{
		endpoint:     defaultMLBEndpoint,
		startYear:    defaultMLBStartYear,
		numYears:     defaultMLBNumYears,
		pageSize:     defaultMLBPageSize,
		pagesPerYear: defaultMLBPagesPerYear,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MLB) Sport() string       { return SportMLB }
func (m *MLB) DisplayName() string { return "MLB" }

func (m *MLB) Headers() map[string]string { return nil }

// Pages enumerates seasons ascending and, within a season, offsets ascending.
func (m *MLB) Pages() []PageRequest {
	pages := make([]PageRequest, 0, m.numYears*m.pagesPerYear)
	for y := m.startYear; y < m.startYear+m.numYears; y++ {
		for p := 0; p < m.pagesPerYear; p++ {
			offset := p * m.pageSize
			q := url.Values{}
			q.Set("env", "prod")
			q.Set("season", strconv.Itoa(y))
			q.Set("sportId", "1")
			q.Set("stats", "season")
			q.Set("group", "hitting")
			q.Set("gameType", "R")
			q.Set("limit", strconv.Itoa(m.pageSize))
			q.Set("offset", strconv.Itoa(offset))
			q.Set("sortStat", "onBasePlusSlugging")
			q.Set("order", "desc")
			pages = append(pages, PageRequest{
				URL:   m.endpoint + "?" + q.Encode(),
				Label: fmt.Sprintf("year=%d offset=%d", y, offset),
				Params: map[string]string{
					"year":   strconv.Itoa(y),
					"offset": strconv.Itoa(offset),
				},
			})
		}
	}
	return pages
}

// Decode reads {"stats": [ {...}, ... ]}. Each record becomes a row; the
// header follows the key order of the records. A missing or empty "stats"
// list is ErrEmptyPage.
func (m *MLB) Decode(body []byte, req PageRequest) (*dataset.Table, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPage, req.Label, err)
	}
	raw, ok := envelope["stats"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: %s: no stats", ErrEmptyPage, req.Label)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: stats is not a list: %v", ErrMalformedPage, req.Label, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: no stats", ErrEmptyPage, req.Label)
	}

	t := dataset.Empty()
	for i, rec := range records {
		keys, vals, err := decodeObject(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %v", ErrMalformedPage, req.Label, i, err)
		}
		t.AppendRecord(vals, keys)
	}
	return t, nil
}
