// Package config defines process configuration shared by the dashboard and
// the ingestion CLI.
//
// Conventions:
// - New(ctx) returns defaults; Load(ctx) layers a YAML file and env vars on top.
// - Keys are flat snake_case so env vars map one to one (STATSBOARD_RPS -> rps).
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogJSON switches the log handler to JSON.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`
	// ShutdownTimeout bounds graceful server shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Snapshot paths per sport. An empty path disables that sport.
	MLBDataPath string `koanf:"mlb_data_path"`
	NBADataPath string `koanf:"nba_data_path"`
	NFLDataPath string `koanf:"nfl_data_path"`

	// TableRowLimit caps the rows rendered in a page's data table.
	TableRowLimit int `koanf:"table_row_limit"`
	// MaxAPILimit caps GET /api/datasets/{sport}?limit.
	MaxAPILimit int `koanf:"max_api_limit"`

	// HTTPTimeout bounds one upstream request.
	HTTPTimeout time.Duration `koanf:"http_timeout"`
	// UserAgent is sent with every upstream request.
	UserAgent string `koanf:"user_agent"`
	// RPS limits upstream requests per second; 0 disables limiting.
	RPS float64 `koanf:"rps"`
	// Burst is the limiter bucket size.
	Burst int `koanf:"burst"`

	MLBEndpoint     string `koanf:"mlb_endpoint"`
	MLBStartYear    int    `koanf:"mlb_start_year"`
	MLBNumYears     int    `koanf:"mlb_num_years"`
	MLBPageSize     int    `koanf:"mlb_page_size"`
	MLBPagesPerYear int    `koanf:"mlb_pages_per_year"`

	NBAEndpoint     string `koanf:"nba_endpoint"`
	NBACurrentYear  int    `koanf:"nba_current_year"`
	NBALastNYears   int    `koanf:"nba_last_n_years"`
	NBASeasonType   string `koanf:"nba_season_type"`
	NBAStatCategory string `koanf:"nba_stat_category"`
	NBAPerMode      string `koanf:"nba_per_mode"`
}

// New returns the defaults. The context is reserved for future loaders.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8501",
		ShutdownTimeout: 10 * time.Second,
		MLBDataPath:     "data/mlb_data.csv",
		NBADataPath:     "data/nba_data.csv",
		TableRowLimit:   500,
		MaxAPILimit:     1000,
		HTTPTimeout:     30 * time.Second,
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
		Burst:           1,
		MLBEndpoint:     "https://bdfed.stitch.mlbinfra.com/bdfed/stats/player",
		MLBStartYear:    2013,
		MLBNumYears:     10,
		MLBPageSize:     25,
		MLBPagesPerYear: 4,
		NBAEndpoint:     "https://stats.nba.com/stats/leagueLeaders",
		NBACurrentYear:  2023,
		NBALastNYears:   10,
		NBASeasonType:   "Playoffs",
		NBAStatCategory: "PTS",
		NBAPerMode:      "PerGame",
	}
}

// DataPaths returns the configured snapshot path per sport key, skipping
// sports with no path.
func (c *Config) DataPaths() map[string]string {
	out := make(map[string]string, 3)
	for sport, p := range map[string]string{
		"mlb": c.MLBDataPath,
		"nba": c.NBADataPath,
		"nfl": c.NFLDataPath,
	} {
		if p != "" {
			out[sport] = p
		}
	}
	return out
}

// Validate checks the invariants both binaries rely on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return invalid("addr must not be empty")
	case len(c.DataPaths()) == 0:
		return invalid("at least one data path must be set")
	case c.RPS < 0:
		return invalid("rps must not be negative")
	case c.Burst < 1:
		return invalid("burst must be at least 1")
	case c.HTTPTimeout <= 0:
		return invalid("http_timeout must be positive")
	case c.TableRowLimit < 0:
		return invalid("table_row_limit must not be negative")
	}
	return nil
}
