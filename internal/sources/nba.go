package sources

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/okian/statsboard/internal/domain/dataset"
)

const (
	defaultNBAEndpoint     = "https://stats.nba.com/stats/leagueLeaders"
	defaultNBACurrentYear  = 2023
	defaultNBALastNYears   = 10
	defaultNBASeasonType   = "Playoffs"
	defaultNBAStatCategory = "PTS"
	defaultNBAPerMode      = "PerGame"

	// SeasonColumn is appended to every NBA row.
	SeasonColumn = "Season"
)

// NBAOption configures an NBA source.
type NBAOption func(*NBA)

// WithNBAEndpoint overrides the league leaders endpoint.
func WithNBAEndpoint(endpoint string) NBAOption {
	return func(n *NBA) {
		if endpoint != "" {
			n.endpoint = endpoint
		}
	}
}

// WithNBASeasons sets the most recent season start year and how many seasons
// to read, counting backwards.
func WithNBASeasons(current, lastN int) NBAOption {
	return func(n *NBA) {
		if current > 0 {
			n.currentYear = current
		}
		if lastN > 0 {
			n.lastN = lastN
		}
	}
}

// WithNBAQuery sets the season type, stat category and per-mode parameters.
// Empty values keep the defaults.
func WithNBAQuery(seasonType, statCategory, perMode string) NBAOption {
	return func(n *NBA) {
		if seasonType != "" {
			n.seasonType = seasonType
		}
		if statCategory != "" {
			n.statCategory = statCategory
		}
		if perMode != "" {
			n.perMode = perMode
		}
	}
}

// NBA reads league leaders per season.
type NBA struct {
	endpoint     string
	currentYear  int
	lastN        int
	seasonType   string
	statCategory string
	perMode      string
}

// NewNBA creates the NBA source.
func NewNBA(opts ...NBAOption) *NBA {
	n := &NBA{
		endpoint:     defaultNBAEndpoint,
		currentYear:  defaultNBACurrentYear,
		lastN:        defaultNBALastNYears,
		seasonType:   defaultNBASeasonType,
		statCategory: defaultNBAStatCategory,
		perMode:      defaultNBAPerMode,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *NBA) Sport() string       { return SportNBA }
func (n *NBA) DisplayName() string { return "NBA" }

// Headers mimics a browser visit from nba.com; the stats API rejects bare
// clients.
func (n *NBA) Headers() map[string]string {
	return map[string]string{
		"Referer":            "https://www.nba.com/",
		"Origin":             "https://www.nba.com",
		"Accept":             "application/json, text/plain, */*",
		"x-nba-stats-origin": "stats",
		"x-nba-stats-token":  "true",
	}
}

// SeasonLabel renders a start year as the API's season label, e.g.
// 2023 -> "2023-24".
func SeasonLabel(year int) string {
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// Pages enumerates seasons from the current one backwards.
func (n *NBA) Pages() []PageRequest {
	pages := make([]PageRequest, 0, n.lastN)
	for y := n.currentYear; y > n.currentYear-n.lastN; y-- {
		season := SeasonLabel(y)
		q := url.Values{}
		q.Set("LeagueID", "00")
		q.Set("PerMode", n.perMode)
		q.Set("Scope", "S")
		q.Set("Season", season)
		q.Set("SeasonType", n.seasonType)
		q.Set("StatCategory", n.statCategory)
		pages = append(pages, PageRequest{
			URL:    n.endpoint + "?" + q.Encode(),
			Label:  "season=" + season,
			Params: map[string]string{"season": season},
		})
	}
	return pages
}

type nbaEnvelope struct {
	ResultSet *struct {
		Headers []string            `json:"headers"`
		RowSet  [][]json.RawMessage `json:"rowSet"`
	} `json:"resultSet"`
}

// Decode reads {"resultSet": {"headers": [...], "rowSet": [[...], ...]}}
// and appends a Season column holding the page's season label. An empty
// rowSet is a valid page without rows.
func (n *NBA) Decode(body []byte, req PageRequest) (*dataset.Table, error) {
	var env nbaEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPage, req.Label, err)
	}
	if env.ResultSet == nil || len(env.ResultSet.Headers) == 0 {
		return nil, fmt.Errorf("%w: %s: no resultSet", ErrMalformedPage, req.Label)
	}

	t, err := dataset.New(env.ResultSet.Headers...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPage, req.Label, err)
	}
	for i, raw := range env.ResultSet.RowSet {
		cells := make([]dataset.Value, len(raw))
		for j, c := range raw {
			v, err := rawValue(c)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: row %d: %v", ErrMalformedPage, req.Label, i, err)
			}
			cells[j] = v
		}
		if err := t.AppendRow(cells...); err != nil {
			return nil, fmt.Errorf("%w: %s: row %d: %v", ErrMalformedPage, req.Label, i, err)
		}
	}
	t.AddConstColumn(SeasonColumn, dataset.Text(req.Params["season"]))
	return t, nil
}
