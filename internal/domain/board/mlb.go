package board

import (
	"github.com/okian/statsboard/internal/domain/dataset"
)

// MLB columns the charts read.
const (
	mlbPlayer = "playerFullName"
	mlbTeam   = "teamName"
	mlbYear   = "year"
)

// MLBRadarStats are the stats offered for the MLB comparison radar.
var MLBRadarStats = []string{"homeRuns", "avg", "obp", "slg", "rbi", "runs", "hits", "strikeOuts"}

const mlbIntro = `Dive into regular-season hitting data and explore player and team trends over the years. ` +
	`Filter by team and season, compare home runs, batting averages and RBIs, and see how players stack up ` +
	`against each other across several statistical categories.`

// MLBBoard defines the MLB page.
func MLBBoard() *Board {
	players := Control{Name: "players", Label: "Select Players to Compare:", Kind: Multi, Column: mlbPlayer, DefaultCount: 2}
	stats := Control{Name: "stats", Label: "Select Stats for Comparison:", Kind: Multi, Options: MLBRadarStats, DefaultCount: 4}
	year := Control{Name: "year", Label: "Select Year:", Kind: Single, Column: mlbYear}
	team := Control{Name: "team", Label: "Select Team:", Kind: Single, Column: mlbTeam}

	return &Board{
		Sport: "mlb",
		Title: "MLB Statistics",
		Intro: mlbIntro,
		Charts: []ChartDef{
			{
				ID:       "comparison",
				Title:    "Player Comparison Across Multiple Stats",
				Controls: []Control{players, stats},
				Build: func(t *dataset.Table, p Params) (View, error) {
					who, err := players.Selected(t, p)
					if err != nil {
						return View{}, err
					}
					what, err := stats.Selected(t, p)
					if err != nil {
						return View{}, err
					}
					return Radar(t, mlbPlayer, who, what)
				},
			},
			{
				ID:       "hr-rbi",
				Title:    "Home Runs vs RBIs",
				Controls: []Control{year, team},
				Build: func(t *dataset.Table, p Params) (View, error) {
					ys, err := selection(year, t, p)
					if err != nil {
						return View{}, err
					}
					ts, err := selection(team, t, p)
					if err != nil {
						return View{}, err
					}
					return GroupedBar(t, "Home Runs and RBIs", mlbPlayer,
						[]Column{{Name: "homeRuns"}, {Name: "rbi"}}, ts, ys)
				},
			},
			{
				ID:       "avg-ops",
				Title:    "Player Average and OPS Comparison",
				Controls: []Control{players},
				Build: func(t *dataset.Table, p Params) (View, error) {
					who, err := players.Selected(t, p)
					if err != nil {
						return View{}, err
					}
					return ComparisonBar(t, "Player Average and OPS Comparison", mlbPlayer, who,
						[]Column{{Name: "avg", Label: "Batting Average"}, {Name: "ops", Label: "OPS"}})
				},
			},
		},
	}
}
