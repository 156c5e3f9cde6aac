package board

import (
	"github.com/okian/statsboard/internal/domain/dataset"
)

// NBA columns the charts read.
const (
	nbaPlayer = "PLAYER"
	nbaTeam   = "TEAM"
	nbaSeason = "Season"
)

// NBARadarStats are the stats offered for the NBA comparison radar.
var NBARadarStats = []string{
	"MIN", "FGM", "FG_PCT", "FG3M", "FG3A", "FG3_PCT", "FTM", "FTA", "FT_PCT",
	"OREB", "DREB", "REB", "AST", "STL", "BLK", "TOV", "PTS",
}

const nbaIntro = `Explore playoff league leaders season by season. Filter by player, team and season, ` +
	`track points per game and shooting percentages, and compare player performance across the league.`

// NBABoard defines the NBA page.
func NBABoard() *Board {
	players := Control{Name: "players", Label: "Select Players to Compare:", Kind: Multi, Column: nbaPlayer, DefaultCount: 2}
	stats := Control{Name: "stats", Label: "Select Stats for Comparison:", Kind: Multi, Options: NBARadarStats, DefaultCount: 4}
	season := Control{Name: "season", Label: "Select Season:", Kind: Single, Column: nbaSeason}
	team := Control{Name: "team", Label: "Select Team:", Kind: Single, Column: nbaTeam}
	player := Control{Name: "player", Label: "Select Player:", Kind: Single, Column: nbaPlayer}
	scatterPlayers := Control{Name: "players", Label: "Select Players:", Kind: Multi, Column: nbaPlayer}

	return &Board{
		Sport: "nba",
		Title: "NBA Statistics",
		Intro: nbaIntro,
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
					return Radar(t, nbaPlayer, who, what)
				},
			},
			{
				ID:       "pts-gp",
				Title:    "Player Points vs Games Played",
				Controls: []Control{season, team},
				Build: func(t *dataset.Table, p Params) (View, error) {
					ss, err := selection(season, t, p)
					if err != nil {
						return View{}, err
					}
					ts, err := selection(team, t, p)
					if err != nil {
						return View{}, err
					}
					return GroupedBar(t, "Player Points vs Games Played", nbaPlayer,
						[]Column{{Name: "PTS"}, {Name: "GP"}}, ts, ss)
				},
			},
			{
				ID:       "fg-pct",
				Title:    "Field Goal PCT vs. Season",
				Controls: []Control{player},
				Build: func(t *dataset.Table, p Params) (View, error) {
					who, err := selection(player, t, p)
					if err != nil {
						return View{}, err
					}
					return Trend(t, "Field Goal Percentage Over Seasons", nbaSeason, "FG_PCT", who, "Average FG%")
				},
			},
			{
				ID:       "fgm-fga",
				Title:    "Compare FGM vs FGA Across Multiple Players",
				Controls: []Control{season, scatterPlayers},
				Build: func(t *dataset.Table, p Params) (View, error) {
					ss, err := selection(season, t, p)
					if err != nil {
						return View{}, err
					}
					who, err := scatterPlayers.Selected(t, p)
					if err != nil {
						return View{}, err
					}
					return Scatter(t, "Field Goals Made vs Field Goals Attempted - Player Comparison",
						nbaPlayer, "FGA", "FGM", who, ss)
				},
			},
		},
	}
}

// NFLBoard defines the NFL page. There is no upstream for it yet, so it
// carries only its intro; a configured snapshot is still shown as a table.
func NFLBoard() *Board {
	return &Board{
		Sport: "nfl",
		Title: "NFL Data",
		Intro: `Explore football data and trends in player and team performance over the years: ` +
			`touchdowns, rushing yards, passing completions and more.`,
	}
}
