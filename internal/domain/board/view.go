// Package board turns a loaded table plus the user's filter choices into
// chart data or a warning. It knows nothing about HTML or chart libraries.
package board

// Warnings shown instead of a chart.
const (
	MsgNoData               = "No data available for the selected filters."
	MsgSelectPlayers        = "Please select at least one player for comparison."
	MsgSelectPlayersAndStat = "Please select at least one player and one stat for comparison."
)

// Kind names the chart family.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
	KindRadar   Kind = "radar"
)

// Series is one named run of values aligned with Chart.Categories (bar,
// line) or Chart.Indicators (radar).
type Series struct {
	Name   string
	Values []float64
}

// Point is one scatter mark.
type Point struct {
	X, Y float64
}

// PointSeries is one named set of scatter marks.
type PointSeries struct {
	Name   string
	Points []Point
}

// Chart is library-neutral chart data.
type Chart struct {
	Kind       Kind
	Title      string
	XName      string
	YName      string
	Categories []string
	Indicators []string
	Series     []Series
	Points     []PointSeries
}

// View is either a chart or a warning, never both.
type View struct {
	Chart   *Chart
	Warning string
}

// Ready reports whether there is a chart to render.
func (v View) Ready() bool { return v.Chart != nil }

func warn(msg string) View { return View{Warning: msg} }

// AllOption labels the drop-down entry meaning "no constraint". Its value
// on the wire is "", so a real value spelled "All" still filters.
const AllOption = "All"
