package board

import (
	"strings"

	"github.com/okian/statsboard/internal/domain/dataset"
)

// Column pairs a table column with its legend label.
type Column struct {
	Name  string
	Label string
}

// GroupedBar plots value columns side by side for every row that matches
// sels, one category per row labelled by the category column.
func GroupedBar(t *dataset.Table, title, category string, values []Column, sels ...dataset.Selection) (View, error) {
	filtered, err := t.Filter(sels...)
	if err != nil {
		return View{}, err
	}
	if filtered.IsEmpty() {
		return warn(MsgNoData), nil
	}
	return barOf(filtered, title, category, values)
}

// ComparisonBar is GroupedBar over the rows of the selected entities.
// An empty selection is a warning, not an empty chart.
func ComparisonBar(t *dataset.Table, title, category string, selected []string, values []Column) (View, error) {
	if len(selected) == 0 {
		return warn(MsgSelectPlayers), nil
	}
	filtered, err := t.FilterIn(category, selected)
	if err != nil {
		return View{}, err
	}
	if filtered.IsEmpty() {
		return warn(MsgNoData), nil
	}
	return barOf(filtered, title, category, values)
}

func barOf(t *dataset.Table, title, category string, values []Column) (View, error) {
	cats, err := t.Strings(category)
	if err != nil {
		return View{}, err
	}
	c := &Chart{Kind: KindBar, Title: title, XName: category, Categories: cats}
	for _, v := range values {
		nums, err := t.Floats(v.Name)
		if err != nil {
			return View{}, err
		}
		c.Series = append(c.Series, Series{Name: labelOr(v), Values: nums})
	}
	return View{Chart: c}, nil
}

// Radar min-max scales stats over the rows of the selected entities and
// plots each entity's mean profile.
func Radar(t *dataset.Table, key string, selected, stats []string) (View, error) {
	if len(selected) == 0 || len(stats) == 0 {
		return warn(MsgSelectPlayersAndStat), nil
	}
	filtered, err := t.FilterIn(key, selected)
	if err != nil {
		return View{}, err
	}
	if filtered.IsEmpty() {
		return warn(MsgNoData), nil
	}
	profiles, err := filtered.NormalizedProfiles(key, selected, stats)
	if err != nil {
		return View{}, err
	}
	c := &Chart{
		Kind:       KindRadar,
		Title:      "Comparison of Selected Stats for " + strings.Join(selected, ", "),
		Indicators: append([]string(nil), stats...),
	}
	for _, p := range profiles {
		if len(p.Values) == 0 {
			continue
		}
		c.Series = append(c.Series, Series{Name: p.Key, Values: p.Values})
	}
	return View{Chart: c}, nil
}

// Trend plots value per x category for the selected entity, or the mean
// over all entities per category when none is selected. Categories are
// sorted ascending.
func Trend(t *dataset.Table, title, x, value string, selected dataset.Selection, averageLabel string) (View, error) {
	rows, err := t.Filter(selected)
	if err != nil {
		return View{}, err
	}
	if rows.IsEmpty() {
		return warn(MsgNoData), nil
	}
	means, err := rows.GroupMeans(x, value)
	if err != nil {
		return View{}, err
	}
	name := averageLabel
	if selected.Active() {
		name = *selected.Value
	}
	c := &Chart{Kind: KindLine, Title: title, XName: x, YName: value}
	s := Series{Name: name, Values: make([]float64, 0, len(means))}
	for _, m := range means {
		c.Categories = append(c.Categories, m.Key)
		s.Values = append(s.Values, m.Mean)
	}
	c.Series = []Series{s}
	return View{Chart: c}, nil
}

// Scatter plots y against x, one series per selected entity, over the rows
// matching sels.
func Scatter(t *dataset.Table, title, key, x, y string, selected []string, sels ...dataset.Selection) (View, error) {
	if len(selected) == 0 {
		return warn(MsgSelectPlayers), nil
	}
	filtered, err := t.Filter(sels...)
	if err != nil {
		return View{}, err
	}
	filtered, err = filtered.FilterIn(key, selected)
	if err != nil {
		return View{}, err
	}
	if filtered.IsEmpty() {
		return warn(MsgNoData), nil
	}
	ids, err := filtered.Strings(key)
	if err != nil {
		return View{}, err
	}
	xs, err := filtered.Floats(x)
	if err != nil {
		return View{}, err
	}
	ys, err := filtered.Floats(y)
	if err != nil {
		return View{}, err
	}
	c := &Chart{Kind: KindScatter, Title: title, XName: x, YName: y}
	for _, who := range selected {
		ps := PointSeries{Name: who}
		for i, id := range ids {
			if id == who {
				ps.Points = append(ps.Points, Point{X: xs[i], Y: ys[i]})
			}
		}
		c.Points = append(c.Points, ps)
	}
	return View{Chart: c}, nil
}

func labelOr(c Column) string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}
