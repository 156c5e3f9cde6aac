package board

import (
	"fmt"

	"github.com/okian/statsboard/internal/domain/dataset"
)

// SubmittedField marks a params set that came from a submitted form, so
// an absent multi-select means "nothing selected" rather than "defaults".
const SubmittedField = "submitted"

// Params carries the user's choices for one chart; url.Values converts
// directly.
type Params map[string][]string

// Get returns the first value of name, or "".
func (p Params) Get(name string) string {
	if vs := p[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// List returns the non-empty values of name. Before any submission it
// returns defaults.
func (p Params) List(name string, defaults []string) []string {
	_, sent := p[name]
	_, submitted := p[SubmittedField]
	if !sent && !submitted {
		return defaults
	}
	out := make([]string, 0, len(p[name]))
	for _, v := range p[name] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ControlKind distinguishes drop-downs from multi-selects.
type ControlKind int

const (
	// Single is a drop-down whose "All" entry submits an empty value.
	Single ControlKind = iota
	// Multi is a multi-select without an "All" entry.
	Multi
)

// Control is one filter widget of a chart.
type Control struct {
	Name  string
	Label string
	Kind  ControlKind
	// Column supplies the options as the column's unique values.
	Column string
	// Options are static choices, used when Column is empty.
	Options []string
	// DefaultCount preselects the first n options of a Multi control.
	DefaultCount int
}

// ChoicesFrom returns the control's options for t.
func (c Control) ChoicesFrom(t *dataset.Table) ([]string, error) {
	if c.Column == "" {
		return c.Options, nil
	}
	return t.Unique(c.Column)
}

// Defaults returns the preselected options of a Multi control.
func (c Control) Defaults(t *dataset.Table) ([]string, error) {
	if c.Kind != Multi || c.DefaultCount == 0 {
		return nil, nil
	}
	choices, err := c.ChoicesFrom(t)
	if err != nil {
		return nil, err
	}
	if len(choices) > c.DefaultCount {
		choices = choices[:c.DefaultCount]
	}
	return choices, nil
}

// Selected resolves the control's current values from p.
func (c Control) Selected(t *dataset.Table, p Params) ([]string, error) {
	if c.Kind == Single {
		if v := p.Get(c.Name); v != "" {
			return []string{v}, nil
		}
		return nil, nil
	}
	defaults, err := c.Defaults(t)
	if err != nil {
		return nil, err
	}
	return p.List(c.Name, defaults), nil
}

// ChartDef describes one chart of a sport page.
type ChartDef struct {
	ID       string
	Title    string
	Controls []Control
	Build    func(t *dataset.Table, p Params) (View, error)
}

// Board is the page definition of one sport.
type Board struct {
	Sport string
	Title string
	Intro string
	// Charts is empty for sports without visualizations.
	Charts []ChartDef
}

// Chart looks up a chart by id.
func (b *Board) Chart(id string) (*ChartDef, error) {
	for i := range b.Charts {
		if b.Charts[i].ID == id {
			return &b.Charts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownChart, b.Sport, id)
}

// Catalog holds the boards of every sport.
type Catalog struct {
	boards []*Board
}

// NewCatalog returns the MLB, NBA and NFL boards.
func NewCatalog() *Catalog {
	return &Catalog{boards: []*Board{MLBBoard(), NBABoard(), NFLBoard()}}
}

// Boards returns the boards in navigation order.
func (c *Catalog) Boards() []*Board { return c.boards }

// Board looks up a board by sport key.
func (c *Catalog) Board(sport string) (*Board, error) {
	for _, b := range c.boards {
		if b.Sport == sport {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBoard, sport)
}

func selection(c Control, t *dataset.Table, p Params) (dataset.Selection, error) {
	vals, err := c.Selected(t, p)
	if err != nil {
		return dataset.Selection{}, err
	}
	if len(vals) == 0 {
		return dataset.Any(c.Column), nil
	}
	return dataset.Select(c.Column, vals[0]), nil
}
