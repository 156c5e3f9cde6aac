// Package chart renders board charts as standalone go-echarts documents.
package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/statsboard/internal/domain/board"
)

const (
	defaultWidth  = "100%"
	defaultHeight = "460px"
)

// Renderer writes chart documents.
type Renderer struct {
	width  string
	height string
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the chart canvas size, e.g. "900px", "480px".
func WithSize(width, height string) Option {
	return func(r *Renderer) {
		if width != "" {
			r.width = width
		}
		if height != "" {
			r.height = height
		}
	}
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type renderable interface {
	Render(w io.Writer) error
}

// Render writes c as a full HTML document.
func (r *Renderer) Render(w io.Writer, c *board.Chart) error {
	if c == nil {
		return ErrNoChart
	}
	var out renderable
	switch c.Kind {
	case board.KindBar:
		out = r.bar(c)
	case board.KindLine:
		out = r.line(c)
	case board.KindScatter:
		out = r.scatter(c)
	case board.KindRadar:
		out = r.radar(c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, c.Kind)
	}
	return out.Render(w)
}

func (r *Renderer) init(c *board.Chart) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: c.Title,
		Width:     r.width,
		Height:    r.height,
	})
}

func title(c *board.Chart) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{Title: c.Title})
}

func (r *Renderer) bar(c *board.Chart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.init(c), title(c),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XName}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YName}),
	)
	bar.SetXAxis(c.Categories)
	for _, s := range c.Series {
		items := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			items[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(s.Name, items)
	}
	return bar
}

func (r *Renderer) line(c *board.Chart) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(r.init(c), title(c),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XName}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YName}),
	)
	line.SetXAxis(c.Categories)
	for _, s := range c.Series {
		items := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, items)
	}
	return line
}

func (r *Renderer) scatter(c *board.Chart) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(r.init(c), title(c),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YName, Type: "value"}),
	)
	for _, s := range c.Points {
		items := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			items[i] = opts.ScatterData{Value: []interface{}{p.X, p.Y}}
		}
		sc.AddSeries(s.Name, items)
	}
	return sc
}

func (r *Renderer) radar(c *board.Chart) *charts.Radar {
	indicators := make([]*opts.Indicator, len(c.Indicators))
	for i, name := range c.Indicators {
		indicators[i] = &opts.Indicator{Name: name, Min: 0, Max: 1}
	}
	radar := charts.NewRadar()
	radar.SetGlobalOptions(r.init(c), title(c),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	for _, s := range c.Series {
		radar.AddSeries(s.Name, []opts.RadarData{{Name: s.Name, Value: s.Values}})
	}
	return radar
}
