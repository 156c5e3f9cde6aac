package site

import (
	"errors"
	"fmt"
	"net/url"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/okian/statsboard/internal/domain/board"
	"github.com/okian/statsboard/internal/domain/dataset"
)

const homeIntro = `A web dashboard to explore and analyze player statistics across MLB, NBA and NFL. ` +
	`Pick a league in the sidebar to browse its data, filter by team, season and player, and compare ` +
	`players with bar, line, scatter and radar charts.`

var homeFeatures = []string{
	"Data collection from public league stats APIs",
	"Exploratory data analysis",
	"Player and team comparisons",
	"Past and current season comparisons",
}

func appPage(title, active string, boards []*board.Board, body ...gomponents.Node) gomponents.Node {
	nav := []gomponents.Node{navLink("/", "Home", active == "")}
	for _, b := range boards {
		nav = append(nav, navLink("/sports/"+b.Sport, b.Title, active == b.Sport))
	}

	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title+" | Multi-Sport Analytics")),
			html.Link(html.Rel("stylesheet"), html.Href("/static/app.css")),
		),
		html.Body(
			html.Div(
				html.Class("layout"),
				html.Aside(
					html.Class("sidebar"),
					html.H2(gomponents.Text("Sports Leagues")),
					html.Nav(gomponents.Group(nav)),
				),
				html.Main(html.Class("content"), gomponents.Group(body)),
			),
		),
	))
}

func navLink(href, label string, active bool) gomponents.Node {
	return html.A(html.Href(href), gomponents.If(active, html.Class("active")), gomponents.Text(label))
}

func homePage(boards []*board.Board) gomponents.Node {
	cards := make([]gomponents.Node, 0, len(boards))
	for _, b := range boards {
		cards = append(cards, html.Div(
			html.Class("card"),
			html.H3(gomponents.Text(b.Title)),
			html.A(html.Href("/sports/"+b.Sport), gomponents.Text("Open ->")),
		))
	}
	features := make([]gomponents.Node, 0, len(homeFeatures))
	for _, f := range homeFeatures {
		features = append(features, html.Li(gomponents.Text(f)))
	}
	return appPage("Home", "", boards,
		html.H1(gomponents.Text("Welcome to the Multi-Sport Analytics Dashboard!")),
		html.Div(
			html.Class("main"),
			html.P(gomponents.Text(homeIntro)),
			html.H3(gomponents.Text("What this project includes:")),
			html.Ul(gomponents.Group(features)),
		),
		html.H2(gomponents.Text("Leagues")),
		html.Div(html.Class("cards"), gomponents.Group(cards)),
	)
}

// sportPage renders a board. t is nil when no snapshot is loaded; notice
// then explains why.
func sportPage(boards []*board.Board, b *board.Board, t *dataset.Table, notice string, rowLimit int) (gomponents.Node, error) {
	body := []gomponents.Node{
		html.H1(gomponents.Text(b.Title)),
		html.Div(html.Class("main"), html.P(gomponents.Text(b.Intro))),
	}
	if t == nil {
		if notice != "" {
			body = append(body, html.P(html.Class("info"), gomponents.Text(notice)))
		}
		return appPage(b.Title, b.Sport, boards, body...), nil
	}

	body = append(body, html.H2(gomponents.Text("Data")), dataTable(t, rowLimit))
	if len(b.Charts) > 0 {
		body = append(body, html.H1(gomponents.Text("EDA Visualizations")))
	}
	for i := range b.Charts {
		section, err := chartSection(b.Sport, &b.Charts[i], t)
		switch {
		case err == nil:
		case errors.Is(err, dataset.ErrUnknownColumn):
			section = unavailableSection(&b.Charts[i], err)
		default:
			return nil, err
		}
		body = append(body, section)
	}
	return appPage(b.Title, b.Sport, boards, body...), nil
}

func dataTable(t *dataset.Table, rowLimit int) gomponents.Node {
	cols := t.Columns()
	head := make([]gomponents.Node, len(cols))
	for i, c := range cols {
		head[i] = html.Th(gomponents.Text(c))
	}
	n := t.Len()
	if rowLimit > 0 && n > rowLimit {
		n = rowLimit
	}
	rows := make([]gomponents.Node, n)
	for r := 0; r < n; r++ {
		cells := t.Row(r)
		tds := make([]gomponents.Node, len(cells))
		for j, v := range cells {
			tds[j] = html.Td(gomponents.Text(v.String()))
		}
		rows[r] = html.Tr(tds...)
	}
	return html.Div(
		html.P(gomponents.Textf("Showing %d of %d rows", n, t.Len())),
		html.Div(
			html.Class("table-wrap"),
			html.Table(html.THead(html.Tr(head...)), html.TBody(rows...)),
		),
	)
}

func chartSection(sport string, def *board.ChartDef, t *dataset.Table) (gomponents.Node, error) {
	frame := "frame-" + def.ID
	src := chartPath(sport, def.ID)

	fields := []gomponents.Node{
		html.Input(html.Type("hidden"), html.Name(board.SubmittedField), html.Value("1")),
	}
	for _, c := range def.Controls {
		field, err := control(c, t)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	fields = append(fields, html.Button(html.Type("submit"), gomponents.Text("Update")))

	return html.Section(
		html.Class("chart"),
		html.ID("chart-"+def.ID),
		html.H2(gomponents.Text(def.Title)),
		html.Form(html.Method("get"), html.Action(src), html.Target(frame), gomponents.Group(fields)),
		html.IFrame(html.Name(frame), html.Src(src), html.Title(def.Title)),
	), nil
}

// unavailableSection stands in for a chart whose filters need a column the
// snapshot lacks.
func unavailableSection(def *board.ChartDef, err error) gomponents.Node {
	return html.Section(
		html.Class("chart"),
		html.ID("chart-"+def.ID),
		html.H2(gomponents.Text(def.Title)),
		html.P(html.Class("warning"), gomponents.Textf("Chart unavailable for this snapshot: %v", err)),
	)
}

func control(c board.Control, t *dataset.Table) (gomponents.Node, error) {
	choices, err := c.ChoicesFrom(t)
	if err != nil {
		return nil, err
	}
	var opts, attrs []gomponents.Node
	if c.Kind == board.Single {
		opts = append(opts, html.Option(html.Value(""), html.Selected(), gomponents.Text(board.AllOption)))
		for _, v := range choices {
			opts = append(opts, optionSelected(v, false))
		}
	} else {
		defaults, err := c.Defaults(t)
		if err != nil {
			return nil, err
		}
		chosen := make(map[string]bool, len(defaults))
		for _, d := range defaults {
			chosen[d] = true
		}
		for _, v := range choices {
			opts = append(opts, optionSelected(v, chosen[v]))
		}
		attrs = append(attrs, html.Multiple(), gomponents.Attr("size", "6"))
	}
	sel := append([]gomponents.Node{html.Name(c.Name)}, attrs...)
	sel = append(sel, opts...)
	return html.Label(gomponents.Text(c.Label), html.Select(sel...)), nil
}

func optionSelected(value string, selected bool) gomponents.Node {
	if selected {
		return html.Option(html.Value(value), html.Selected(), gomponents.Text(value))
	}
	return html.Option(html.Value(value), gomponents.Text(value))
}

// warningPage is the document a chart frame shows instead of a chart.
func warningPage(title, msg string) gomponents.Node {
	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.TitleEl(gomponents.Text(title)),
			html.Link(html.Rel("stylesheet"), html.Href("/static/app.css")),
		),
		html.Body(html.P(html.Class("warning"), gomponents.Text(msg))),
	))
}

func errorPage(boards []*board.Board, status int, msg string) gomponents.Node {
	return appPage("Error", "-", boards,
		html.H1(gomponents.Textf("%d", status)),
		html.P(html.Class("warning"), gomponents.Text(msg)),
	)
}

func chartPath(sport, id string) string {
	return fmt.Sprintf("/charts/%s/%s", url.PathEscape(sport), url.PathEscape(id))
}
