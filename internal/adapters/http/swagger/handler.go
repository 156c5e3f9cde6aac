// Package swagger serves the OpenAPI document of the JSON API and a ReDoc
// page rendering it.
package swagger

import (
	"context"
	"net/http"

	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/okian/statsboard/internal/adapters/http/api"
)

// redocScript is loaded by the docs page; ReDoc is not vendored.
const redocScript = "https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"

// Register attaches the docs routes to mux.
// Routes:
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> embedded OpenAPI document
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /api-docs", api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = docsPage().Render(w)
	}, "api_docs"))

	mux.HandleFunc("GET /openapi.yaml", api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	}, "openapi"))
}

func docsPage() gomponents.Node {
	return html.Doctype(html.HTML(
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.TitleEl(gomponents.Text("Statsboard API Docs")),
			html.StyleEl(gomponents.Raw("body{margin:0;padding:0}")),
		),
		html.Body(
			gomponents.El("redoc", html.ID("redoc-container"), gomponents.Attr("spec-url", "/openapi.yaml")),
			html.Script(html.Src(redocScript)),
		),
	))
}
