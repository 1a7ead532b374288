package layouts

import (
	"github.com/nfrund/folio/internal/view"
	"github.com/nfrund/folio/web/src/templates/partials"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// htmxSrc is the pinned htmx build the pages load.
const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Base is the page shell shared by every full-page response.
func Base(title string, flash view.FlashData, content ...cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("UTF-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1.0")),
				g.TitleEl(cmp.Text(CalculateTitle(title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/app.css")),
				g.Script(g.Src(htmxSrc), g.Defer()),
				g.Script(g.Src("/static/app.js"), g.Defer()),
			),
			g.Body(
				g.Header(g.Class("site-header"),
					g.Div(g.Class("container"),
						g.A(g.Class("brand"), g.Href("/"), cmp.Text("Folio")),
						g.Nav(
							g.A(g.Href("/"), cmp.Text("Generator")),
							g.A(g.Href("/about"), cmp.Text("About")),
						),
					),
				),
				g.Main(g.Class("container"),
					partials.Flash(flash),
					cmp.Group(content),
				),
			),
		),
	)
}
