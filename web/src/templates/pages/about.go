package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// AboutContent explains how a portfolio is produced.
func AboutContent() cmp.Node {
	return g.Div(g.Class("panel about"),
		g.H1(cmp.Text("How Folio works")),
		g.P(cmp.Text("Folio turns a handful of facts about you into a complete portfolio page in two steps: first the copy, then the design.")),
		g.Div(g.Class("cards"),
			card("With an API key",
				"Each step asks the generative service once. Nothing is retried, cached or stored."),
			card("Without an API key",
				"A built-in template writes the copy and lays out the page in your chosen color and style. It also steps in whenever the service fails, so you always get a page."),
			card("Export",
				"Download the page as a single self-contained HTML file. PDF export is not available."),
		),
	)
}

func card(title, body string) cmp.Node {
	return g.Div(g.Class("card"),
		g.H2(cmp.Text(title)),
		g.P(cmp.Text(body)),
	)
}
