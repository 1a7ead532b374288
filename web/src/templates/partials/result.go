package partials

import (
	"encoding/base64"
	"fmt"

	"github.com/nfrund/folio/internal/domain"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// ResultProps describes a rendered portfolio.
type ResultProps struct {
	GenerationID  string
	HTML          string
	ContentSource domain.Source
	DesignSource  domain.Source
}

// Result shows the preview and the export controls. The document travels in
// the export forms base64-encoded so browsers cannot rewrite its line endings.
func Result(p ResultProps) cmp.Node {
	encoded := base64.StdEncoding.EncodeToString([]byte(p.HTML))
	return g.Div(g.Class("result"), g.Data("generation-id", p.GenerationID),
		g.Div(g.Class("badges"),
			sourceBadge("Content", p.ContentSource),
			sourceBadge("Design", p.DesignSource),
		),
		g.IFrame(
			g.Class("preview"),
			g.TitleAttr("Portfolio preview"),
			cmp.Attr("sandbox", "allow-scripts"),
			cmp.Attr("srcdoc", p.HTML),
		),
		g.Div(g.Class("export-actions"),
			g.Form(g.Method("post"), g.Action("/portfolio/export"),
				g.Input(g.Type("hidden"), g.Name("format"), g.Value("html")),
				g.Input(g.Type("hidden"), g.Name("html_b64"), g.Value(encoded)),
				g.Button(g.Type("submit"), g.ID("download-html"), g.Class("btn"), cmp.Text("Download HTML")),
			),
			g.Form(
				hx.Post("/portfolio/export"),
				hx.Target("#export-notice"),
				hx.Swap("innerHTML"),
				g.Input(g.Type("hidden"), g.Name("format"), g.Value("pdf")),
				g.Input(g.Type("hidden"), g.Name("html_b64"), g.Value(encoded)),
				g.Button(g.Type("submit"), g.ID("download-pdf"), g.Class("btn btn-secondary"), cmp.Text("Download PDF")),
			),
		),
		g.Div(g.ID("export-notice")),
	)
}

func sourceBadge(stage string, src domain.Source) cmp.Node {
	label := "generated"
	if src == domain.SourceFallback {
		label = "template"
	}
	return g.Span(g.Class(fmt.Sprintf("badge badge-%s", src)), cmp.Textf("%s: %s", stage, label))
}
