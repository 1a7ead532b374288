package pages

import (
	"fmt"
	"strings"

	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/middleware"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// FormValues are the values the form is pre-filled with.
type FormValues struct {
	Name, Profession, Skills, Experience, Projects, Education string
	Style                                                     domain.Style
	Color                                                     string
}

// HomeProps configures the generator page.
type HomeProps struct {
	ClientID string
	Form     FormValues
	// Result is shown in the output panel when the page is the answer to a
	// plain (non-htmx) form post.
	Result cmp.Node
}

// Home is the generator form with its progress and output panels.
func Home(p HomeProps) cmp.Node {
	style := p.Form.Style
	if style == "" {
		style = domain.DefaultStyle
	}
	color := p.Form.Color
	if color == "" {
		color = domain.DefaultColor
	}

	return g.Div(g.Class("generator"),
		g.Section(g.Class("panel form-panel"),
			g.H1(cmp.Text("Portfolio Generator")),
			g.P(g.Class("lead"), cmp.Text("Describe yourself and get a complete, styled portfolio page.")),
			g.Form(
				g.ID("portfolio-form"),
				g.Method("post"), g.Action("/portfolio/generate"),
				hx.Post("/portfolio/generate"),
				hx.Target("#portfolio-output"),
				hx.Swap("innerHTML"),
				hx.Indicator("#progress"),
				hx.Headers(fmt.Sprintf(`{"%s": %q}`, middleware.HeaderClientID, p.ClientID)),
				g.Input(g.Type("hidden"), g.Name("client_id"), g.Value(p.ClientID)),
				textField("name", "Full name", p.Form.Name, "Ada Lovelace"),
				textField("profession", "Profession", p.Form.Profession, "Software Engineer"),
				textArea("skills", "Skills (comma separated)", p.Form.Skills, "Go, SQL, Kubernetes"),
				textField("experience", "Years of experience", p.Form.Experience, "5"),
				textArea("projects", "Projects (comma separated)", p.Form.Projects, "Billing platform, Search service"),
				textField("education", "Education", p.Form.Education, "BSc Computer Science"),
				g.Div(g.Class("row"),
					g.Div(g.Class("field"),
						g.Label(g.For("style"), cmp.Text("Style")),
						g.Select(g.ID("style"), g.Name("style"),
							cmp.Map(domain.Styles, func(s domain.Style) cmp.Node {
								return g.Option(g.Value(string(s)), cmp.If(s == style, g.Selected()), cmp.Text(titleCase(string(s))))
							}),
						),
					),
					g.Div(g.Class("field"),
						g.Label(g.For("color"), cmp.Text("Primary color")),
						g.Input(g.Type("color"), g.ID("color"), g.Name("color"), g.Value(color)),
					),
				),
				g.Div(g.Class("field"),
					g.Label(g.For("api-key"), cmp.Text("API key (optional)")),
					g.Input(g.Type("password"), g.ID("api-key"), g.Name("api_key"), g.AutoComplete("off"),
						g.Placeholder("Leave empty to use the built-in template")),
				),
				g.Button(g.Type("submit"), g.ID("generate-btn"), g.Class("btn"), cmp.Text("Generate Portfolio")),
			),
		),
		g.Section(g.Class("panel output-panel"),
			g.Div(g.ID("progress"), g.Class("progress"), g.Data("client-id", p.ClientID),
				g.Div(g.Class("progress-track"), g.Div(g.ID("progress-bar"), g.Class("progress-bar"))),
				g.P(g.ID("ai-message"), g.Class("progress-message")),
			),
			g.Div(g.ID("portfolio-output"),
				cmp.If(p.Result == nil, g.P(g.Class("placeholder"), cmp.Text("Your portfolio will appear here."))),
				p.Result,
			),
		),
	)
}

func textField(name, label, value, placeholder string) cmp.Node {
	return g.Div(g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Input(g.Type("text"), g.ID(name), g.Name(name), g.Value(value), g.Placeholder(placeholder), g.Required()),
	)
}

func textArea(name, label, value, placeholder string) cmp.Node {
	return g.Div(g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Textarea(g.ID(name), g.Name(name), g.Rows("2"), g.Placeholder(placeholder), g.Required(), cmp.Text(value)),
	)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
