package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nfrund/folio/internal/domain"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// styleVars holds the typographic variables each style selects.
type styleVars struct {
	Font   string
	Radius string
}

var styleTable = map[domain.Style]styleVars{
	domain.StyleModern:   {Font: "'Arial', sans-serif", Radius: "8px"},
	domain.StyleClassic:  {Font: "Georgia, 'Times New Roman', serif", Radius: "2px"},
	domain.StyleMinimal:  {Font: "'Helvetica Neue', Helvetica, sans-serif", Radius: "0"},
	domain.StyleCreative: {Font: "'Trebuchet MS', 'Comic Sans MS', sans-serif", Radius: "18px"},
}

// FallbackDesign renders the fixed portfolio document for in and c. Cards are
// rendered per input skill and project; descriptions come from c when it
// names the same item. year is printed in the footer.
func FallbackDesign(in domain.UserInput, c domain.Content, year int) (string, error) {
	secondary, err := Shade(in.Color, -20)
	if err != nil {
		return "", err
	}
	primary, err := domain.ParseHexColor(in.Color)
	if err != nil {
		return "", err
	}
	vars, ok := styleTable[in.Style]
	if !ok {
		vars = styleTable[domain.DefaultStyle]
	}

	skillText := describe(c.Skills)
	projectText := describe(c.Projects)
	leadSkills := joinFirst(in.Skills, 2, " and ")

	doc := g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("UTF-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1.0")),
				g.TitleEl(cmp.Textf("%s | %s", in.Name, in.Profession)),
				g.StyleEl(cmp.Raw(stylesheet(primary.Hex(), secondary, vars))),
			),
			g.Body(
				g.Header(
					g.Div(g.Class("container header-content"),
						g.Div(g.Class("logo"), cmp.Text(in.Name)),
						g.Nav(g.Ul(
							navLink("#about", "About"),
							navLink("#skills", "Skills"),
							navLink("#projects", "Projects"),
							navLink("#contact", "Contact"),
						)),
					),
				),
				g.Main(g.Class("container"),
					g.Section(g.Class("hero"),
						g.H1(cmp.Text(in.Name)),
						g.P(cmp.Textf("%s specializing in %s", in.Profession, joinFirst(in.Skills, 3, ", "))),
					),
					g.Section(g.ID("about"),
						g.H2(cmp.Text("About Me")),
						cmp.Map(c.About, func(p string) cmp.Node { return g.P(cmp.Text(p)) }),
					),
					g.Section(g.ID("skills"),
						g.H2(cmp.Text("Skills")),
						g.Div(g.Class("skills-grid"),
							cmp.Map(in.Skills, func(skill string) cmp.Node {
								return g.Div(g.Class("skill-card"),
									g.H3(cmp.Text(skill)),
									g.P(cmp.Text(lookup(skillText, skill,
										fmt.Sprintf("Experienced in %s with multiple projects implementing this technology", skill)))),
								)
							}),
						),
					),
					g.Section(g.ID("projects"),
						g.H2(cmp.Text("Projects")),
						g.Div(g.Class("projects-grid"),
							cmp.Map(in.Projects, func(project string) cmp.Node {
								return g.Div(g.Class("project-card"),
									g.Div(g.Class("project-image")),
									g.Div(g.Class("project-info"),
										g.H3(cmp.Text(project)),
										g.P(cmp.Text(lookup(projectText, project,
											fmt.Sprintf("Developed a %s using %s", project, leadSkills)))),
									),
								)
							}),
						),
					),
					g.Section(g.ID("contact"),
						g.H2(cmp.Text("Contact")),
						g.P(cmp.Text("Email: "+c.Contact.Email)),
						cmp.If(c.Contact.Phone != "", g.P(cmp.Text("Phone: "+c.Contact.Phone))),
						cmp.If(c.Contact.Location != "", g.P(cmp.Text("Location: "+c.Contact.Location))),
					),
				),
				g.Footer(
					g.Div(g.Class("container"),
						g.P(cmp.Raw("&copy; "), cmp.Textf("%d %s. All rights reserved.", year, in.Name)),
					),
				),
			),
		),
	)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render fallback design: %w", err)
	}
	return buf.String(), nil
}

func navLink(href, label string) cmp.Node {
	return g.Li(g.A(g.Href(href), cmp.Text(label)))
}

func describe(items []domain.Item) map[string]string {
	m := make(map[string]string, len(items))
	for _, it := range items {
		m[strings.ToLower(it.Name)] = it.Description
	}
	return m
}

func lookup(m map[string]string, name, def string) string {
	if d, ok := m[strings.ToLower(name)]; ok && d != "" {
		return d
	}
	return def
}

// stylesheet is only ever fed normalized hex colors and fixed style values.
func stylesheet(primary, secondary string, v styleVars) string {
	return fmt.Sprintf(`
:root {
    --primary-color: %s;
    --secondary-color: %s;
    --dark-color: #2f2e41;
    --light-color: #f8f9fa;
    --white: #ffffff;
    --font-family: %s;
    --radius: %s;
}
* { margin: 0; padding: 0; box-sizing: border-box; font-family: var(--font-family); }
body { background-color: var(--light-color); color: var(--dark-color); line-height: 1.6; }
.container { max-width: 1200px; margin: 0 auto; padding: 2rem; }
header { background-color: var(--white); box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 1rem 0; }
.header-content { display: flex; justify-content: space-between; align-items: center; }
.logo { font-size: 1.5rem; font-weight: bold; color: var(--primary-color); }
nav ul { display: flex; list-style: none; }
nav ul li { margin-left: 1.5rem; }
nav ul li a { text-decoration: none; color: var(--dark-color); font-weight: 500; }
nav ul li a:hover { color: var(--secondary-color); }
.hero { text-align: center; padding: 4rem 0; }
.hero h1 { font-size: 2.5rem; margin-bottom: 1rem; color: var(--primary-color); }
.hero p { font-size: 1.2rem; color: var(--dark-color); opacity: 0.8; max-width: 800px; margin: 0 auto; }
section { padding: 3rem 0; }
#about p { margin-bottom: 1rem; }
h2 { font-size: 2rem; margin-bottom: 1.5rem; color: var(--primary-color); }
.skills-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(250px, 1fr)); gap: 1.5rem; margin-top: 2rem; }
.skill-card { background-color: var(--white); padding: 1.5rem; border-radius: var(--radius); box-shadow: 0 4px 6px rgba(0,0,0,0.05); border-top: 3px solid var(--secondary-color); }
.projects-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(300px, 1fr)); gap: 1.5rem; margin-top: 2rem; }
.project-card { background-color: var(--white); border-radius: var(--radius); overflow: hidden; box-shadow: 0 4px 6px rgba(0,0,0,0.05); }
.project-image { height: 200px; background: linear-gradient(135deg, var(--primary-color), var(--secondary-color)); }
.project-info { padding: 1.5rem; }
footer { background-color: var(--dark-color); color: var(--white); padding: 2rem 0; text-align: center; }
@media (max-width: 768px) {
    .header-content { flex-direction: column; }
    nav ul { margin-top: 1rem; }
    nav ul li { margin: 0 0.5rem; }
}
`, primary, secondary, v.Font, v.Radius)
}
