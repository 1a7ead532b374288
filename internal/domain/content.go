package domain

import (
	"fmt"
	"strings"
)

// Item is a named entry with a one-line description, used for skills and
// projects.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Contact is the contact block shown at the end of the page.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Content is the structured portfolio copy produced by the content stage and
// consumed field by field by the design stage.
type Content struct {
	Title    string   `json:"title"`
	Headline string   `json:"headline"`
	About    []string `json:"about"`
	Skills   []Item   `json:"skills"`
	Projects []Item   `json:"projects"`
	Contact  Contact  `json:"contact"`
}

// Markdown renders the content as a markdown document. The design prompt and
// the CLI use this form.
func (c Content) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", c.Title)
	fmt.Fprintf(&sb, "## %s\n\n", c.Headline)

	sb.WriteString("### About Me\n")
	sb.WriteString(strings.Join(c.About, "\n\n"))
	sb.WriteString("\n\n")

	sb.WriteString("### Skills\n")
	writeItems(&sb, c.Skills)

	sb.WriteString("### Projects\n")
	writeItems(&sb, c.Projects)

	sb.WriteString("### Contact\n")
	fmt.Fprintf(&sb, "Email: %s  \n", c.Contact.Email)
	if c.Contact.Phone != "" {
		fmt.Fprintf(&sb, "Phone: %s  \n", c.Contact.Phone)
	}
	if c.Contact.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", c.Contact.Location)
	}
	return sb.String()
}

func writeItems(sb *strings.Builder, items []Item) {
	for _, it := range items {
		fmt.Fprintf(sb, "- **%s**: %s\n", it.Name, it.Description)
	}
	sb.WriteString("\n")
}
