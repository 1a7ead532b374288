package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/llm"
	"github.com/nfrund/folio/internal/prompts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed contact details used by the fallback template.
const (
	fallbackPhone    = "(555) 123-4567"
	fallbackLocation = "San Francisco, CA"
	fallbackDomain   = "example.com"
)

var lower = cases.Lower(language.English)

// ContentGenerator produces the structured portfolio copy.
type ContentGenerator struct {
	client  llm.Client
	prompts PromptRenderer
}

// NewContentGenerator creates a ContentGenerator.
func NewContentGenerator(client llm.Client, prompts PromptRenderer) *ContentGenerator {
	return &ContentGenerator{client: client, prompts: prompts}
}

// Generate asks the generative service for the copy and falls back to
// FallbackContent on any failure. It never returns an error.
func (g *ContentGenerator) Generate(ctx context.Context, in domain.UserInput) ContentResult {
	content, err := g.remote(ctx, in)
	if err == nil {
		return ContentResult{Content: content, Source: domain.SourceRemote}
	}

	slog.WarnContext(ctx, "Using fallback portfolio content", "error", err)
	return ContentResult{Content: FallbackContent(in), Source: domain.SourceFallback, RemoteErr: err}
}

func (g *ContentGenerator) remote(ctx context.Context, in domain.UserInput) (domain.Content, error) {
	if !in.HasAPIKey() {
		return domain.Content{}, llm.ErrMissingAPIKey
	}

	prompt, err := g.prompts.Render(prompts.Content, promptData{Input: in, Schema: contentSchemaJSON})
	if err != nil {
		return domain.Content{}, err
	}

	reply, err := g.client.Complete(ctx, in.APIKey, prompt)
	if err != nil {
		return domain.Content{}, err
	}
	return decodeContent(llm.StripCodeFence(reply), in)
}

// FallbackContent interpolates the input into the fixed portfolio copy.
func FallbackContent(in domain.UserInput) domain.Content {
	profession := lower.String(in.Profession)
	leadSkills := joinFirst(in.Skills, 2, " and ")

	c := domain.Content{
		Title:    contentTitle(in),
		Headline: in.Profession,
		About: []string{
			fmt.Sprintf("I am a passionate %s with %s years of experience specializing in %s. My journey in this field began with my education in %s and has evolved through various challenging projects.",
				profession, in.Experience, leadSkills, in.Education),
			fmt.Sprintf("Throughout my career, I've developed a strong expertise in %s. I thrive in environments that require problem-solving and creative thinking to deliver efficient, user-friendly solutions.",
				strings.Join(in.Skills, ", ")),
			fmt.Sprintf("I'm dedicated to continuous learning and staying updated with the latest technologies and best practices in the %s field.",
				profession),
		},
		Contact: domain.Contact{
			Email:    FallbackEmail(in.Name),
			Phone:    fallbackPhone,
			Location: fallbackLocation,
		},
	}

	for _, skill := range in.Skills {
		c.Skills = append(c.Skills, domain.Item{
			Name:        skill,
			Description: fmt.Sprintf("Experienced in %s with multiple projects implementing this technology", skill),
		})
	}
	for _, project := range in.Projects {
		c.Projects = append(c.Projects, domain.Item{
			Name:        project,
			Description: fmt.Sprintf("Developed a %s using %s", project, leadSkills),
		})
	}
	return c
}

// FallbackEmail joins the whitespace-separated parts of name with dots and
// lower-cases the result: "Ada King Lovelace" -> "ada.king.lovelace@example.com".
func FallbackEmail(name string) string {
	return lower.String(strings.Join(strings.Fields(name), ".")) + "@" + fallbackDomain
}

func contentTitle(in domain.UserInput) string {
	return "Professional Portfolio for " + in.Name
}

// joinFirst joins at most n leading items with sep.
func joinFirst(items []string, n int, sep string) string {
	if len(items) < n {
		n = len(items)
	}
	return strings.Join(items[:n], sep)
}
