package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/llm"
	"github.com/nfrund/folio/internal/prompts"
)

// ErrEmptyDesign is returned when the generative service replies with no markup.
var ErrEmptyDesign = errors.New("generative service returned an empty design")

// DesignGenerator produces the complete HTML document.
type DesignGenerator struct {
	client  llm.Client
	prompts PromptRenderer
	now     func() time.Time
}

// NewDesignGenerator creates a DesignGenerator.
func NewDesignGenerator(client llm.Client, prompts PromptRenderer) *DesignGenerator {
	return &DesignGenerator{client: client, prompts: prompts, now: time.Now}
}

// WithClock overrides the clock used for the fallback footer year.
func (g *DesignGenerator) WithClock(now func() time.Time) *DesignGenerator {
	g.now = now
	return g
}

// Generate asks the generative service for a document and falls back to
// FallbackDesign on any remote failure. The only error returned comes from
// the fallback itself (an unparsable color).
func (g *DesignGenerator) Generate(ctx context.Context, in domain.UserInput, c domain.Content) (DesignResult, error) {
	html, err := g.remote(ctx, in, c)
	if err == nil {
		return DesignResult{HTML: html, Source: domain.SourceRemote}, nil
	}

	slog.WarnContext(ctx, "Using fallback portfolio design", "error", err)
	doc, ferr := FallbackDesign(in, c, g.now().Year())
	if ferr != nil {
		return DesignResult{}, ferr
	}
	return DesignResult{HTML: doc, Source: domain.SourceFallback, RemoteErr: err}, nil
}

func (g *DesignGenerator) remote(ctx context.Context, in domain.UserInput, c domain.Content) (string, error) {
	if !in.HasAPIKey() {
		return "", llm.ErrMissingAPIKey
	}

	prompt, err := g.prompts.Render(prompts.Design, promptData{Input: in, Content: c})
	if err != nil {
		return "", err
	}

	reply, err := g.client.Complete(ctx, in.APIKey, prompt)
	if err != nil {
		return "", err
	}
	html := llm.StripCodeFence(reply)
	if strings.TrimSpace(html) == "" {
		return "", ErrEmptyDesign
	}
	return html, nil
}
