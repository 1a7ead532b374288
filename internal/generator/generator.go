// Package generator turns a UserInput into portfolio copy and an HTML page.
// Each stage tries the generative service once and falls back to a
// deterministic template when there is no credential or the call fails.
package generator

import (
	"github.com/nfrund/folio/internal/domain"
)

// PromptRenderer renders a named prompt template. *prompts.Loader implements it.
type PromptRenderer interface {
	Render(name string, data any) (string, error)
}

// promptData is the value prompt templates are executed against.
type promptData struct {
	Input   domain.UserInput
	Content domain.Content
	Schema  string
}

// ContentResult is the outcome of the content stage.
type ContentResult struct {
	Content domain.Content
	Source  domain.Source
	// RemoteErr explains why the fallback was used; nil for remote results.
	RemoteErr error
}

// DesignResult is the outcome of the design stage.
type DesignResult struct {
	HTML      string
	Source    domain.Source
	RemoteErr error
}
