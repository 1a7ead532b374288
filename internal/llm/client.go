// Package llm talks to the generative text service. A Client performs exactly
// one request per call; callers decide what to do when it fails.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SystemRole is the fixed system message sent with every completion request.
const SystemRole = "You are a professional web designer and content creator that generates excellent portfolio websites."

// Fixed sampling parameters for the OpenAI-compatible endpoint.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.7
)

var (
	// ErrMissingAPIKey is returned before any network call when no credential was supplied.
	ErrMissingAPIKey = errors.New("generative service API key is required")
	// ErrEmptyCompletion is returned when the service answered without any text.
	ErrEmptyCompletion = errors.New("generative service returned no completion")
)

// Client is an abstraction over generative text providers.
type Client interface {
	// Complete sends prompt as the user message and returns the first completion's text.
	Complete(ctx context.Context, apiKey, prompt string) (string, error)
}

// Options configures NewClient.
type Options struct {
	Provider      string // "openai" (default) or "gemini"
	OpenAIBaseURL string
	GeminiModel   string
	Timeout       time.Duration
}

// NewClient creates the client for the configured provider.
func NewClient(opts Options) (Client, error) {
	switch opts.Provider {
	case "", "openai":
		return NewOpenAIClient(opts.OpenAIBaseURL, opts.Timeout), nil
	case "gemini":
		return NewGeminiClient(opts.GeminiModel, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown generative service provider %q", opts.Provider)
	}
}

// StripCodeFence removes a surrounding markdown code block, such as
// ```html ... ``` or ```json ... ```, that models like to wrap output in.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.ContainsAny(text[:nl], " <{") {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
