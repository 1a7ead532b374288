package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiClient implements Client for Google Gemini. A genai client is created
// per call because the credential arrives with each request.
type GeminiClient struct {
	Model       string
	Temperature float32
	// Backend defaults to the Gemini API; tests may point HTTPOptions elsewhere.
	HTTPOptions genai.HTTPOptions
}

// NewGeminiClient creates a Gemini-backed client for model. A positive
// timeout becomes the request deadline genai sets on every call.
func NewGeminiClient(model string, timeout time.Duration) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c := &GeminiClient{Model: model, Temperature: DefaultTemperature}
	if timeout > 0 {
		c.HTTPOptions.Timeout = &timeout
	}
	return c
}

// Complete implements Client.
func (c *GeminiClient) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: c.HTTPOptions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}

	temperature := c.Temperature
	resp, err := client.Models.GenerateContent(ctx, c.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemRole, genai.RoleUser),
		Temperature:       &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyCompletion
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
