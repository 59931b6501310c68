package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"
)

// Gemini generates text through the Google Gen AI SDK.
type Gemini struct {
	client *genai.Client
	model  string

	// Stats, when set, receives per-call latency samples.
	Stats *Stats
}

// NewGemini creates a Gemini client for the given model.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// NewGeminiFromEnv reads GEMINI_API_KEY and GEMINI_MODEL.
func NewGeminiFromEnv(ctx context.Context) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return NewGemini(ctx, apiKey, model)
}

// Model returns the model identifier.
func (c *Gemini) Model() string {
	return c.model
}

// Generate sends the prompt and returns the response text. The SDK
// handles transport-level retries itself.
func (c *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini api: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}

	record(c.Stats, start)
	return text, nil
}
