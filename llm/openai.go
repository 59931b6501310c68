package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const openAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAI calls an OpenAI-compatible chat completions endpoint. With the
// default base URL it talks to OpenAI itself; most hosted inference
// providers expose the same wire format under a different URL.
type OpenAI struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	maxRetries int

	// Stats, when set, receives per-call latency samples.
	Stats *Stats
}

// NewOpenAI creates a client for the OpenAI API.
func NewOpenAI(apiKey, model string) *OpenAI {
	return NewOpenAICompatible(openAIEndpoint, apiKey, model)
}

// NewOpenAICompatible creates a client for any endpoint speaking the
// OpenAI chat completions format.
func NewOpenAICompatible(baseURL, apiKey, model string) *OpenAI {
	return &OpenAI{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		maxRetries: DefaultMaxRetries,
	}
}

// NewOpenAIFromEnv reads OPENAI_API_KEY and OPENAI_MODEL.
func NewOpenAIFromEnv() (*OpenAI, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}
	return NewOpenAI(apiKey, model), nil
}

// Pre-configured base URLs for common OpenAI-compatible providers.

func NewGroq(apiKey, model string) *OpenAI {
	return NewOpenAICompatible("https://api.groq.com/openai/v1/chat/completions", apiKey, model)
}

func NewTogether(apiKey, model string) *OpenAI {
	return NewOpenAICompatible("https://api.together.xyz/v1/chat/completions", apiKey, model)
}

func NewDeepSeek(apiKey, model string) *OpenAI {
	return NewOpenAICompatible("https://api.deepseek.com/v1/chat/completions", apiKey, model)
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Model returns the model identifier.
func (c *OpenAI) Model() string {
	return c.model
}

// Generate sends the prompt and returns the response text, retrying
// transient failures with jittered backoff.
func (c *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}

		text, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("%s: retries exhausted: %w", c.providerName(), lastErr)
}

func (c *OpenAI) generateOnce(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	reqBody := openAIRequest{
		Model: c.model,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%s api: %w", c.providerName(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s api status %d: %s", c.providerName(), resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp openAIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("%s error: %s: %s", c.providerName(), apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	record(c.Stats, start)
	return apiResp.Choices[0].Message.Content, nil
}

func (c *OpenAI) providerName() string {
	host := c.baseURL
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	if idx := strings.IndexByte(host, '/'); idx > 0 {
		host = host[:idx]
	}
	return host
}

// Close releases resources.
func (c *OpenAI) Close() {
	c.httpClient.CloseIdleConnections()
}
