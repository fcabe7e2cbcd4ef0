// Package llm is a minimal client for OpenAI-compatible chat-completions
// endpoints. The API key travels per request: the chat client forwards the
// key its user supplied in the X-API-Key header.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"

	defaultMaxTokens   = 800
	defaultTemperature = 0.7
)

// HTTPClient allows injecting a custom HTTP client for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls an OpenAI-compatible chat completions API.
type Client struct {
	baseURL    string
	model      string
	httpClient HTTPClient
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL points the client at a different endpoint (useful for testing
// or self-hosted gateways).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient builds a chat-completions client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single user prompt and returns the model's reply text.
func (c *Client) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	return c.send(ctx, apiKey, []chatMessage{{Role: "user", Content: prompt}})
}

// AnalyzeImage sends a vision request: an instruction plus a base64 data-URL
// image in a single user message.
func (c *Client) AnalyzeImage(ctx context.Context, apiKey, prompt, dataURL string) (string, error) {
	msg := chatMessage{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		},
	}
	return c.send(ctx, apiKey, []chatMessage{msg})
}

func (c *Client) send(ctx context.Context, apiKey string, messages []chatMessage) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("missing API key")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  defaultMaxTokens,
		"temperature": defaultTemperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		// Upstream error bodies are logged here, never surfaced to clients.
		log.Printf("llm request failed: status=%d body=%s", resp.StatusCode, truncate(string(body), 500))
		return "", fmt.Errorf("llm request failed: status=%d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
