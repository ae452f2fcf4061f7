package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = "You are a helpful assistant that explains shared-expense " +
	"settlements. Given a ledger summary, write a short, friendly explanation " +
	"of who should pay whom and why. Use only amounts from the summary."

// Generator produces a prose explanation from a ledger summary.
type Generator interface {
	Generate(ctx context.Context, summary string) (string, error)
}

// OpenAIGenerator calls an OpenAI-compatible chat-completions endpoint.
type OpenAIGenerator struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// NewOpenAIGenerator returns a generator for the given endpoint. The URL
// should point at a /v1/chat/completions route.
func NewOpenAIGenerator(url, apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the summary to the text-generation service and returns
// its reply. Errors and empty replies are handled by the caller, which
// falls back to the algorithmic explanation.
func (g *OpenAIGenerator) Generate(ctx context.Context, summary string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: summary},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generation request returned %d: %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
