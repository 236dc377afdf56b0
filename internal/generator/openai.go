// Package generator is the boundary component between this service and the
// external text-generation API.
//
// It has one job: turn (niche, content type, keywords) into a prompt, make a
// single synchronous chat-completion call, and hand back the raw text. No
// retry, no backoff, no streaming — a failed call is simply a failed call,
// and the service layer collapses every failure into one generic
// "generation failed" answer for the client.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Prompt templates keyed by content type. The verbs are part of the
// product's voice — each type gets a purpose-built instruction rather than a
// generic "write some text".
var promptTemplates = map[string]string{
	"blog":    "Write a blog post about %s including the following keywords: %s.",
	"script":  "Write a YouTube video script about %s including the following keywords: %s.",
	"summary": "Write a podcast episode summary about %s including the following keywords: %s.",
}

// fallbackType is used when the requested content type has no template.
// An unknown type is NOT an error — it degrades to the blog template.
const fallbackType = "blog"

// Generator is the interface the service layer depends on.
// *Client implements it; handler tests substitute a mock.
type Generator interface {
	Generate(ctx context.Context, niche, contentType string, keywords []string) (string, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// compile-time check that *Client implements Generator
var _ Generator = (*Client)(nil)

// New creates a Client.
//
// The HTTP client comes from oauth2.NewClient with a StaticTokenSource: the
// returned client injects "Authorization: Bearer <APIKey>" into every
// request, so no call site ever handles the credential directly.
func New(cfg Config, logger *slog.Logger) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey})
	return &Client{
		cfg:    cfg,
		http:   oauth2.NewClient(context.Background(), src),
		logger: logger,
	}
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the portion of the response we care about. The API returns
// a much larger object — we only unmarshal the generated message.
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate makes exactly one synchronous call to the generation API and
// returns the generated text.
//
// Any failure — transport error, non-200 status, undecodable body, empty
// choice list — returns ("", err). Callers must not distinguish between
// failure kinds: the error detail exists for logs only.
func (c *Client) Generate(ctx context.Context, niche, contentType string, keywords []string) (string, error) {
	prompt, resolvedType := buildPrompt(niche, contentType, keywords)

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: fmt.Sprintf("You are a content specialist who creates high-quality %ss.", resolvedType),
			},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("generator: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("generator: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generator: calling generation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generator: generation API returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("generator: decoding response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("generator: response contained no choices")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)

	c.logger.Debug("content generated",
		slog.String("contentType", resolvedType),
		slog.Int("chars", len(text)),
	)

	return text, nil
}

// buildPrompt selects the template for the content type (falling back to
// the blog template for unknown types) and interpolates the niche and the
// comma-joined keyword list. Returns the prompt and the type actually used.
func buildPrompt(niche, contentType string, keywords []string) (string, string) {
	tmpl, ok := promptTemplates[contentType]
	if !ok {
		contentType = fallbackType
		tmpl = promptTemplates[fallbackType]
	}
	return fmt.Sprintf(tmpl, niche, strings.Join(keywords, ", ")), contentType
}
