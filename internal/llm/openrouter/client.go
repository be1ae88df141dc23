// Package openrouter implements port.ChatModel against any OpenAI-compatible
// chat-completions endpoint, OpenRouter being the default.
package openrouter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client talks to an OpenAI-compatible chat-completions API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// Options configure a Client.
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	TimeoutSecs int
}

// NewClient creates a chat model client from the given options.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(opts.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  opts.APIKey,
		model:   opts.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Complete sends a plain text prompt and returns the model's reply.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []map[string]interface{}{
		{"role": "system", "content": system},
		{"role": "user", "content": user},
	}
	return c.chat(ctx, messages)
}

// AnalyzeImage sends a prompt together with an image. The image is fetched
// from the given URL and embedded as a base64 data URI so the model provider
// never needs access to the storage bucket.
func (c *Client) AnalyzeImage(ctx context.Context, system, user, imageURL string) (string, error) {
	dataURI, err := c.fetchAsDataURI(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("fetching image: %w", err)
	}

	messages := []map[string]interface{}{
		{"role": "system", "content": system},
		{
			"role": "user",
			"content": []map[string]interface{}{
				{"type": "text", "text": user},
				{"type": "image_url", "image_url": map[string]interface{}{"url": dataURI}},
			},
		},
	}
	return c.chat(ctx, messages)
}

// ListModels returns the model identifiers the provider offers.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling models API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("models API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling models response: %w", err)
	}

	models := make([]string, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		models = append(models, m.ID)
	}
	return models, nil
}

func (c *Client) chat(ctx context.Context, messages []map[string]interface{}) (string, error) {
	reqBody := map[string]interface{}{
		"model":    c.model,
		"messages": messages,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}
	if parsed.Choices[0].FinishReason == "length" {
		return "", fmt.Errorf("output truncated (finish_reason: length): response exceeded output token limit")
	}
	return parsed.Choices[0].Message.Content, nil
}

// fetchAsDataURI downloads the referenced image and base64-embeds it. The
// mime type is sniffed from the URL extension, defaulting to JPEG.
func (c *Client) fetchAsDataURI(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", imageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading image (status %d)", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading image body: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(raw)
	return fmt.Sprintf("data:%s;base64,%s", mimeFromURL(imageURL), encoded), nil
}

func mimeFromURL(imageURL string) string {
	// Strip query parameters from presigned URLs before looking at the extension.
	if i := strings.IndexByte(imageURL, '?'); i >= 0 {
		imageURL = imageURL[:i]
	}
	lower := strings.ToLower(imageURL)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
