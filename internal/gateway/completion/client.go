package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultEndpoint  = "https://api.openai.com/v1/chat/completions"
	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 350
)

// ErrUpstream indicates the completion provider failed.
var ErrUpstream = errors.New("error when trying to get completion response")

// Message is one role/content turn sent upstream.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	httpClient HTTPClient
	endpoint   string
	apiKey     string
	model      string
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithEndpoint replaces the default completion endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if strings.TrimSpace(endpoint) != "" {
			c.endpoint = endpoint
		}
	}
}

// WithModel replaces the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		if strings.TrimSpace(model) != "" {
			c.model = model
		}
	}
}

// NewClient creates a completion client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
		model:      defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the conversation upstream and returns the reply text.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status=%d", ErrUpstream, res.StatusCode)
	}

	var decoded completionResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrUpstream)
	}
	return decoded.Choices[0].Message.Content, nil
}
