package nosh

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

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the JSON client for the nosh server.
type Client struct {
	httpClient HTTPClient
	baseURL    string
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a server gateway client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates a new account and signs it in.
func (c *Client) Register(ctx context.Context, creds Credentials) (AuthResult, error) {
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/register", "", creds, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}

// Login exchanges a username-or-email plus password for a session token.
func (c *Client) Login(ctx context.Context, login, password string) (AuthResult, error) {
	body := map[string]string{
		"login":    login,
		"password": password,
	}
	var out AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", "", body, &out); err != nil {
		return AuthResult{}, err
	}
	return out, nil
}

// Me returns the account behind the token.
func (c *Client) Me(ctx context.Context, token string) (Account, error) {
	var out struct {
		Auth bool    `json:"auth"`
		User Account `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/me", token, nil, &out); err != nil {
		return Account{}, err
	}
	if !out.Auth {
		return Account{}, &APIError{StatusCode: http.StatusUnauthorized}
	}
	return out.User, nil
}

// Chat forwards a conversation to the server's completion proxy.
func (c *Client) Chat(ctx context.Context, token string, messages []ChatMessage) (string, error) {
	body := map[string]any{"messages": messages}
	var out struct {
		Text string `json:"text"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat", token, body, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServer, err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	rawResponse, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: read response body: %v", ErrServer, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: res.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rawResponse, &payload); err == nil {
			apiErr.Code = payload.Error
		}
		return apiErr
	}

	if out == nil || len(rawResponse) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawResponse, out); err != nil {
		return fmt.Errorf("%w: decode response body: %v", ErrServer, err)
	}
	return nil
}
