package intelclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotAuthenticated is returned when an admin call is attempted without a
// stored token. The request is never sent in that case.
var ErrNotAuthenticated = errors.New("no authentication token found, please log in")

// TokenSource supplies the bearer token for admin calls. An empty token means
// the caller is not logged in.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed-token TokenSource.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Item mirrors the wire representation of one feed entry.
type Item struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Impact       string `json:"impact"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	Explanation  string `json:"explanation"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type CreateItemRequest struct {
	Title        string `json:"title"`
	Impact       string `json:"impact"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	Explanation  string `json:"explanation"`
	DisplayOrder *int   `json:"display_order,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

type UpdateItemRequest struct {
	Title        *string `json:"title,omitempty"`
	Impact       *string `json:"impact,omitempty"`
	Date         *string `json:"date,omitempty"`
	Description  *string `json:"description,omitempty"`
	Explanation  *string `json:"explanation,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// APIError carries the server's error body for a non-success status.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string { return e.Message }

type Client interface {
	ListPublic(ctx context.Context) ([]Item, error)
	ListAll(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, req CreateItemRequest) (*Item, error)
	Update(ctx context.Context, id string, req UpdateItemRequest) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type Config struct {
	BaseURL string
	Tokens  TokenSource
	// OnUnauthenticated runs when an admin call finds no token, before
	// ErrNotAuthenticated is returned. Typically points the user at login.
	OnUnauthenticated func()
	HTTPClient        *http.Client
	Timeout           time.Duration
}

type client struct {
	baseURL           string
	tokens            TokenSource
	onUnauthenticated func()
	httpClient        *http.Client
}

func New(cfg Config) (Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("missing base URL")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &client{
		baseURL:           base,
		tokens:            cfg.Tokens,
		onUnauthenticated: cfg.OnUnauthenticated,
		httpClient:        hc,
	}, nil
}

func (c *client) ListPublic(ctx context.Context) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/api/market-intelligence", false, nil, &out,
		"Failed to fetch market intelligence items")
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *client) ListAll(ctx context.Context) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/api/admin/market-intelligence", true, nil, &out,
		"Failed to fetch market intelligence items")
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *client) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	var out struct {
		Item Item `json:"item"`
	}
	err := c.do(ctx, http.MethodPost, "/api/admin/market-intelligence", true, req, &out,
		"Failed to create market intelligence item")
	if err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (c *client) Update(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	var out struct {
		Item Item `json:"item"`
	}
	err := c.do(ctx, http.MethodPatch, "/api/admin/market-intelligence/"+id, true, req, &out,
		"Failed to update market intelligence item")
	if err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (c *client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/market-intelligence/"+id, true, nil, nil,
		"Failed to delete market intelligence item")
}

func (c *client) do(ctx context.Context, method, path string, authed bool, body, out any, fallbackMsg string) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		if c.tokens == nil {
			return c.unauthenticated()
		}
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
		if strings.TrimSpace(token) == "" {
			return c.unauthenticated()
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: fallbackMsg}
		var errBody struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		if decErr := json.NewDecoder(resp.Body).Decode(&errBody); decErr == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Details = errBody.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *client) unauthenticated() error {
	if c.onUnauthenticated != nil {
		c.onUnauthenticated()
	}
	return ErrNotAuthenticated
}
