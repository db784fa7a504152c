// Package client is a typed Go client for the journal HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the server root, e.g. http://localhost:3000.
	BaseURL string

	// Timeout bounds each HTTP exchange. Default: 10s.
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests; zero disables pacing.
	RequestsPerSecond float64

	// Burst is the number of requests allowed before pacing applies. Default: 1.
	Burst int
}

// Entry is a journal entry as returned by the API.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Date      string    `json:"date" yaml:"date"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Stats is the journal summary returned by GET /api/stats.
type Stats struct {
	TotalEntries     int     `json:"totalEntries" yaml:"totalEntries"`
	AvgWordsPerEntry int     `json:"avgWordsPerEntry" yaml:"avgWordsPerEntry"`
	FirstEntryDate   *string `json:"firstEntryDate" yaml:"firstEntryDate"`
	LastEntryDate    *string `json:"lastEntryDate" yaml:"lastEntryDate"`
	TotalWords       int     `json:"totalWords" yaml:"totalWords"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

// Client calls the journal API. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, cfg.Burst),
	}, nil
}

// List returns every entry, newest date first.
func (c *Client) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if _, err := c.do(ctx, http.MethodGet, "/api/entries", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Get returns the entry for date. A missing entry is an *APIError with status 404.
func (c *Client) Get(ctx context.Context, date string) (*Entry, error) {
	var e Entry
	if _, err := c.do(ctx, http.MethodGet, "/api/entries/"+url.PathEscape(date), nil, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Save creates or replaces the entry for date and reports whether it was created.
func (c *Client) Save(ctx context.Context, date, content string) (*Entry, bool, error) {
	var e Entry
	body := map[string]string{"date": date, "content": content}
	status, err := c.do(ctx, http.MethodPost, "/api/entries", nil, body, &e)
	if err != nil {
		return nil, false, err
	}
	return &e, status == http.StatusCreated, nil
}

// Update replaces the content of the entry with id.
func (c *Client) Update(ctx context.Context, id, content string) (*Entry, error) {
	var e Entry
	body := map[string]string{"content": content}
	if _, err := c.do(ctx, http.MethodPut, "/api/entries/"+url.PathEscape(id), nil, body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes the entry with id.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/entries/"+url.PathEscape(id), nil, nil, nil)
	return err
}

// Search returns entries whose content contains query, ignoring case.
func (c *Client) Search(ctx context.Context, query string) ([]Entry, error) {
	var entries []Entry
	q := url.Values{"q": {query}}
	if _, err := c.do(ctx, http.MethodGet, "/api/search", q, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats returns the journal summary.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	if _, err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// do sends one request. A 429 comes back as an *APIError carrying RetryAfter;
// resubmitting is left to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) (int, error) {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}
	return c.send(ctx, method, path, query, payload, out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, out any) (int, error) {
	u := c.base.JoinPath(path)
	u.RawQuery = query.Encode()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return 0, fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if resp.StatusCode == http.StatusTooManyRequests {
			apiErr.RetryAfter = retryAfter(resp.Header.Get("Retry-After"))
		}
		return resp.StatusCode, apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode data: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// retryAfter parses a Retry-After header in seconds, defaulting to one second.
func retryAfter(header string) time.Duration {
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return time.Second
}
