// Package greenhouse fetches and normalizes postings from the public
// Greenhouse Board API.
package greenhouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL   = "https://boards-api.greenhouse.io/v1/boards"
	defaultUserAgent = "JobScout/0.1"
)

// ProviderError is returned when a board request fails after retries or
// with a non-retryable status.
type ProviderError struct {
	statusCode int
	message    string
	cause      error
}

// NewProviderError creates a new ProviderError.
func NewProviderError(statusCode int, message string, cause error) *ProviderError {
	return &ProviderError{statusCode: statusCode, message: message, cause: cause}
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error { return e.cause }

// StatusCode returns the HTTP status code, or 0 for network failures.
func (e *ProviderError) StatusCode() int { return e.statusCode }

// Location is a posting's office location.
type Location struct {
	Name string `json:"name"`
}

// Department is an organizational unit attached to a posting.
type Department struct {
	Name string `json:"name"`
}

// Office is a physical office attached to a posting.
type Office struct {
	Name string `json:"name"`
}

// Company identifies the board owner when the API exposes it.
type Company struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Salary is an optional compensation block. Min and Max are declared as
// any because boards have been seen returning both numbers and strings;
// non-numeric values are ignored during normalization.
type Salary struct {
	Min      any    `json:"min"`
	Max      any    `json:"max"`
	Currency string `json:"currency"`
}

// Posting is a raw job record as returned by the Board API.
type Posting struct {
	ID          json.Number  `json:"id"`
	Title       string       `json:"title"`
	AbsoluteURL string       `json:"absolute_url"`
	JobPostURL  string       `json:"job_post_url"`
	Content     string       `json:"content"`
	Location    *Location    `json:"location"`
	Departments []Department `json:"departments"`
	Offices     []Office     `json:"offices"`
	Company     *Company     `json:"company"`
	Salary      *Salary      `json:"salary"`
}

type boardResponse struct {
	Jobs []Posting `json:"jobs"`
	Meta struct {
		Next string `json:"next"`
	} `json:"meta"`
}

// Client is a Greenhouse Board API client with retrying fetches.
type Client struct {
	baseURL       string
	userAgent     string
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
	httpClient    *http.Client
}

// Option is a functional option for Client.
type Option func(*Client)

// WithBaseURL sets the API base URL (for testing or proxies).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxRetries sets the maximum retry count for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithInitialDelay sets the first retry delay.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Client) { c.initialDelay = d }
}

// WithBackoffFactor sets the backoff multiplier.
func WithBackoffFactor(f float64) Option {
	return func(c *Client) { c.backoffFactor = f }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Greenhouse Board API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:       defaultBaseURL,
		userAgent:     defaultUserAgent,
		maxRetries:    3,
		initialDelay:  500 * time.Millisecond,
		backoffFactor: 2.0,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBoard retrieves every posting for a public board, following the
// meta.next cursor until the API stops returning one.
func (c *Client) FetchBoard(ctx context.Context, boardToken string) ([]Posting, error) {
	if boardToken == "" {
		return nil, NewProviderError(0, "board token is empty", nil)
	}

	var jobs []Posting
	nextURL := fmt.Sprintf("%s/%s/jobs", c.baseURL, boardToken)
	for nextURL != "" {
		page, err := c.fetchPage(ctx, nextURL)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, page.Jobs...)
		nextURL = page.Meta.Next
	}
	return jobs, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) (boardResponse, error) {
	var page boardResponse

	err := c.withRetry(ctx, func() error {
		var err error
		page, err = c.doRequest(ctx, url)
		return err
	})
	if err != nil {
		return boardResponse{}, err
	}
	return page, nil
}

func (c *Client) doRequest(ctx context.Context, url string) (boardResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return boardResponse{}, NewProviderError(0, "build board request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return boardResponse{}, NewProviderError(0, "reach greenhouse", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return boardResponse{}, NewProviderError(resp.StatusCode, "read board response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return boardResponse{}, NewProviderError(resp.StatusCode,
			fmt.Sprintf("greenhouse returned %d", resp.StatusCode), nil)
	}

	var page boardResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return boardResponse{}, NewProviderError(resp.StatusCode, "decode board response", err)
	}
	return page, nil
}

// withRetry retries fn with exponential backoff. Only server errors and
// network failures are retried; client errors fail immediately.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	delay := c.initialDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !isRetryable(lastErr) {
			return lastErr
		}

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * c.backoffFactor)
			}
		}
	}

	return fmt.Errorf("exhausted retries talking to greenhouse: %w", lastErr)
}

func isRetryable(err error) bool {
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		return false
	}
	// Status 0 means the request never got a response.
	return provErr.StatusCode() == 0 || provErr.StatusCode() >= http.StatusInternalServerError
}
