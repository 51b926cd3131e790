package sefaria

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://www.sefaria.org"
	defaultTimeout      = 10 * time.Second
	defaultMaxRetries   = 2
	defaultInitialDelay = 500 * time.Millisecond
)

// Client is a read-only client for the Sefaria JSON API.
type Client struct {
	baseURL      string
	client       *http.Client
	timeout      time.Duration
	maxRetries   int
	initialDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout. It applies to a client given
// with WithHTTPClient too, in any order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetries sets how many times a 5xx or transport failure is retried and
// the first backoff delay.
func WithRetries(n int, initialDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = n
		c.initialDelay = initialDelay
	}
}

// NewClient creates a Sefaria client. Defaults to https://www.sefaria.org.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		client:       &http.Client{Timeout: defaultTimeout},
		maxRetries:   defaultMaxRetries,
		initialDelay: defaultInitialDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c
}

// BaseURL returns the API root, used to build absolute links.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-200 response from the API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sefaria error (%d): %s", e.StatusCode, e.Body)
}

// RandomByTopic fetches a random text together with its topic.
func (c *Client) RandomByTopic(ctx context.Context) (*RandomText, error) {
	var out RandomText
	if err := c.get(ctx, "/api/texts/random-by-topic", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Calendars fetches the learning schedule for today.
func (c *Client) Calendars(ctx context.Context, calendarType, timezone string) (*Calendar, error) {
	q := url.Values{}
	if calendarType != "" {
		q.Set("custom", calendarType)
	}
	if timezone != "" {
		q.Set("timezone", timezone)
	}

	var out Calendar
	if err := c.get(ctx, "/api/calendars", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Links fetches the cross references of a ref such as "Genesis.1.1".
func (c *Client) Links(ctx context.Context, ref string) ([]Link, error) {
	var out []Link
	if err := c.get(ctx, "/api/links/"+url.PathEscape(ref), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Topic fetches a topic by slug.
func (c *Client) Topic(ctx context.Context, slug string) (*Topic, error) {
	var out Topic
	if err := c.get(ctx, "/api/v2/topics/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NextRead fetches the next scheduled reading of a parasha. The payload is
// returned undecoded beyond generic JSON.
func (c *Client) NextRead(ctx context.Context, parasha string) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/api/calendars/next-read/"+url.PathEscape(parasha), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt-1))) * c.initialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("sefaria request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: string(body)}
			if resp.StatusCode >= 500 {
				continue
			}
			return lastErr
		}

		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}
