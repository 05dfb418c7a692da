package poe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.pathofexile.com"
	userAgent      = "OAuth PoE2-Ladder-Rank-Tracker/1.0.0 (contact: your-email@example.com)"

	// How much of an error response body is kept for logging.
	maxErrorBody = 500
)

// StatusError is returned for any non-200 response so callers can branch on
// the status code (429, 404) without string matching.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	token      string
}

// NewClient returns a client for the PoE API. token may be empty for the
// token exchange itself; every other endpoint requires it.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		// The API is aggressively rate limited; one request per second is
		// well inside the documented client budget.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		token:   token,
	}
}

// SetToken attaches the bearer token used on all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Get issues an authorized GET against the API and decodes the JSON response
// into result. When raw is non-nil, the full response body is also copied
// into it for diagnostic dumps.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, result interface{}, raw *[]byte) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if state := resp.Header.Get("X-Rate-Limit-Client-State"); state != "" {
		slog.Debug("Rate limit state", "state", state)
	}

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}
	if raw != nil {
		*raw = body
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	retryAfter := 60 * time.Second
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			retryAfter = time.Duration(secs) * time.Second
		}
	}

	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		RetryAfter: retryAfter,
	}
}
