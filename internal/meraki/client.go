// Package meraki is a minimal Meraki Dashboard API client covering the two
// organization endpoints the usage report needs: the administrator list and
// the API request log. It handles bearer auth, rate-limit retries, and Link
// header pagination so callers see complete result sets.
package meraki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL    = "https://api.meraki.com/api/v1"
	defaultPerPage    = 1000
	defaultMaxRetries = 25
	defaultRetryWait  = time.Second
	userAgentBase     = "merakiusage/1.0"
)

// Options configures the dashboard client.
type Options struct {
	APIKey     string
	BaseURL    string
	Caller     string        // extra User-Agent token identifying the integration
	MaxRetries int           // 429/5xx retry budget; defaults to 25
	PerPage    int           // page size for paginated endpoints; defaults to 1000
	RetryWait  time.Duration // wait when the dashboard sends no Retry-After; defaults to 1s
	HTTPClient *http.Client
}

// Client talks to the dashboard API. Construct it once at process start and
// pass it to whatever needs it; it is safe for sequential reuse across calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	maxRetries int
	perPage    int
	retryWait  time.Duration
	log        zerolog.Logger
}

// New validates the options and returns a ready client.
func New(opts Options, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("meraki: api key required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = defaultRetryWait
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	}
	ua := userAgentBase
	if opts.Caller != "" {
		ua += " " + opts.Caller
	}
	return &Client{
		httpClient: opts.HTTPClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		userAgent:  ua,
		maxRetries: opts.MaxRetries,
		perPage:    opts.PerPage,
		retryWait:  opts.RetryWait,
		log:        log,
	}, nil
}

// Error is a non-2xx dashboard response.
type Error struct {
	Status   int
	Messages []string
}

func (e *Error) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("dashboard returned HTTP %d: %s", e.Status, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("dashboard returned HTTP %d", e.Status)
}

// getJSON fetches one URL, decodes the body into out, and returns the
// rel=next target from the Link header, if any. Rate-limited (429) and 5xx
// responses are retried up to the configured budget, honoring Retry-After.
func (c *Client) getJSON(ctx context.Context, url string, out any) (string, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("dashboard request: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			wait := c.waitFor(resp.Header.Get("Retry-After"))
			resp.Body.Close()
			if attempt >= c.maxRetries {
				return "", &Error{
					Status:   resp.StatusCode,
					Messages: []string{fmt.Sprintf("giving up after %d retries", c.maxRetries)},
				}
			}
			c.log.Debug().
				Int("status", resp.StatusCode).
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Msg("retrying dashboard request")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", decodeError(resp)
		}

		next := nextPageURL(resp.Header.Get("Link"))
		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		return next, nil
	}
}

// waitFor interprets a Retry-After header given in seconds.
func (c *Client) waitFor(header string) time.Duration {
	if header != "" {
		if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return c.retryWait
}

// decodeError turns a terminal non-2xx response into an *Error, pulling
// messages out of the dashboard's {"errors": [...]} body when present.
func decodeError(resp *http.Response) *Error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
		return &Error{Status: resp.StatusCode, Messages: payload.Errors}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return &Error{Status: resp.StatusCode, Messages: []string{msg}}
	}
	return &Error{Status: resp.StatusCode}
}
