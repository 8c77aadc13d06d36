package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/alpacax/vpnexclude/pkg/config"
	"github.com/alpacax/vpnexclude/pkg/utils"
	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"
)

const (
	name = "vpnexclude"

	retryMinInterval = 1 * time.Second
	retryMaxInterval = 60 * time.Second
)

// Client is a thin binding to the Dashboard API v1. It authenticates every
// request, follows pagination and retries rate-limited (429) and server
// (5xx) responses up to the configured number of times. Any other non-2xx
// response is returned as an *APIError without retrying.
type Client struct {
	baseURL         string
	apiKey          string
	userAgent       string
	perPage         int
	maxRetries      int
	minRetryBackoff time.Duration
	httpClient      *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the TLS-configured client built from settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryInterval sets the first retry wait when the server gives no
// Retry-After hint.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) { c.minRetryBackoff = d }
}

func NewClient(settings config.Settings, opts ...Option) *Client {
	c := &Client{
		baseURL:         settings.BaseURL,
		apiKey:          settings.APIKey,
		userAgent:       utils.GetUserAgent(name),
		perPage:         settings.PerPage,
		maxRetries:      settings.MaxRetries,
		minRetryBackoff: retryMinInterval,
		httpClient:      utils.NewHTTPClient(settings),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type response struct {
	statusCode int
	header     http.Header
	body       []byte
}

// do sends one logical request to target (an absolute URL), retrying it
// according to the client's policy, and returns the successful response.
func (c *Client) do(ctx context.Context, method, target string, payload interface{}) (*response, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	wait := newRetryBackOff(c.minRetryBackoff)
	policy := backoff.WithContext(backoff.WithMaxRetries(wait, uint64(c.maxRetries)), ctx)

	var result *response
	operation := func() error {
		resp, err := c.send(ctx, method, target, body)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}

		switch {
		case utils.IsSuccessStatusCode(resp.statusCode):
			result = resp
			return nil
		case resp.statusCode == http.StatusTooManyRequests:
			wait.retryAfter = parseRetryAfter(resp.header.Get("Retry-After"))
			return newAPIError(method, target, resp)
		case resp.statusCode >= http.StatusInternalServerError:
			return newAPIError(method, target, resp)
		default:
			return backoff.Permanent(newAPIError(method, target, resp))
		}
	}

	notify := func(err error, next time.Duration) {
		log.Debug().Err(err).Msgf("%s %s failed, will try again in %s.", method, target, next)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) send(ctx context.Context, method, target string, body []byte) (*response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	t1 := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", httpResp.StatusCode).
		Dur("latency", time.Since(t1)).
		Msg("Dashboard API call.")

	return &response{
		statusCode: httpResp.StatusCode,
		header:     httpResp.Header,
		body:       respBody,
	}, nil
}

// retryBackOff is an exponential backoff that yields to a server supplied
// Retry-After once when one was recorded for the last attempt.
type retryBackOff struct {
	*backoff.ExponentialBackOff
	retryAfter time.Duration
}

func newRetryBackOff(initial time.Duration) *retryBackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initial
	exp.MaxInterval = retryMaxInterval
	exp.MaxElapsedTime = 0
	return &retryBackOff{ExponentialBackOff: exp}
}

func (b *retryBackOff) NextBackOff() time.Duration {
	if b.retryAfter > 0 {
		d := b.retryAfter
		b.retryAfter = 0
		return d
	}
	return b.ExponentialBackOff.NextBackOff()
}

func (b *retryBackOff) Reset() {
	b.retryAfter = 0
	b.ExponentialBackOff.Reset()
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
