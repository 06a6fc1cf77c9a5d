// Package semrush implements the SEMrush request execution pipeline:
// each logical report operation is mapped to a fixed query-parameter
// template and executed through a shared cache → rate limit → HTTP GET
// pipeline that normalizes every outcome into a ResponseEnvelope or an
// APIError.
package semrush

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"

	"github.com/wooshiiltd/semrush-mcp/internal/metrics"
)

const (
	defaultBaseURL   = "https://api.semrush.com/"
	defaultTrendsURL = "https://api.semrush.com/analytics/ta"

	// DefaultCacheTTL is applied when no TTL is configured.
	DefaultCacheTTL = 300 * time.Second

	// DefaultRequestsPerSecond is applied when no rate limit is configured.
	DefaultRequestsPerSecond = 10
)

// httpDoer is the minimal HTTP client surface the pipeline needs.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config carries the configuration surface the client consumes.
type Config struct {
	// APIKey is the SEMrush credential appended to every request. Required.
	APIKey string

	// CacheTTL is the response cache lifetime. Defaults to DefaultCacheTTL.
	CacheTTL time.Duration

	// RequestsPerSecond bounds upstream calls per rolling second.
	// Defaults to DefaultRequestsPerSecond.
	RequestsPerSecond int

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client

	// Logger receives pipeline diagnostics. Optional.
	Logger *logging.Logger

	// BaseURL and TrendsURL override the upstream endpoints, for tests.
	BaseURL   string
	TrendsURL string
}

// ResponseEnvelope is the normalized result of a successful upstream call
// or cache hit. Data holds the raw payload as parsed JSON when the body is
// JSON, or the body text otherwise; its shape varies per operation and is
// not validated here. Envelopes are never mutated after creation.
type ResponseEnvelope struct {
	Data       any         `json:"data"`
	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`
}

// Client executes SEMrush report operations. All operations share one
// cache and one rate limiter, both memory-resident and reset on process
// start.
type Client struct {
	apiKey    string
	baseURL   string
	trendsURL string
	hc        httpDoer
	cache     *Cache
	limiter   *Limiter
	logger    *logging.Logger
}

// NewClient validates the configuration and constructs a client. A missing
// API key is fatal here, before any network activity.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("semrush: API key is required")
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}

	rate := cfg.RequestsPerSecond
	if rate == 0 {
		rate = DefaultRequestsPerSecond
	}
	limiter, err := NewLimiter(rate)
	if err != nil {
		return nil, err
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	trendsURL := cfg.TrendsURL
	if trendsURL == "" {
		trendsURL = defaultTrendsURL
	}

	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		trendsURL: trendsURL,
		hc:        hc,
		cache:     NewCache(ttl),
		limiter:   limiter,
		logger:    cfg.Logger,
	}, nil
}

// fetch runs the shared pipeline for one endpoint and parameter set:
// credential injection, cache lookup, rate-limit admission, upstream GET,
// envelope wrap, cache store. Only successful transport responses are
// cached; failures are always retried fresh on the next invocation.
func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) (*ResponseEnvelope, error) {
	params.Set("key", c.apiKey)

	// Encode sorts parameters, so the key is deterministic for identical
	// requests regardless of construction order.
	cacheKey := endpoint + "?" + params.Encode()

	if envelope, ok := c.cache.Get(cacheKey); ok {
		metrics.RecordCacheLookup(true)
		c.logDebug("cache hit", zap.String("endpoint", endpoint))
		return envelope, nil
	}
	metrics.RecordCacheLookup(false)

	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		apiErr := newUnknownError(err.Error())
		c.logFailure(endpoint, apiErr)
		return nil, apiErr
	}
	metrics.RecordRateLimitWait(time.Since(waitStart))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cacheKey, nil)
	if err != nil {
		apiErr := newUnknownError(err.Error())
		c.logFailure(endpoint, apiErr)
		return nil, apiErr
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		apiErr := newTransportError(err)
		c.logFailure(endpoint, apiErr)
		return nil, apiErr
	}
	defer resp.Body.Close() // nolint:errcheck // read side fully drained below
	metrics.RecordUpstreamRequest(endpoint, resp.Status)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := newUnknownError(err.Error())
		c.logFailure(endpoint, apiErr)
		return nil, apiErr
	}

	payload := decodePayload(body)

	if apiErr := recognizeUpstreamError(resp, payload); apiErr != nil {
		c.logFailure(endpoint, apiErr)
		return nil, apiErr
	}

	// Any transport-level success is wrapped and cached, non-2xx included:
	// a body without a recognizable structured error is not treated as a
	// failure.
	envelope := &ResponseEnvelope{
		Data:       payload,
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
	}
	c.cache.Set(cacheKey, envelope)

	return envelope, nil
}

// decodePayload parses the body as JSON when possible and falls back to
// the body text. SEMrush analytics reports are semicolon-separated text;
// trends responses and error bodies are JSON.
func decodePayload(body []byte) any {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return parsed
	}
	return string(body)
}

// recognizeUpstreamError detects a structured error body: a JSON object
// carrying an "error" member. The message prefers the nested error
// message field and falls back to the HTTP status line; the status
// prefers the upstream status and falls back to 500.
func recognizeUpstreamError(resp *http.Response, payload any) *APIError {
	object, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	errValue, ok := object["error"]
	if !ok {
		return nil
	}

	message := resp.Status
	switch v := errValue.(type) {
	case map[string]any:
		if m, ok := v["message"].(string); ok && m != "" {
			message = m
		}
	case string:
		if v != "" {
			message = v
		}
	}

	status := resp.StatusCode
	if status == 0 {
		status = 500
	}

	return &APIError{
		Message: message,
		Status:  status,
		Payload: payload,
	}
}

func (c *Client) logFailure(endpoint string, apiErr *APIError) {
	if c.logger == nil {
		return
	}
	c.logger.Error("semrush request failed",
		zap.String("endpoint", endpoint),
		zap.String("message", apiErr.Message),
		zap.Int("status", apiErr.Status))
}

func (c *Client) logDebug(msg string, fields ...zap.Field) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, fields...)
}
