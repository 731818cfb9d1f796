// Package predict provides a client for the carbon prediction service's /predict endpoint.
package predict

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/theirongolddev/greencarbon/internal/intake"
	"github.com/theirongolddev/greencarbon/internal/model"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000"
	// Path is the prediction endpoint, relative to the base URL.
	Path = "/predict"

	defaultTimeout = 60 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
	userAgent      = "github.com/theirongolddev/greencarbon/1.0"
)

// Client posts spending payloads to a prediction backend.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds each request. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a client for the backend at baseURL.
// Trailing slashes are stripped; an empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: NormalizeBaseURL(baseURL),
		timeout: defaultTimeout,
		http:    &http.Client{},
		log:     zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeBaseURL trims whitespace and trailing slashes, defaulting to DefaultBaseURL.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return DefaultBaseURL
	}
	return u
}

// Endpoint returns the full /predict URL.
func (c *Client) Endpoint() string {
	return c.baseURL + Path
}

// Predict sends one multipart POST and returns the decoded monthly results.
//
// Errors are one of: *StatusError for non-2xx responses, *TransportError when the
// request could not complete, *MalformedError for an unusable success body.
func (c *Client) Predict(ctx context.Context, p intake.Payload) ([]model.MonthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType, err := p.Encode()
	if err != nil {
		return nil, eris.Wrap(err, "predict: encoding payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), body)
	if err != nil {
		return nil, eris.Wrap(err, "predict: creating request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With(zap.String("request_id", requestID), zap.Strings("fields", p.Fields()))
	log.Debug("predict: sending request", zap.String("url", c.Endpoint()))
	start := time.Now()

	//nolint:gosec // URL comes from user configuration
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("predict: request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn("predict: reading response failed", zap.Error(err))
		return nil, &TransportError{Err: err}
	}

	log.Info("predict: response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Whitespace-only bodies count as empty.
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	results, err := DecodeResults(raw)
	if err != nil {
		log.Warn("predict: rejected response body", zap.Error(err))
		return nil, err
	}
	return results, nil
}
