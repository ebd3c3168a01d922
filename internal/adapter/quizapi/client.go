// Package quizapi calls the remote quiz endpoint that hands out era results.
package quizapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"era-quiz/internal/domain"
	"era-quiz/internal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "era-quiz/quizapi"

// Client performs the single GET against the quiz endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTracerProvider records spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// WithTimeout bounds each request. Zero leaves the request unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a quiz API client for endpoint.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("quiz API endpoint cannot be empty")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid quiz API endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("quiz API endpoint must be http or https, got %q", endpoint)
	}

	c := &Client{
		endpoint:   u.String(),
		httpClient: &http.Client{},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchResult issues one GET without query parameters. On a 2xx response the
// body must be valid JSON and is returned verbatim.
func (c *Client) FetchResult(ctx context.Context) (domain.TransitionState, error) {
	ctx, span := c.tracer.Start(ctx, "quizapi.FetchResult",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", c.endpoint)),
	)
	defer span.End()

	state, err := c.fetch(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.MessageOf(err))
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return state, nil
}

func (c *Client) fetch(ctx context.Context, span trace.Span) (domain.TransitionState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, domain.NewNetworkOrDecodeError(err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Get().Warn("Quiz API request failed",
			zap.String("endpoint", c.endpoint),
			zap.Error(err),
		)
		return nil, domain.NewNetworkOrDecodeError(transportCause(err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	logger.Get().Info("Quiz API responded",
		zap.String("endpoint", c.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewRequestFailedError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkOrDecodeError(err)
	}
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, domain.NewNetworkOrDecodeError(err)
	}
	return domain.TransitionState(body), nil
}

// transportCause strips the "Get <url>:" prefix net/http adds, so the user
// sees the underlying reason.
func transportCause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

var _ domain.QuizAPI = (*Client)(nil)
