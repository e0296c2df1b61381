// Package gateway calls the authorization service on behalf of the consent
// flow: the read-only client metadata lookup and the authorize write.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"consentflow/internal/consent/models"
	"consentflow/internal/platform/metrics"
	"consentflow/pkg/platform/circuit"
	"consentflow/pkg/requestcontext"
)

const (
	scopesPath    = "/oauth/scopes"
	authorizePath = "/oauth/authorize"

	// dependencyName labels breaker metrics for the authorization service.
	dependencyName = "authorization_service"

	maxBodyBytes = 1 << 20
)

var errCircuitOpen = errors.New("circuit open")

// Client is the HTTP client for the authorization service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	breaker    *circuit.Breaker
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBreaker guards calls with a circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    10 * time.Second,
		logger:     slog.New(slog.DiscardHandler),
		tracer:     otel.Tracer("consentflow/internal/consent/gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Message string `json:"message"`
}

// do performs one call. A 2xx body is decoded into out; everything else is
// returned as a *models.GatewayError.
func (c *Client) do(ctx context.Context, op models.GatewayOp, method, path string, query url.Values, out any) error {
	if c.breaker != nil && !c.breaker.Allow() {
		c.metrics.ObserveGateway(string(op), string(models.KindUnavailable), 0)
		return &models.GatewayError{Op: op, Kind: models.KindUnavailable, Err: errCircuitOpen}
	}

	ctx, span := c.tracer.Start(ctx, "gateway."+string(op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.roundTrip(ctx, op, method, path, query, out)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		var ge *models.GatewayError
		if errors.As(err, &ge) {
			outcome = string(ge.Kind)
			if ge.StatusCode != 0 {
				span.SetAttributes(attribute.Int("http.response.status_code", ge.StatusCode))
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	c.metrics.ObserveGateway(string(op), outcome, elapsed)
	c.recordBreaker(ctx, err)

	if err != nil {
		c.logger.WarnContext(ctx, "gateway call failed",
			"operation", string(op),
			"outcome", outcome,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op models.GatewayOp, method, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return &models.GatewayError{Op: op, Kind: models.KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
	creds := requestcontext.Credentials(ctx)
	if creds.Cookie != "" {
		req.Header.Set("Cookie", creds.Cookie)
	}
	if creds.Authorization != "" {
		req.Header.Set("Authorization", creds.Authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.GatewayError{Op: op, Kind: models.KindTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &models.GatewayError{Op: op, Kind: models.KindTransport, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return &models.GatewayError{Op: op, Kind: models.KindStatus, StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &models.GatewayError{Op: op, Kind: models.KindDecode, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

// recordBreaker counts outages only: transport failures and 5xx. A 4xx or a
// malformed body means the service answered.
func (c *Client) recordBreaker(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	var ge *models.GatewayError
	outage := errors.As(err, &ge) &&
		(ge.Kind == models.KindTransport || (ge.Kind == models.KindStatus && ge.StatusCode >= 500))

	if !outage {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.metrics.SetCircuitOpen(dependencyName, false)
			c.logger.InfoContext(ctx, "gateway circuit closed", "dependency", dependencyName)
		}
		return
	}
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.metrics.SetCircuitOpen(dependencyName, true)
		c.logger.WarnContext(ctx, "gateway circuit opened", "dependency", dependencyName)
	}
}

func decodeError(op models.GatewayOp, format string, args ...any) error {
	return &models.GatewayError{Op: op, Kind: models.KindDecode, StatusCode: http.StatusOK, Err: fmt.Errorf(format, args...)}
}
