package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Client sends fully built requests and hands back whatever the server answered.
// Status codes are not interpreted here; callers classify them.
type Client struct {
	resty          *resty.Client
	httpClient     *http.Client
	timeout        time.Duration
	requestIDKey   any
	defaultHeaders map[string]string
	logger         zerolog.Logger
	registerer     prometheus.Registerer
	metrics        *metrics
}

func New(opts ...Option) *Client {
	c := &Client{
		resty:        nil,
		httpClient:   nil,
		timeout:      DefaultTimeout,
		requestIDKey: nil,
		defaultHeaders: map[string]string{
			HeaderUserAgent: DefaultUserAgent,
		},
		logger:     zerolog.Nop(),
		registerer: nil,
		metrics:    nil,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		c.resty = resty.NewWithClient(c.httpClient)
	} else {
		c.resty = resty.New()
	}

	c.resty.
		SetTimeout(c.timeout).
		SetHeaders(c.defaultHeaders).
		SetLogger(restyLogger{logger: c.logger})

	if c.registerer != nil {
		c.metrics = newMetrics(c.registerer)
	}

	return c
}

func (c *Client) Do(ctx context.Context, req *Request, opts ...RequestOption) (*Response, error) {
	cfg := c.buildRequestConfig(ctx, opts...)

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	r := c.resty.R().
		SetContext(ctx).
		SetHeaders(req.Header).
		SetHeader(HeaderXRequestID, cfg.requestID)

	if req.Body != nil {
		r.SetBody(req.Body)
	}

	if req.BasicAuth != nil {
		r.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)
	}

	start := time.Now()

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		c.metrics.observe(req.Method, codeTransportError, time.Since(start))
		c.logger.Debug().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL).
			Str("request_id", cfg.requestID).
			Msg("The request could not be completed")

		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	response := newResponse(resp, cfg.requestID)

	c.metrics.observe(req.Method, fmt.Sprint(response.StatusCode), response.Latency)
	c.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Int("status", response.StatusCode).
		Dur("latency", response.Latency).
		Str("request_id", response.RequestID).
		Msg("The request has completed")

	return response, nil
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) buildRequestConfig(ctx context.Context, opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		timeout:   0,
		requestID: "",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.requestID == "" {
		cfg.requestID = c.extractRequestID(ctx)
	}

	return cfg
}

func (c *Client) extractRequestID(ctx context.Context) string {
	if c.requestIDKey != nil {
		if id, ok := ctx.Value(c.requestIDKey).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

func newResponse(resp *resty.Response, requestID string) *Response {
	respRequestID := resp.Header().Get(HeaderXRequestID)
	if respRequestID == "" {
		respRequestID = requestID
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
		Header:     resp.Header().Clone(),
		RequestID:  respRequestID,
		Latency:    resp.Time(),
	}
}
