package tracker

import (
	"context"
	"fmt"
	"slices"

	"github.com/andyle182810/gtracker/authtoken"
	"github.com/andyle182810/gtracker/httpclient"
	"github.com/andyle182810/gtracker/resource"
	"github.com/andyle182810/gtracker/validator"
	"github.com/andyle182810/gtracker/xmlcodec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Doer executes a fully built request. *httpclient.Client implements it.
type Doer interface {
	Do(ctx context.Context, req *httpclient.Request, opts ...httpclient.RequestOption) (*httpclient.Response, error)
}

// Client is a session bound to one API token and base URL. Its configuration
// does not change after New, so it can be shared when the Doer can.
type Client struct {
	baseURL    string
	headers    map[string]string
	transport  Doer
	normalizer *xmlcodec.Normalizer
	validator  *validator.Validator
	logger     zerolog.Logger
}

type Option func(*options)

type options struct {
	baseURL     string
	transport   Doer
	logger      zerolog.Logger
	collections []string
	registerer  prometheus.Registerer
}

// WithBaseURL points the session at another API root, e.g. a test server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(transport Doer) Option {
	return func(o *options) {
		if transport != nil {
			o.transport = transport
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCollections sets the element names decoded as lists regardless of how
// the response marks them. It replaces xmlcodec.DefaultCollections.
func WithCollections(names ...string) Option {
	return func(o *options) {
		o.collections = names
	}
}

// WithMetrics registers request metrics for the default transport. It has no
// effect together with WithHTTPClient.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := buildOptions(cfg, opts...)

	return &Client{
		baseURL: o.baseURL,
		headers: map[string]string{
			HeaderTrackerToken:      cfg.APIToken,
			httpclient.HeaderAccept: httpclient.ContentTypeXML,
		},
		transport:  o.transport,
		normalizer: xmlcodec.NewNormalizer(o.collections...),
		validator:  validator.New(),
		logger:     o.logger,
	}, nil
}

// NewWithCredentials exchanges a username and password for the user's API token
// and opens a session with it. cfg.APIToken is ignored.
func NewWithCredentials(ctx context.Context, username, password string, cfg Config, opts ...Option) (*Client, error) {
	o := buildOptions(cfg, opts...)

	tokens := authtoken.New(o.baseURL, username, password,
		authtoken.WithDoer(o.transport),
		authtoken.WithLogger(o.logger),
	)

	token, err := tokens.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCredentials, err)
	}

	cfg.APIToken = token

	return New(cfg, append(slices.Clip(opts), WithHTTPClient(o.transport))...)
}

func buildOptions(cfg Config, opts ...Option) *options {
	o := &options{
		baseURL:     cfg.BaseURL(),
		transport:   nil,
		logger:      zerolog.Nop(),
		collections: xmlcodec.DefaultCollections,
		registerer:  nil,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.transport == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}

		o.transport = httpclient.New(
			httpclient.WithTimeout(timeout),
			httpclient.WithLogger(o.logger),
			httpclient.WithMetrics(o.registerer),
		)
	}

	return o
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Collections returns the element names the session decodes as lists.
func (c *Client) Collections() []string {
	return c.normalizer.Names()
}

// execute runs one operation through the pipeline: build, send, classify,
// normalize and decode. A classified failure stops the pipeline.
func (c *Client) execute(ctx context.Context, op *operation) (resource.Value, error) {
	req, err := c.buildRequest(op)
	if err != nil {
		return resource.Null(), err
	}

	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("operation", op.name).
			Str("method", op.method).
			Str("path", op.path).
			Msg("The request to Tracker failed")

		return resource.Null(), err
	}

	if err := Classify(resp.StatusCode, resp.StatusMessage(), resp.Body); err != nil {
		c.logger.Warn().
			Err(err).
			Str("operation", op.name).
			Str("method", op.method).
			Str("path", op.path).
			Int("status", resp.StatusCode).
			Str("kind", KindOf(err).String()).
			Str("request_id", resp.RequestID).
			Msg("Tracker rejected the request")

		return resource.Null(), err
	}

	value, err := decodeWith(c.normalizer, resp.Body, op.key)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("operation", op.name).
			Int("status", resp.StatusCode).
			Str("request_id", resp.RequestID).
			Msg("The Tracker response could not be decoded")

		return resource.Null(), err
	}

	c.logger.Debug().
		Str("operation", op.name).
		Str("method", op.method).
		Str("path", op.path).
		Int("status", resp.StatusCode).
		Dur("latency", resp.Latency).
		Str("request_id", resp.RequestID).
		Msg("The Tracker request has completed")

	return value, nil
}

// list runs op and returns the decoded collection in document order.
func (c *Client) list(ctx context.Context, op *operation) ([]resource.Value, error) {
	value, err := c.execute(ctx, op)
	if err != nil {
		return nil, err
	}

	return value.Items(), nil
}

func (c *Client) validate(input any) error {
	if err := c.validator.Validate(input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}
