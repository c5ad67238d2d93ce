package chargify

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/getyouridx/pychargify/internal/config"
	"github.com/getyouridx/pychargify/pkg/entity"
	"github.com/getyouridx/pychargify/pkg/transport"
)

// Client holds the credentials for one tenant and hands out resource
// façades that share them. A Client is safe for concurrent use as long as
// each goroutine works on its own entity instances.
type Client struct {
	creds      entity.Credentials
	transport  *transport.Client
	logger     *slog.Logger
	savePolicy SavePolicy
}

type options struct {
	baseHost   string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	savePolicy SavePolicy
}

// Option customizes a Client.
type Option func(*options)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger injects the logger request diagnostics are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithBaseHost overrides the host suffix appended to the sub-domain.
func WithBaseHost(host string) Option {
	return func(o *options) { o.baseHost = host }
}

// WithBaseURL points the client at an explicit endpoint instead of the
// derived tenant host. Intended for tests.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithSavePolicy replaces the save protocol's success classification.
func WithSavePolicy(policy SavePolicy) Option {
	return func(o *options) { o.savePolicy = policy }
}

// New builds a Client for the tenant identified by subDomain, authenticated
// with apiKey.
func New(apiKey, subDomain string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	savePolicy := o.savePolicy
	if savePolicy == nil {
		savePolicy = SameCalendarDay
	}

	return &Client{
		creds: entity.Credentials{APIKey: apiKey, Subdomain: subDomain, BaseHost: o.baseHost},
		transport: transport.NewClient(transport.Config{
			APIKey:     apiKey,
			Subdomain:  subDomain,
			BaseHost:   o.baseHost,
			BaseURL:    o.baseURL,
			Timeout:    o.timeout,
			HTTPClient: o.httpClient,
			Logger:     logger,
		}),
		logger:     logger,
		savePolicy: savePolicy,
	}
}

// FromConfigFile builds a Client from a YAML credentials file. Values in
// the file may reference environment variables with ${VAR} syntax.
func FromConfigFile(path string, opts ...Option) (*Client, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("chargify: %w", err)
	}
	fileOpts := make([]Option, 0, len(opts)+2)
	if cfg.BaseHost != "" {
		fileOpts = append(fileOpts, WithBaseHost(cfg.BaseHost))
	}
	if cfg.TimeoutSeconds > 0 {
		fileOpts = append(fileOpts, WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	fileOpts = append(fileOpts, opts...)
	return New(cfg.APIKey, cfg.SubDomain, fileOpts...), nil
}

// Credentials returns the tenant credentials the client was built with.
func (c *Client) Credentials() entity.Credentials { return c.creds }

// Customers returns the customer façade.
func (c *Client) Customers() *CustomerService { return &CustomerService{client: c} }

// Products returns the product façade.
func (c *Client) Products() *ProductService { return &ProductService{client: c} }

// Subscriptions returns the subscription façade.
func (c *Client) Subscriptions() *SubscriptionService { return &SubscriptionService{client: c} }

// CreditCards returns the credit-card façade.
func (c *Client) CreditCards() *CreditCardService { return &CreditCardService{client: c} }

// PostBacks returns the postback-ingestion façade.
func (c *Client) PostBacks() *PostBackService { return &PostBackService{client: c} }
