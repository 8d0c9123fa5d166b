package sparql

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rdfkit/httpkit/httpop"
)

// Content types of the SPARQL 1.1 Protocol.
const (
	AcceptResultsJSON = "application/sparql-results+json"
	AcceptTurtle      = "text/turtle"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config configures a SPARQL protocol client.
type Config struct {
	// QueryEndpoint is the SPARQL query service URL.
	QueryEndpoint string `yaml:"query_endpoint" mapstructure:"query_endpoint" validate:"required,url"`

	// UpdateEndpoint is the SPARQL update service URL. Optional; Update
	// fails when unset.
	UpdateEndpoint string `yaml:"update_endpoint" mapstructure:"update_endpoint" validate:"omitempty,url"`

	// DefaultGraphs are sent as repeated default-graph-uri parameters.
	DefaultGraphs []string `yaml:"default_graphs" mapstructure:"default_graphs"`

	// NamedGraphs are sent as repeated named-graph-uri parameters.
	NamedGraphs []string `yaml:"named_graphs" mapstructure:"named_graphs"`

	// HTTP configures the underlying transport client.
	HTTP httpop.ClientConfig `yaml:"http" mapstructure:"http"`
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &httpop.ConfigError{Message: "invalid sparql config", Err: err}
	}
	return nil
}

// Client issues SPARQL protocol operations against a remote endpoint. All
// requests flow through the httpop pipeline; the transport client is built
// once and reused.
type Client struct {
	cfg    Config
	client *http.Client
	auth   httpop.Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithAuthenticator sets the authenticator for all operations. Without it
// the process-wide httpop default applies.
func WithAuthenticator(a httpop.Authenticator) Option {
	return func(c *Client) { c.auth = a }
}

// WithHTTPClient replaces the transport client built from Config.HTTP.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// New creates a SPARQL client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		hc, err := httpop.NewClient(cfg.HTTP)
		if err != nil {
			return nil, err
		}
		c.client = hc
	}
	return c, nil
}

// Select executes a SELECT query and decodes the JSON result set.
func (c *Client) Select(ctx context.Context, query string) (*Results, error) {
	body, err := c.query(ctx, query, AcceptResultsJSON)
	if err != nil {
		return nil, err
	}
	return parseResults(body)
}

// Ask executes an ASK query and returns its boolean result.
func (c *Client) Ask(ctx context.Context, query string) (bool, error) {
	body, err := c.query(ctx, query, AcceptResultsJSON)
	if err != nil {
		return false, err
	}
	return parseBoolean(body)
}

// Construct executes a CONSTRUCT or DESCRIBE query and returns the open
// response stream with its content type. The caller owns the stream and
// must close it. accept defaults to text/turtle.
func (c *Client) Construct(ctx context.Context, query, accept string) (*httpop.TypedStream, error) {
	if accept == "" {
		accept = AcceptTurtle
	}
	stream, err := httpop.PostFormStream(ctx, c.cfg.QueryEndpoint, c.queryParams(query), c.options(accept, nil))
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, &httpop.HTTPError{StatusCode: http.StatusNotFound, Reason: http.StatusText(http.StatusNotFound)}
	}
	return stream, nil
}

// Update executes a SPARQL update. The response body, if any, is discarded.
func (c *Client) Update(ctx context.Context, update string) error {
	if c.cfg.UpdateEndpoint == "" {
		return &httpop.ConfigError{Message: "no update endpoint configured"}
	}
	params := httpop.NewParams().Add("update", update)
	return httpop.PostForm(ctx, c.cfg.UpdateEndpoint, params, c.options("", nil))
}

// query runs the protocol POST and captures the response as text.
func (c *Client) query(ctx context.Context, query, accept string) (string, error) {
	h := &httpop.StringCapture{}
	err := httpop.PostForm(ctx, c.cfg.QueryEndpoint, c.queryParams(query), c.options(accept, h))
	if err != nil {
		return "", err
	}
	return h.Value(), nil
}

// queryParams builds the ordered protocol parameters. Graph parameters may
// repeat; order is preserved by Params.
func (c *Client) queryParams(query string) *httpop.Params {
	params := httpop.NewParams().Add("query", query)
	for _, g := range c.cfg.DefaultGraphs {
		params.Add("default-graph-uri", g)
	}
	for _, g := range c.cfg.NamedGraphs {
		params.Add("named-graph-uri", g)
	}
	return params
}

func (c *Client) options(accept string, h httpop.ResponseHandler) *httpop.Options {
	return &httpop.Options{
		Client:        c.client,
		Accept:        accept,
		Handler:       h,
		Authenticator: c.auth,
	}
}
