// Package rest implements ports.RemoteEntityService against the CRM REST
// backend using resty.
package rest

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/VenkataThrinadh/crmbulk/internal/infrastructure/logging"
	"github.com/VenkataThrinadh/crmbulk/internal/logger"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

const (
	defaultTimeout     = 30 * time.Second
	correlationHeader  = "X-Correlation-ID"
	defaultUserAgent   = "crmbulk"
	maxErrorBodyLength = 200
)

// Client is a configured connection to the backend. Entity services derived
// from it share the underlying resty client.
type Client struct {
	http    *resty.Client
	logger  ports.Logger
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the structured logger used for request diagnostics.
func WithLogger(l ports.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPLogger routes resty's own messages to the process logger. Debug
// level also enables resty's request dumps.
func WithHTTPLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l == nil {
			return
		}
		c.http.SetLogger(l)
		if l.Enabled("debug") {
			c.http.SetDebug(true)
		} else {
			c.http.SetDisableWarn(true)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(agent) != "" {
			c.http.SetHeader("User-Agent", agent)
		}
	}
}

// NewClient creates a client for baseURL. Retries are disabled: every call
// is a single attempt.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetRetryCount(0).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", defaultUserAgent),
		logger:  logging.NewNoOpLogger(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.http.SetTimeout(c.timeout)
	c.http.OnBeforeRequest(propagateCorrelationID)
	c.http.OnAfterResponse(c.logResponse)
	return c
}

// Entity returns the service for the collection rooted at path, for example
// "/api/customers".
func (c *Client) Entity(path string) *EntityService {
	return &EntityService{
		client: c,
		base:   "/" + strings.Trim(path, "/"),
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.http.R().SetContext(ctx)
}

func propagateCorrelationID(_ *resty.Client, req *resty.Request) error {
	if id := ports.GetCorrelationID(req.Context()); id != "" {
		req.SetHeader(correlationHeader, id)
	}
	return nil
}

func (c *Client) logResponse(_ *resty.Client, resp *resty.Response) error {
	if resp == nil || resp.Request == nil {
		return nil
	}
	c.logger.Debug(resp.Request.Context(), "backend call",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)
	return nil
}

var _ resty.Logger = (*logger.Logger)(nil)
