// Package transport is the shared HTTP plumbing for upstream API clients:
// authentication, common headers, timeouts, metrics and response decoding.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fostergreatness/fgsite/internal/metrics"
	"github.com/fostergreatness/fgsite/pkg/constants"
	"github.com/fostergreatness/fgsite/pkg/errors"
	"github.com/fostergreatness/fgsite/pkg/logging"
)

// Client performs authenticated requests against a single upstream.
type Client struct {
	http     *http.Client
	auth     Authenticator
	apiKey   string
	upstream string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a transport client for the named upstream.
// An empty apiKey disables the authenticator.
func New(upstream string, auth Authenticator, apiKey string, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:     NewHTTPClient(constants.DefaultHTTPTimeout),
		auth:     auth,
		apiKey:   apiKey,
		upstream: upstream,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns an http.Client with pooled connections and bounded dials.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// Upstream returns the upstream name this client talks to.
func (c *Client) Upstream() string {
	return c.upstream
}

// HasKey reports whether a credential is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// Do performs an HTTP request with authentication and common headers applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	ctx = logging.WithUpstream(ctx, c.upstream)
	logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("Calling upstream")

	start := time.Now()
	resp, err := c.http.Do(req.WithContext(ctx))
	metrics.UpstreamRequestDuration.WithLabelValues(c.upstream).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(c.upstream, "error").Inc()
		if stderrors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, &errors.TimeoutError{
				Operation: c.upstream + " request",
				Duration:  c.http.Timeout.String(),
				Message:   err.Error(),
			}
		}
		return nil, errors.NewIOError("request", c.upstream+" "+req.URL.Path, err)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(c.upstream, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapIO("create", "GET "+url, err)
	}
	return c.Do(ctx, req)
}

// PostJSON encodes body as JSON and POSTs it.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapParse("json", "request body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapIO("create", "POST "+url, err)
	}
	return c.Do(ctx, req)
}

func isTimeout(err error) bool {
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}
