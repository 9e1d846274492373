// Package httpclient sends the client's API requests. It injects the stored
// bearer token and treats HTTP 401 as the end of the session: the stored
// session is cleared and the user is sent to the login screen.
package httpclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/storage"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	LoginPath       = "/login"
	RequestIDHeader = "X-Request-ID"
)

// Doer is the underlying transport; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionClearer drops the stored session and notifies its subscribers.
type SessionClearer interface {
	Clear(ctx context.Context) error
}

// Navigator is the client's current location and the hard redirect used
// after a 401.
type Navigator interface {
	Location() string
	Navigate(path string)
}

type Client struct {
	transport Doer
	storage   storage.Storage
	session   SessionClearer
	nav       Navigator
	limiter   *rate.Limiter
	metrics   *Metrics
	log       logging.Logger
}

type Option func(*Client)

func WithTransport(d Doer) Option {
	return func(c *Client) { c.transport = d }
}

// WithLimiter gates every send on l.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a Client reading the token from st. Without WithTransport it
// uses an *http.Client with a 30s timeout.
func New(st storage.Storage, sess SessionClearer, nav Navigator, opts ...Option) *Client {
	c := &Client{
		transport: &http.Client{Timeout: 30 * time.Second},
		storage:   st,
		session:   sess,
		nav:       nav,
		log:       logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "http")
	return c
}

// Do sends req. The Authorization header is added only when the caller did
// not set one and a token is stored; the token is read on every call so a
// login that just finished is honored. Method, body and other headers pass
// through untouched.
//
// The response is returned as is for every status, including 401; callers
// check the status themselves.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	if req.Header.Get("Authorization") == "" {
		token, ok, err := c.storage.Get(ctx, storage.KeyToken)
		if err != nil {
			c.log.Warn(ctx, "token read failed, sending without credentials", "error", err)
		} else if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	resp, err := c.transport.Do(req)
	elapsed := time.Since(start)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	c.metrics.observe(req.Method, status, elapsed)
	c.log.Debug(ctx, "request done",
		"method", req.Method,
		"path", req.URL.Path,
		"status", status,
		"duration", elapsed,
		"request_id", req.Header.Get(RequestIDHeader),
	)

	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized(ctx)
	}
	return resp, nil
}

// unauthorized clears the session and redirects to login unless the user is
// already there.
func (c *Client) unauthorized(ctx context.Context) {
	c.metrics.invalidated()

	defer func() {
		if pathOnly(c.nav.Location()) != LoginPath {
			c.log.Info(ctx, "session rejected by server, redirecting to login")
			c.nav.Navigate(LoginPath)
		}
	}()

	if err := c.session.Clear(ctx); err != nil {
		c.log.Error(ctx, "clear session after 401", "error", err)
	}
}

func pathOnly(location string) string {
	p, _, _ := strings.Cut(location, "?")
	return p
}
