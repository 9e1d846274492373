// Package api is the typed client for the notes REST API. Every call goes
// through the authenticated HTTP client, so 401 handling stays central.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	base    *url.URL
	doer    Doer
	timeout time.Duration
	log     logging.Logger
}

type Option func(*Client)

// WithTimeout bounds every call; zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, doer Doer, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	c := &Client{base: u, doer: doer, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root every endpoint is resolved against.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.base.String(), "/")
}

type call struct {
	method   string
	path     []string
	query    url.Values
	body     any
	fallback string
}

// do performs the call and returns the raw 2xx body.
func (c *Client) do(ctx context.Context, cl call) ([]byte, *Error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.base.JoinPath(cl.path...)
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, &Error{Kind: KindDecode, Message: cl.fallback, cause: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: cl.fallback, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		c.log.Warn(ctx, "api call failed", "method", cl.method, "path", u.Path, "error", err)
		return nil, &Error{Kind: KindTransport, Message: cl.fallback, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Status: resp.StatusCode, Message: cl.fallback, cause: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &Error{Kind: KindUnauthorized, Status: resp.StatusCode, Message: ExtractMessage(raw, "session expired")}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg := ExtractMessage(raw, cl.fallback)
		c.log.Debug(ctx, "api call rejected", "method", cl.method, "path", u.Path, "status", resp.StatusCode)
		return nil, &Error{Kind: KindApplication, Status: resp.StatusCode, Message: msg}
	}
	return raw, nil
}

func send[T any](ctx context.Context, c *Client, cl call, decode func([]byte) (T, error)) Result[T] {
	raw, apiErr := c.do(ctx, cl)
	if apiErr != nil {
		return failWith[T](apiErr)
	}
	v, err := decode(raw)
	if err != nil {
		return Fail[T](KindDecode, http.StatusOK, cl.fallback, err)
	}
	return Ok(v)
}

// decodeList accepts {"data":[...]} and, leniently, a bare array.
func decodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	var env struct {
		Data *[]T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, errors.New("missing data array")
	}
	if *env.Data == nil {
		return []T{}, nil
	}
	return *env.Data, nil
}

// decodeOne accepts {"data":{...}} or a bare object.
func decodeOne[T any](raw []byte) (T, error) {
	var zero T
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return zero, err
	}
	if obj == nil {
		return zero, errors.New("empty object")
	}
	src := raw
	if data, ok := obj["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		src = data
	}
	var v T
	if err := json.Unmarshal(src, &v); err != nil {
		return zero, err
	}
	return v, nil
}

// decodeMessage tolerates empty and non-JSON success bodies.
func decodeMessage(raw []byte) (string, error) {
	return ExtractMessage(raw, ""), nil
}

func idPath(v int64) string {
	return strconv.FormatInt(v, 10)
}
