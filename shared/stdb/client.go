// Package stdb is a thin HTTP client for a remote SpacetimeDB instance. It
// covers the schema, sql and database management endpoints used by the
// console and the command line tool.
package stdb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "spacebase"

// Client issues REST calls against one instance.
type Client struct {
	config    Config
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per request timeout on a private copy of the http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the given config.
func New(cfg Config, opts ...Option) (*Client, error) {
	baseURL, err := BaseURL(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:    cfg,
		baseURL:   baseURL,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL derives the base URL from a config. A URL wins over host and port;
// host and port use plain http for local and private addresses, https otherwise.
func BaseURL(cfg Config) (string, error) {
	if cfg.URL != "" {
		return strings.TrimSuffix(cfg.URL, "/"), nil
	}

	if cfg.Host == "" || cfg.Port <= 0 {
		return "", ErrInvalidConfig
	}

	scheme := "https"
	if isLocalHost(cfg.Host) {
		scheme = "http"
	}

	return scheme + "://" + cfg.Host + ":" + strconv.Itoa(cfg.Port), nil
}

func isLocalHost(host string) bool {
	return strings.Contains(host, "localhost") ||
		strings.Contains(host, "127.0.0.1") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "172.")
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Config returns the config the client was built from.
func (c *Client) Config() Config {
	return c.config
}

// Logger returns the logger the client traces requests with.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Database returns the configured default database, which may be empty.
func (c *Client) Database() string {
	return c.config.Database
}

func (c *Client) resolveDatabase(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return c.config.Database
}

func (c *Client) authorize(req *http.Request) {
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// doJSON sends payload (if any) as JSON and returns the raw response. The
// caller owns the response body.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	return c.send(req)
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("stdb request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Debug("stdb request",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func databasePath(prefix, name, suffix string) string {
	return prefix + url.PathEscape(name) + suffix
}

func isOK(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// statusText mirrors the reason phrase of the response.
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}

func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}

func readBody(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

// stringField reads a string-ish value out of a decoded JSON object.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
