// Package rest is the HTTP transport shared by the fabric and policy controller
// clients. It owns TLS verification, per-call timeouts and the mapping of HTTP
// outcomes to typed failures.
package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/sdactl/internal/metrics"
)

const (
	// DefaultLoginTimeout bounds the login exchange.
	DefaultLoginTimeout = 30 * time.Second
	// DefaultRequestTimeout bounds every other call.
	DefaultRequestTimeout = 60 * time.Second
)

// Transport sends one request on behalf of a session.
type Transport interface {
	Send(ctx context.Context, sess Session, method, path string, body any) (Response, error)
}

// Response is the outcome of a successful (2xx) call.
type Response struct {
	StatusCode int
	Body       json.RawMessage
	// Empty is set when the controller answered 2xx without a payload.
	Empty bool
}

// Decode unmarshals the response body into v. Empty responses leave v untouched.
func (r Response) Decode(v any) error {
	if r.Empty {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// Config configures a Client.
type Config struct {
	// Host is a hostname, host:port or a full base URL. Bare hosts get https://.
	Host string

	// VerifyTLS enables server certificate verification.
	VerifyTLS bool

	LoginTimeout   time.Duration
	RequestTimeout time.Duration

	// Controller labels metrics and log lines (e.g. "dnac", "ise").
	Controller string

	Logger logr.Logger

	// HTTPClient replaces the default client. VerifyTLS is ignored when set.
	HTTPClient *http.Client
}

// Client is a minimal JSON client for controller management APIs.
type Client struct {
	baseURL        string
	controller     string
	loginTimeout   time.Duration
	requestTimeout time.Duration
	httpClient     *http.Client
	logger         logr.Logger
}

// NewClient creates a client for the controller at cfg.Host.
func NewClient(cfg Config) *Client {
	loginTimeout := cfg.LoginTimeout
	if loginTimeout <= 0 {
		loginTimeout = DefaultLoginTimeout
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		// #nosec G402 - controllers commonly run with self-signed certificates; opt in with --verify-tls
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !cfg.VerifyTLS}
		httpClient = &http.Client{Transport: transport}
	}

	logger := cfg.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	return &Client{
		baseURL:        BaseURL(cfg.Host),
		controller:     cfg.Controller,
		loginTimeout:   loginTimeout,
		requestTimeout: requestTimeout,
		httpClient:     httpClient,
		logger:         logger.WithValues("controller", cfg.Controller),
	}
}

// BaseURL normalizes a host into a base URL without a trailing slash.
func BaseURL(host string) string {
	host = strings.TrimRight(host, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// Host returns the base URL the client talks to.
func (c *Client) Host() string {
	return c.baseURL
}

// Send issues an authenticated request. Unauthenticated sessions fail with
// ErrNotAuthenticated before any network activity.
func (c *Client) Send(ctx context.Context, sess Session, method, path string, body any) (Response, error) {
	if !sess.Authenticated() {
		return Response{}, ErrNotAuthenticated
	}
	return c.do(ctx, c.requestTimeout, method, path, body, sess.apply)
}

// Login posts to the controller's login path with basic credentials and the
// shorter login timeout. It returns the raw response for the caller to extract
// the token from.
func (c *Client) Login(ctx context.Context, path string, creds Credentials) (Response, error) {
	return c.do(ctx, c.loginTimeout, http.MethodPost, path, nil, func(req *http.Request) {
		req.SetBasicAuth(creds.Username, creds.Password)
	})
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method, path string, body any, auth func(*http.Request)) (Response, error) {
	start := time.Now()
	resp, err := c.roundTrip(ctx, timeout, method, path, body, auth)
	metrics.RecordRequest(c.controller, method, err == nil, time.Since(start).Seconds())
	if err != nil {
		c.logger.Error(err, "Request failed", "method", method, "path", path)
		if text := ResponseBody(err); text != "" {
			c.logger.Info("Response", "body", text)
		}
		return Response{}, err
	}
	c.logger.V(1).Info("Request completed", "method", method, "path", path, "status", resp.StatusCode)
	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, timeout time.Duration, method, path string, body any, auth func(*http.Request)) (Response, error) {
	fail := func(status int, text string, err error) (Response, error) {
		return Response{}, &Error{Method: method, Path: path, StatusCode: status, Body: text, Err: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, "", fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fail(0, "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth != nil {
		auth(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, "", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(resp.StatusCode, string(data), fmt.Errorf("unexpected status %s", resp.Status))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Response{StatusCode: resp.StatusCode, Empty: true}, nil
	}

	if !json.Valid(data) {
		return fail(resp.StatusCode, string(data), fmt.Errorf("parse response: invalid JSON"))
	}

	return Response{StatusCode: resp.StatusCode, Body: json.RawMessage(data)}, nil
}
