// Package apiclient talks to the sample-app backend and normalizes every
// response into a Result envelope.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrTransport marks failures where no response could be obtained.
var ErrTransport = errors.New("transport failure")

// Operation names used in logs and ResponseError.
const (
	OpLogin            = "login"
	OpLogout           = "logout"
	OpMe               = "me"
	OpGetIdentity      = "getIdentity"
	OpFetchDataProduct = "fetchDataProduct"
)

// Client performs one request per operation against the backend base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests. The client's cookie jar
// carries the backend session.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login asks the backend for the authorization URI. On success Data["uri"]
// holds the destination the caller navigates to.
func (c *Client) Login(ctx context.Context) (Result, error) {
	return c.do(ctx, OpLogin, http.MethodGet, "/login", nil)
}

// Logout terminates the backend session.
func (c *Client) Logout(ctx context.Context) (Result, error) {
	return c.do(ctx, OpLogout, http.MethodGet, "/logout", nil)
}

// Me returns the claims of the current session.
func (c *Client) Me(ctx context.Context) (Result, error) {
	return c.do(ctx, OpMe, http.MethodGet, "/me", nil)
}

// GetIdentity returns the identity record for id.
func (c *Client) GetIdentity(ctx context.Context, id SessionID) (Result, error) {
	return c.do(ctx, OpGetIdentity, http.MethodGet, "/identities/"+url.PathEscape(string(id)), nil)
}

// FetchDataProduct requests productCode from the broker with parameters as the
// product parameter set.
func (c *Client) FetchDataProduct(ctx context.Context, productCode string, parameters map[string]any) (Result, error) {
	if parameters == nil {
		parameters = map[string]any{}
	}
	body, err := json.Marshal(dataProductRequest{
		ProductCode: productCode,
		Parameters:  parameters,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encoding %s request: %w", OpFetchDataProduct, err)
	}
	return c.do(ctx, OpFetchDataProduct, http.MethodPost, "/fetch-data-product", body)
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (Result, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Result{}, fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "operation", op, "error", err)
		return Result{}, fmt.Errorf("%w: %s: %w", ErrTransport, op, err)
	}
	defer resp.Body.Close()

	result, err := normalize(resp)
	if err != nil {
		return Result{}, err
	}

	c.logger.DebugContext(ctx, "request completed",
		"operation", op,
		"status", resp.StatusCode,
		"ok", result.OK)
	return result, nil
}
