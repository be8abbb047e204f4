package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sample-app/internal/domain"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxUpstreamBody caps how much of an upstream answer is relayed.
const maxUpstreamBody = 10 << 20

// NewHTTPClient creates the HTTP client shared by the upstream gateways, with a
// tuned transport and outgoing trace propagation.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(transport),
	}
}

// forward performs one upstream call and captures status and body verbatim.
func forward(ctx context.Context, client *http.Client, method, url string, body io.Reader, header http.Header) (*domain.UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrUpstreamUnavailable, url, err)
	}

	return &domain.UpstreamResponse{StatusCode: resp.StatusCode, Body: raw}, nil
}

// jsonBody encodes v as a request body.
func jsonBody(v any) (io.Reader, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %w", domain.ErrInvalidRequest, err)
	}
	return bytes.NewReader(raw), nil
}

func authHeader(credential domain.Credential) http.Header {
	h := http.Header{}
	if credential != "" {
		h.Set("Authorization", string(credential))
	}
	return h
}
