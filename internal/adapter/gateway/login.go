package gateway

import (
	"context"
	"net/http"
	"strings"

	"sample-app/internal/domain"
)

// LoginGateway talks to the login app API. Implements domain.LoginAPI and
// domain.SessionSource.
type LoginGateway struct {
	baseURL string
	client  *http.Client
}

// NewLoginGateway creates a gateway for the login app API at baseURL.
func NewLoginGateway(baseURL string, client *http.Client) *LoginGateway {
	return &LoginGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// ExchangeToken trades an authorization code for an access token.
func (g *LoginGateway) ExchangeToken(ctx context.Context, req domain.TokenExchangeRequest) (*domain.UpstreamResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")

	return forward(ctx, g.client, http.MethodPost, g.baseURL+"/exchangeToken", body, header)
}

// Me returns the claims of the principal behind credential.
func (g *LoginGateway) Me(ctx context.Context, credential domain.Credential) (*domain.UpstreamResponse, error) {
	return forward(ctx, g.client, http.MethodGet, g.baseURL+"/me", nil, authHeader(credential))
}
