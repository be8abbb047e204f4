package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"sample-app/internal/domain"
)

// IdentityGateway reads identity records. Implements domain.IdentityAPI.
type IdentityGateway struct {
	baseURL string
	client  *http.Client
}

// NewIdentityGateway creates a gateway for the identity API at baseURL.
func NewIdentityGateway(baseURL string, client *http.Client) *IdentityGateway {
	return &IdentityGateway{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// GetIdentity fetches the identity record with the given id.
func (g *IdentityGateway) GetIdentity(ctx context.Context, id string, credential domain.Credential) (*domain.UpstreamResponse, error) {
	return forward(ctx, g.client, http.MethodGet, g.baseURL+"/"+url.PathEscape(id), nil, authHeader(credential))
}
