package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"sample-app/internal/domain"

	kratos "github.com/ory/kratos-client-go"
)

// kratosTimeout bounds a single whoami call.
const kratosTimeout = 3 * time.Second

var unauthorizedBody = []byte(`{"message":"Unauthorized"}`)

// KratosGateway resolves bearer credentials as Kratos session tokens.
// Implements domain.SessionSource.
type KratosGateway struct {
	client *kratos.APIClient
}

// NewKratosGateway creates a Kratos gateway that uses httpClient for transport.
func NewKratosGateway(baseURL string, httpClient *http.Client) *KratosGateway {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: baseURL},
	}
	configuration.HTTPClient = httpClient

	return &KratosGateway{client: kratos.NewAPIClient(configuration)}
}

// sessionClaims is the /me answer built from a Kratos session.
type sessionClaims struct {
	ID        string `json:"@id"`
	Type      string `json:"@type"`
	Email     string `json:"email,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	SessionID string `json:"sessionId"`
}

// Me validates the credential's token against Kratos. Rejected or inactive
// sessions produce a 401 answer rather than an error.
func (g *KratosGateway) Me(ctx context.Context, credential domain.Credential) (*domain.UpstreamResponse, error) {
	token := credential.Token()
	if token == "" {
		return unauthorized(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, kratosTimeout)
	defer cancel()

	session, resp, err := g.client.FrontendAPI.ToSession(ctx).XSessionToken(token).Execute()
	if err != nil {
		if resp != nil {
			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return unauthorized(), nil
			}
			return nil, fmt.Errorf("%w: kratos returned status %d", domain.ErrKratosUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrKratosUnavailable, err)
	}

	if session.Active != nil && !*session.Active {
		return unauthorized(), nil
	}
	if session.Identity == nil {
		return nil, domain.ErrMissingIdentity
	}

	claims := sessionClaims{
		ID:        session.Identity.Id,
		Type:      "Identity",
		SessionID: session.Id,
	}
	if traits, ok := session.Identity.Traits.(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			claims.Email = email
		}
	}
	if session.Identity.CreatedAt != nil {
		claims.CreatedAt = session.Identity.CreatedAt.UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrKratosUnavailable, err)
	}
	return &domain.UpstreamResponse{StatusCode: http.StatusOK, Body: body}, nil
}

func unauthorized() *domain.UpstreamResponse {
	return &domain.UpstreamResponse{StatusCode: http.StatusUnauthorized, Body: bytes.Clone(unauthorizedBody)}
}
