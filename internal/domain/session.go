package domain

import (
	"strings"
	"time"
)

const bearerPrefix = "Bearer "

// Credential is the Authorization header value forwarded to upstream APIs.
type Credential string

// BearerCredential builds a credential from an access token.
func BearerCredential(accessToken string) Credential {
	return Credential(bearerPrefix + accessToken)
}

// Token returns the access token without the Bearer scheme.
func (c Credential) Token() string {
	return strings.TrimPrefix(string(c), bearerPrefix)
}

// TokenGrant is the token endpoint answer of the login API.
type TokenGrant struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type,omitempty"`
}

// Lifetime returns the grant lifetime, or fallback when the grant has none.
func (g TokenGrant) Lifetime(fallback time.Duration) time.Duration {
	if g.ExpiresIn <= 0 {
		return fallback
	}
	return time.Duration(g.ExpiresIn) * time.Second
}

// TokenExchangeRequest is sent to the login API to trade a code for a token.
type TokenExchangeRequest struct {
	ClientSecret string `json:"client_secret"`
	ClientID     string `json:"client_id"`
	RedirectURI  string `json:"redirect_uri"`
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
}

// UpstreamResponse is a response relayed as-is to the caller.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *UpstreamResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Clone returns a deep copy.
func (r *UpstreamResponse) Clone() *UpstreamResponse {
	body := make([]byte, len(r.Body))
	copy(body, r.Body)
	return &UpstreamResponse{StatusCode: r.StatusCode, Body: body}
}
