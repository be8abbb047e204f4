package domain

import (
	"context"
	"time"
)

// LoginAPI trades authorization codes for access tokens.
type LoginAPI interface {
	ExchangeToken(ctx context.Context, req TokenExchangeRequest) (*UpstreamResponse, error)
}

// SessionSource returns the claims of the principal behind a credential.
type SessionSource interface {
	Me(ctx context.Context, credential Credential) (*UpstreamResponse, error)
}

// IdentityAPI reads identity records.
type IdentityAPI interface {
	GetIdentity(ctx context.Context, id string, credential Credential) (*UpstreamResponse, error)
}

// BrokerAPI fetches data products.
type BrokerAPI interface {
	FetchDataProduct(ctx context.Context, req SignedProductRequest) (*UpstreamResponse, error)
}

// ResponseCache keeps successful /me answers per credential.
type ResponseCache interface {
	Get(key string) (*UpstreamResponse, bool)
	Set(key string, resp *UpstreamResponse)
	Delete(key string)
}

// SessionSealer turns a token grant into a cookie value and back.
type SessionSealer interface {
	Seal(grant TokenGrant) (value string, lifetime time.Duration, err error)
	Open(value string) (Credential, error)
}

// StateIssuer issues and checks the OAuth state parameter.
type StateIssuer interface {
	Enabled() bool
	Issue() (string, error)
	Verify(expected, got string) error
}

// RequestSigner signs broker request payloads.
type RequestSigner interface {
	Sign(payload any) (string, error)
}
