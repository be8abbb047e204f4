package domain

import "errors"

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInvalid  = errors.New("session cookie invalid")
	ErrSessionExpired  = errors.New("session expired")
	ErrMissingIdentity = errors.New("missing identity in session")
)

// Authorization flow errors.
var (
	ErrMissingAuthorizationCode = errors.New("authorization code missing")
	ErrStateMismatch            = errors.New("authorization state mismatch")
	ErrInvalidTokenGrant        = errors.New("token grant could not be read")
)

// Token errors.
var (
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrStateSecretMissing = errors.New("state secret not configured")
	ErrSessionSecretWeak  = errors.New("session secret too weak")
	ErrSignatureFailed    = errors.New("request signature failed")
)

// External service errors.
var (
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrKratosUnavailable   = errors.New("identity provider unavailable")
)

// Request errors.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrRateLimited    = errors.New("rate limit exceeded")
)
