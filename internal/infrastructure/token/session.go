package token

import (
	"errors"
	"fmt"
	"time"

	"sample-app/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// minSessionSecretLen is the shortest accepted HS256 key.
const minSessionSecretLen = 32

// SessionConfig holds session cookie sealing configuration.
type SessionConfig struct {
	Secret string
	Issuer string
	// FallbackTTL applies when the token grant carries no expires_in.
	FallbackTTL time.Duration
}

// sessionClaims is the JWT payload stored in the session cookie.
type sessionClaims struct {
	AccessToken string `json:"at"`
	jwt.RegisteredClaims
}

// JWTSealer stores the access token in an HS256-signed JWT so that the cookie
// cannot be forged or outlive the grant. Implements domain.SessionSealer.
type JWTSealer struct {
	cfg SessionConfig
	now func() time.Time
}

// NewJWTSealer creates a JWT sealer.
func NewJWTSealer(cfg SessionConfig) (*JWTSealer, error) {
	if len(cfg.Secret) < minSessionSecretLen {
		return nil, fmt.Errorf("%w: need at least %d bytes", domain.ErrSessionSecretWeak, minSessionSecretLen)
	}
	return &JWTSealer{cfg: cfg, now: time.Now}, nil
}

// Seal signs the grant's access token.
func (s *JWTSealer) Seal(grant domain.TokenGrant) (string, time.Duration, error) {
	if grant.AccessToken == "" {
		return "", 0, domain.ErrInvalidTokenGrant
	}
	lifetime := grant.Lifetime(s.cfg.FallbackTTL)
	now := s.now()
	claims := sessionClaims{
		AccessToken: grant.AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}
	return signed, lifetime, nil
}

// Open verifies the cookie value and returns the bearer credential inside.
func (s *JWTSealer) Open(value string) (domain.Credential, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(value, &claims,
		func(*jwt.Token) (any, error) { return []byte(s.cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", domain.ErrSessionExpired
	case err != nil:
		return "", fmt.Errorf("%w: %w", domain.ErrSessionInvalid, err)
	case claims.AccessToken == "":
		return "", domain.ErrSessionInvalid
	}
	return domain.BearerCredential(claims.AccessToken), nil
}

// PlainSealer stores "Bearer <token>" in the cookie as is. Used when no session
// secret is configured.
type PlainSealer struct {
	FallbackTTL time.Duration
}

// Seal returns the bearer credential as cookie value.
func (p PlainSealer) Seal(grant domain.TokenGrant) (string, time.Duration, error) {
	if grant.AccessToken == "" {
		return "", 0, domain.ErrInvalidTokenGrant
	}
	return string(domain.BearerCredential(grant.AccessToken)), grant.Lifetime(p.FallbackTTL), nil
}

// Open returns the cookie value as credential.
func (p PlainSealer) Open(value string) (domain.Credential, error) {
	if value == "" {
		return "", domain.ErrSessionNotFound
	}
	return domain.Credential(value), nil
}
