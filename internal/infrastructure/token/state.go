package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"sample-app/internal/domain"

	"github.com/google/uuid"
)

// HMACStateIssuer issues OAuth state values of the form nonce.mac, where mac is
// HMAC-SHA256 of the nonce. Implements domain.StateIssuer.
type HMACStateIssuer struct {
	secret []byte
}

// NewHMACStateIssuer creates a state issuer. An empty secret disables the state check.
func NewHMACStateIssuer(secret string) *HMACStateIssuer {
	return &HMACStateIssuer{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (s *HMACStateIssuer) Enabled() bool {
	return len(s.secret) > 0
}

// Issue creates a fresh state value.
func (s *HMACStateIssuer) Issue() (string, error) {
	if !s.Enabled() {
		return "", domain.ErrStateSecretMissing
	}
	nonce := uuid.NewString()
	return nonce + "." + s.mac(nonce), nil
}

// Verify checks that got equals the state stored with the browser and was issued
// by this service.
func (s *HMACStateIssuer) Verify(expected, got string) error {
	if !s.Enabled() {
		return nil
	}
	if expected == "" || got == "" {
		return domain.ErrStateMismatch
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(got)) != 1 {
		return domain.ErrStateMismatch
	}

	nonce, mac, found := strings.Cut(got, ".")
	if !found || !hmac.Equal([]byte(mac), []byte(s.mac(nonce))) {
		return domain.ErrStateMismatch
	}
	return nil
}

func (s *HMACStateIssuer) mac(nonce string) string {
	m := hmac.New(sha256.New, s.secret)
	m.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(m.Sum(nil))
}
