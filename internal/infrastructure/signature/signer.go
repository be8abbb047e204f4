// Package signature signs broker requests with HMAC-SHA256 over their
// canonical JSON form.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"sample-app/internal/domain"
)

// HMACSigner implements domain.RequestSigner.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates a signer keyed by the broker access token.
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign returns base64(HMAC-SHA256(secret, canonical(payload))).
func (s *HMACSigner) Sign(payload any) (string, error) {
	body, err := Canonical(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSignatureFailed, err)
	}
	return digest(s.secret, []byte(body)), nil
}

func digest(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
