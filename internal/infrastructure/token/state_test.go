package token

import (
	"errors"
	"strings"
	"testing"

	"sample-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStateSecret = "this-is-a-valid-state-secret-that-is-at-least-32-chars"

func TestHMACStateIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewHMACStateIssuer(testStateSecret)

	state, err := issuer.Issue()
	require.NoError(t, err)
	assert.Contains(t, state, ".")

	assert.NoError(t, issuer.Verify(state, state))
}

func TestHMACStateIssuer_Unique(t *testing.T) {
	issuer := NewHMACStateIssuer(testStateSecret)

	s1, _ := issuer.Issue()
	s2, _ := issuer.Issue()
	assert.NotEqual(t, s1, s2)
}

func TestHMACStateIssuer_Mismatch(t *testing.T) {
	issuer := NewHMACStateIssuer(testStateSecret)
	state, _ := issuer.Issue()
	other, _ := issuer.Issue()

	tests := []struct {
		name     string
		expected string
		got      string
	}{
		{"different state", state, other},
		{"missing query", state, ""},
		{"missing cookie", "", state},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := issuer.Verify(tt.expected, tt.got)
			assert.True(t, errors.Is(err, domain.ErrStateMismatch))
		})
	}
}

func TestHMACStateIssuer_ForgedMAC(t *testing.T) {
	issuer := NewHMACStateIssuer(testStateSecret)
	foreign, _ := NewHMACStateIssuer("another-secret-of-sufficient-length-000").Issue()

	// same value in cookie and query, but not issued by this service
	assert.True(t, errors.Is(issuer.Verify(foreign, foreign), domain.ErrStateMismatch))

	nonce, _, _ := strings.Cut(foreign, ".")
	assert.True(t, errors.Is(issuer.Verify(nonce, nonce), domain.ErrStateMismatch))
}

func TestHMACStateIssuer_Disabled(t *testing.T) {
	issuer := NewHMACStateIssuer("")

	assert.False(t, issuer.Enabled())
	state, err := issuer.Issue()
	assert.Empty(t, state)
	assert.True(t, errors.Is(err, domain.ErrStateSecretMissing))
	assert.NoError(t, issuer.Verify("", "anything"))
}
