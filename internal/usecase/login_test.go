package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"sample-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoginConfig = LoginConfig{
	LoginURL:    "http://localhost:8000/login",
	RedirectURL: "http://localhost:8080/exchangeToken",
	ClientID:    "sample-client",
}

func TestBuildLoginURI_WithoutState(t *testing.T) {
	uc := NewBuildLoginURI(testLoginConfig, &mockState{}, slog.Default())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Empty(t, result.State)

	u, err := url.Parse(result.URI)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/login", u.Scheme+"://"+u.Host+u.Path)
	assert.Equal(t, url.Values{
		"grant_type":    {"authorization"},
		"response_type": {"code"},
		"redirect_uri":  {"http://localhost:8080/exchangeToken"},
		"client_id":     {"sample-client"},
	}, u.Query())
}

func TestBuildLoginURI_WithState(t *testing.T) {
	uc := NewBuildLoginURI(testLoginConfig, &mockState{enabled: true, value: "nonce.mac"}, slog.Default())

	result, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "nonce.mac", result.State)
	u, _ := url.Parse(result.URI)
	assert.Equal(t, "nonce.mac", u.Query().Get("state"))
}

func TestBuildLoginURI_StateFailure(t *testing.T) {
	uc := NewBuildLoginURI(testLoginConfig, &mockState{enabled: true, err: domain.ErrStateSecretMissing}, slog.Default())

	result, err := uc.Execute(context.Background())

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrTokenGeneration))
	assert.True(t, errors.Is(err, domain.ErrStateSecretMissing))
}
