package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"

	"sample-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIdentity_Success(t *testing.T) {
	api := &mockIdentityAPI{resp: &domain.UpstreamResponse{StatusCode: http.StatusOK, Body: []byte(`{"name":"x"}`)}}
	uc := NewGetIdentity(api, slog.Default())

	resp, err := uc.Execute(context.Background(), "u1", domain.BearerCredential("tok"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1", api.id)
	assert.Equal(t, domain.Credential("Bearer tok"), api.credential)
}

func TestGetIdentity_EmptyID(t *testing.T) {
	uc := NewGetIdentity(&mockIdentityAPI{}, slog.Default())

	_, err := uc.Execute(context.Background(), "", "")

	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestGetIdentity_UpstreamError(t *testing.T) {
	uc := NewGetIdentity(&mockIdentityAPI{err: domain.ErrUpstreamUnavailable}, slog.Default())

	_, err := uc.Execute(context.Background(), "u1", "")

	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}
