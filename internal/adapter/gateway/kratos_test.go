package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sample-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kratosSession(active bool) map[string]any {
	return map[string]any{
		"id":     "sess-1",
		"active": active,
		"identity": map[string]any{
			"id":         "user-abc-123",
			"schema_id":  "default",
			"schema_url": "http://kratos/schemas/default",
			"traits":     map[string]any{"email": "test@example.com"},
			"created_at": "2024-01-02T03:04:05Z",
		},
	}
}

func newKratos(t *testing.T, status int, body any) *KratosGateway {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/whoami", r.URL.Path)
		assert.Equal(t, "tok-123", r.Header.Get("X-Session-Token"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return NewKratosGateway(server.URL, NewHTTPClient(5*time.Second))
}

func TestKratosGateway_Me_Success(t *testing.T) {
	gw := newKratos(t, http.StatusOK, kratosSession(true))

	resp, err := gw.Me(context.Background(), domain.BearerCredential("tok-123"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{
		"@id":"user-abc-123",
		"@type":"Identity",
		"email":"test@example.com",
		"createdAt":"2024-01-02T03:04:05Z",
		"sessionId":"sess-1"
	}`, string(resp.Body))
}

func TestKratosGateway_Me_Inactive(t *testing.T) {
	gw := newKratos(t, http.StatusOK, kratosSession(false))

	resp, err := gw.Me(context.Background(), domain.BearerCredential("tok-123"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestKratosGateway_Me_Rejected(t *testing.T) {
	gw := newKratos(t, http.StatusUnauthorized, map[string]any{
		"error": map[string]any{"code": 401, "message": "No valid session"},
	})

	resp, err := gw.Me(context.Background(), domain.BearerCredential("tok-123"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, string(resp.Body))
}

func TestKratosGateway_Me_ServerError(t *testing.T) {
	gw := newKratos(t, http.StatusInternalServerError, map[string]any{
		"error": map[string]any{"code": 500, "message": "boom"},
	})

	resp, err := gw.Me(context.Background(), domain.BearerCredential("tok-123"))

	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, domain.ErrKratosUnavailable))
}

func TestKratosGateway_Me_EmptyCredential(t *testing.T) {
	gw := NewKratosGateway("http://unused", NewHTTPClient(time.Second))

	resp, err := gw.Me(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
