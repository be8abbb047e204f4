package usecase

import (
	"context"
	"sync"
	"time"

	"sample-app/internal/domain"
)

// mockLoginAPI implements domain.LoginAPI for testing.
type mockLoginAPI struct {
	resp *domain.UpstreamResponse
	err  error
	got  domain.TokenExchangeRequest
	hits int
}

func (m *mockLoginAPI) ExchangeToken(_ context.Context, req domain.TokenExchangeRequest) (*domain.UpstreamResponse, error) {
	m.hits++
	m.got = req
	return m.resp, m.err
}

// mockSource implements domain.SessionSource for testing.
type mockSource struct {
	resp *domain.UpstreamResponse
	err  error
	hits int
}

func (m *mockSource) Me(_ context.Context, _ domain.Credential) (*domain.UpstreamResponse, error) {
	m.hits++
	return m.resp, m.err
}

// mockIdentityAPI implements domain.IdentityAPI for testing.
type mockIdentityAPI struct {
	resp       *domain.UpstreamResponse
	err        error
	id         string
	credential domain.Credential
}

func (m *mockIdentityAPI) GetIdentity(_ context.Context, id string, credential domain.Credential) (*domain.UpstreamResponse, error) {
	m.id = id
	m.credential = credential
	return m.resp, m.err
}

// mockBroker implements domain.BrokerAPI for testing.
type mockBroker struct {
	resp *domain.UpstreamResponse
	err  error
	got  domain.SignedProductRequest
}

func (m *mockBroker) FetchDataProduct(_ context.Context, req domain.SignedProductRequest) (*domain.UpstreamResponse, error) {
	m.got = req
	return m.resp, m.err
}

// mockSigner implements domain.RequestSigner for testing.
type mockSigner struct {
	signature string
	err       error
	payload   any
}

func (m *mockSigner) Sign(payload any) (string, error) {
	m.payload = payload
	return m.signature, m.err
}

// mockState implements domain.StateIssuer for testing.
type mockState struct {
	enabled bool
	value   string
	err     error
}

func (m *mockState) Enabled() bool { return m.enabled }

func (m *mockState) Issue() (string, error) { return m.value, m.err }

func (m *mockState) Verify(expected, got string) error {
	if !m.enabled {
		return nil
	}
	if expected == "" || expected != got {
		return domain.ErrStateMismatch
	}
	return nil
}

// mockSealer implements domain.SessionSealer for testing.
type mockSealer struct {
	err error
}

func (m *mockSealer) Seal(grant domain.TokenGrant) (string, time.Duration, error) {
	if m.err != nil {
		return "", 0, m.err
	}
	return "sealed:" + grant.AccessToken, grant.Lifetime(time.Hour), nil
}

func (m *mockSealer) Open(value string) (domain.Credential, error) {
	return domain.Credential(value), nil
}

// mockCache implements domain.ResponseCache for testing.
type mockCache struct {
	mu      sync.Mutex
	entries map[string]*domain.UpstreamResponse
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]*domain.UpstreamResponse)}
}

func (m *mockCache) Get(key string) (*domain.UpstreamResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.entries[key]
	return resp, ok
}

func (m *mockCache) Set(key string, resp *domain.UpstreamResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = resp
}

func (m *mockCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}
