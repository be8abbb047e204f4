package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"sample-app/internal/domain"
)

// CacheKey derives the /me cache key from a credential so tokens are not kept
// in memory as map keys.
func CacheKey(credential domain.Credential) string {
	sum := sha256.Sum256([]byte(credential))
	return hex.EncodeToString(sum[:])
}

// GetMe returns the session claims for a credential with cache-through strategy.
type GetMe struct {
	source domain.SessionSource
	cache  domain.ResponseCache
	logger *slog.Logger
}

// NewGetMe creates a new GetMe usecase.
func NewGetMe(s domain.SessionSource, c domain.ResponseCache, l *slog.Logger) *GetMe {
	return &GetMe{source: s, cache: c, logger: l}
}

// Execute returns the upstream answer. Only successful answers for a present
// credential are cached.
func (uc *GetMe) Execute(ctx context.Context, credential domain.Credential) (*domain.UpstreamResponse, error) {
	if credential == "" {
		return uc.source.Me(ctx, credential)
	}

	key := CacheKey(credential)
	if cached, found := uc.cache.Get(key); found {
		uc.logger.DebugContext(ctx, "session cache hit")
		return cached, nil
	}

	resp, err := uc.source.Me(ctx, credential)
	if err != nil {
		return nil, err
	}
	if resp.OK() {
		uc.cache.Set(key, resp)
	}
	return resp, nil
}
