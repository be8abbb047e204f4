package usecase

import (
	"context"
	"log/slog"

	"sample-app/internal/domain"
)

// Logout forgets everything cached for a session.
type Logout struct {
	cache  domain.ResponseCache
	logger *slog.Logger
}

// NewLogout creates a new Logout usecase.
func NewLogout(c domain.ResponseCache, l *slog.Logger) *Logout {
	return &Logout{cache: c, logger: l}
}

// Execute evicts the cached /me answer of credential, if any.
func (uc *Logout) Execute(ctx context.Context, credential domain.Credential) {
	if credential == "" {
		return
	}
	uc.cache.Delete(CacheKey(credential))
	uc.logger.InfoContext(ctx, "session ended")
}
