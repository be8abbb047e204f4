package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"sample-app/internal/domain"
)

// GetIdentity reads an identity record on behalf of the session holder.
type GetIdentity struct {
	api    domain.IdentityAPI
	logger *slog.Logger
}

// NewGetIdentity creates a new GetIdentity usecase.
func NewGetIdentity(api domain.IdentityAPI, l *slog.Logger) *GetIdentity {
	return &GetIdentity{api: api, logger: l}
}

// Execute fetches the identity with the given id.
func (uc *GetIdentity) Execute(ctx context.Context, id string, credential domain.Credential) (*domain.UpstreamResponse, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: identity id is required", domain.ErrInvalidRequest)
	}

	resp, err := uc.api.GetIdentity(ctx, id, credential)
	if err != nil {
		uc.logger.ErrorContext(ctx, "identity lookup failed", "error", err)
		return nil, err
	}
	return resp, nil
}
