package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"sample-app/internal/domain"
)

const authorizationCodeGrant = "authorization_code"

// ExchangeConfig holds the client registration used for the code exchange.
type ExchangeConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// ExchangeInput is the callback query plus the state remembered at login.
type ExchangeInput struct {
	Code          string
	State         string
	ExpectedState string
}

// ExchangeResult is either a session cookie value or, when the login API
// refused the code, its answer to relay.
type ExchangeResult struct {
	SessionValue string
	Lifetime     time.Duration
	Rejected     *domain.UpstreamResponse
}

// ExchangeToken trades an authorization code for a session cookie.
type ExchangeToken struct {
	api    domain.LoginAPI
	sealer domain.SessionSealer
	state  domain.StateIssuer
	cfg    ExchangeConfig
	logger *slog.Logger
}

// NewExchangeToken creates a new ExchangeToken usecase.
func NewExchangeToken(api domain.LoginAPI, sealer domain.SessionSealer, s domain.StateIssuer, cfg ExchangeConfig, l *slog.Logger) *ExchangeToken {
	return &ExchangeToken{api: api, sealer: sealer, state: s, cfg: cfg, logger: l}
}

// Execute validates the callback and performs the exchange.
func (uc *ExchangeToken) Execute(ctx context.Context, in ExchangeInput) (*ExchangeResult, error) {
	if in.Code == "" {
		return nil, domain.ErrMissingAuthorizationCode
	}
	if err := uc.state.Verify(in.ExpectedState, in.State); err != nil {
		uc.logger.WarnContext(ctx, "oauth state rejected", "error", err)
		return nil, err
	}

	resp, err := uc.api.ExchangeToken(ctx, domain.TokenExchangeRequest{
		ClientSecret: uc.cfg.ClientSecret,
		ClientID:     uc.cfg.ClientID,
		RedirectURI:  uc.cfg.RedirectURL,
		GrantType:    authorizationCodeGrant,
		Code:         in.Code,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		uc.logger.WarnContext(ctx, "token exchange refused", "status", resp.StatusCode)
		return &ExchangeResult{Rejected: resp}, nil
	}

	var grant domain.TokenGrant
	if err := json.Unmarshal(resp.Body, &grant); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTokenGrant, err)
	}

	value, lifetime, err := uc.sealer.Seal(grant)
	if err != nil {
		uc.logger.ErrorContext(ctx, "failed to seal session", "error", err)
		return nil, err
	}

	return &ExchangeResult{SessionValue: value, Lifetime: lifetime}, nil
}
