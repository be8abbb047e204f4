package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"sample-app/internal/domain"
)

// LoginConfig names the authorization endpoint and this client's registration.
type LoginConfig struct {
	LoginURL    string
	RedirectURL string
	ClientID    string
}

// LoginResult holds the authorization URI and, when state is enabled, the
// state value the caller must remember.
type LoginResult struct {
	URI   string
	State string
}

// BuildLoginURI assembles the authorization request URI.
type BuildLoginURI struct {
	cfg    LoginConfig
	state  domain.StateIssuer
	logger *slog.Logger
}

// NewBuildLoginURI creates a new BuildLoginURI usecase.
func NewBuildLoginURI(cfg LoginConfig, s domain.StateIssuer, l *slog.Logger) *BuildLoginURI {
	return &BuildLoginURI{cfg: cfg, state: s, logger: l}
}

// Execute returns the URI the browser should be sent to.
func (uc *BuildLoginURI) Execute(ctx context.Context) (*LoginResult, error) {
	query := url.Values{}
	query.Set("grant_type", "authorization")
	query.Set("response_type", "code")
	query.Set("redirect_uri", uc.cfg.RedirectURL)
	query.Set("client_id", uc.cfg.ClientID)

	result := &LoginResult{}
	if uc.state.Enabled() {
		state, err := uc.state.Issue()
		if err != nil {
			uc.logger.ErrorContext(ctx, "failed to issue oauth state", "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
		}
		query.Set("state", state)
		result.State = state
	}

	result.URI = uc.cfg.LoginURL + "?" + query.Encode()
	return result, nil
}
