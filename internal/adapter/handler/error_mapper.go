package handler

import (
	"errors"
	"net/http"

	"sample-app/internal/domain"

	"github.com/labstack/echo/v4"
)

// authorizationFailed is the body the login callback answers with on any
// rejected code or state.
const authorizationFailed = "Authorization failed"

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrMissingAuthorizationCode),
		errors.Is(err, domain.ErrStateMismatch):
		return echo.NewHTTPError(http.StatusNotAcceptable, authorizationFailed)

	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrSessionInvalid),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrMissingIdentity):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")

	case errors.Is(err, domain.ErrInvalidRequest):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")

	case errors.Is(err, domain.ErrKratosUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unavailable")

	case errors.Is(err, domain.ErrUpstreamUnavailable),
		errors.Is(err, domain.ErrInvalidTokenGrant):
		return echo.NewHTTPError(http.StatusBadGateway, "upstream unavailable")

	case errors.Is(err, domain.ErrTokenGeneration),
		errors.Is(err, domain.ErrStateSecretMissing),
		errors.Is(err, domain.ErrSessionSecretWeak),
		errors.Is(err, domain.ErrSignatureFailed):
		return echo.NewHTTPError(http.StatusInternalServerError, "token generation error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// relay writes an upstream answer back unchanged.
func relay(c echo.Context, resp *domain.UpstreamResponse) error {
	return c.Blob(resp.StatusCode, echo.MIMEApplicationJSON, resp.Body)
}
