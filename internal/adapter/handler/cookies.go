package handler

import (
	"errors"
	"net/http"
	"time"

	"sample-app/internal/domain"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName carries the (optionally sealed) bearer credential.
	SessionCookieName = "Authorization"
	// StateCookieName carries the OAuth state between /login and /exchangeToken.
	StateCookieName = "oauth_state"

	stateCookieTTL = 10 * time.Minute
)

// SessionCookies reads and writes the cookies of the browser session.
type SessionCookies struct {
	sealer domain.SessionSealer
	secure bool
}

// NewSessionCookies creates the cookie helper. secure marks cookies as HTTPS-only.
func NewSessionCookies(sealer domain.SessionSealer, secure bool) *SessionCookies {
	return &SessionCookies{sealer: sealer, secure: secure}
}

// Credential returns the credential carried by the session cookie. A missing
// cookie yields an empty credential and no error.
func (s *SessionCookies) Credential(c echo.Context) (domain.Credential, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return "", nil
	}
	if err != nil {
		return "", domain.ErrSessionInvalid
	}
	return s.sealer.Open(cookie.Value)
}

// SetSession stores a sealed session value.
func (s *SessionCookies) SetSession(c echo.Context, value string, lifetime time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearSession removes the session cookie.
func (s *SessionCookies) ClearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// SetState remembers the OAuth state. SameSite=Lax so the cookie survives the
// top-level redirect back from the login app.
func (s *SessionCookies) SetState(c echo.Context, state string) {
	c.SetCookie(&http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// State returns the remembered OAuth state, or "".
func (s *SessionCookies) State(c echo.Context) string {
	cookie, err := c.Cookie(StateCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ClearState removes the OAuth state cookie.
func (s *SessionCookies) ClearState(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
