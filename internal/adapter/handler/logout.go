package handler

import (
	"net/http"

	"sample-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LogoutHandler handles /logout.
type LogoutHandler struct {
	uc      *usecase.Logout
	cookies *SessionCookies
}

// NewLogoutHandler creates a new logout handler.
func NewLogoutHandler(uc *usecase.Logout, cookies *SessionCookies) *LogoutHandler {
	return &LogoutHandler{uc: uc, cookies: cookies}
}

// Handle processes the /logout endpoint. It succeeds with or without a session.
func (h *LogoutHandler) Handle(c echo.Context) error {
	if credential, err := h.cookies.Credential(c); err == nil {
		h.uc.Execute(c.Request().Context(), credential)
	}
	h.cookies.ClearSession(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "Logout"})
}
