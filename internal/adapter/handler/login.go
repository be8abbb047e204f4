package handler

import (
	"net/http"

	"sample-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LoginHandler handles /login, answering with the authorization URI.
type LoginHandler struct {
	uc      *usecase.BuildLoginURI
	cookies *SessionCookies
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(uc *usecase.BuildLoginURI, cookies *SessionCookies) *LoginHandler {
	return &LoginHandler{uc: uc, cookies: cookies}
}

type loginResponse struct {
	URI string `json:"uri"`
}

// Handle processes the /login endpoint.
func (h *LoginHandler) Handle(c echo.Context) error {
	result, err := h.uc.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	if result.State != "" {
		h.cookies.SetState(c, result.State)
	}
	return c.JSON(http.StatusOK, loginResponse{URI: result.URI})
}
