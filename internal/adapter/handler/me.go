package handler

import (
	"sample-app/internal/usecase"
	"sample-app/utils/logger"

	"github.com/labstack/echo/v4"
)

// MeHandler handles /me.
type MeHandler struct {
	uc      *usecase.GetMe
	cookies *SessionCookies
}

// NewMeHandler creates a new me handler.
func NewMeHandler(uc *usecase.GetMe, cookies *SessionCookies) *MeHandler {
	return &MeHandler{uc: uc, cookies: cookies}
}

// Handle processes the /me endpoint.
func (h *MeHandler) Handle(c echo.Context) error {
	credential, err := h.cookies.Credential(c)
	if err != nil {
		return mapDomainError(err)
	}

	resp, err := h.uc.Execute(logger.WithOperation(c.Request().Context(), "me"), credential)
	if err != nil {
		return mapDomainError(err)
	}
	return relay(c, resp)
}
