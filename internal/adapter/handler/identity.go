package handler

import (
	"sample-app/internal/usecase"
	"sample-app/utils/logger"

	"github.com/labstack/echo/v4"
)

// IdentityHandler handles /identities/:id.
type IdentityHandler struct {
	uc      *usecase.GetIdentity
	cookies *SessionCookies
}

// NewIdentityHandler creates a new identity handler.
func NewIdentityHandler(uc *usecase.GetIdentity, cookies *SessionCookies) *IdentityHandler {
	return &IdentityHandler{uc: uc, cookies: cookies}
}

// Handle processes the /identities/:id endpoint.
func (h *IdentityHandler) Handle(c echo.Context) error {
	credential, err := h.cookies.Credential(c)
	if err != nil {
		return mapDomainError(err)
	}

	id := c.Param("id")
	ctx := logger.WithUserID(logger.WithOperation(c.Request().Context(), "get_identity"), id)
	resp, err := h.uc.Execute(ctx, id, credential)
	if err != nil {
		return mapDomainError(err)
	}
	return relay(c, resp)
}
