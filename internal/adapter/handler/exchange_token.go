package handler

import (
	"net/http"

	"sample-app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ExchangeTokenHandler handles the OAuth callback /exchangeToken.
type ExchangeTokenHandler struct {
	uc      *usecase.ExchangeToken
	cookies *SessionCookies
	appURL  string
}

// NewExchangeTokenHandler creates a new exchange handler that sends the browser
// to appURL once signed in.
func NewExchangeTokenHandler(uc *usecase.ExchangeToken, cookies *SessionCookies, appURL string) *ExchangeTokenHandler {
	return &ExchangeTokenHandler{uc: uc, cookies: cookies, appURL: appURL}
}

// Handle processes the /exchangeToken endpoint.
func (h *ExchangeTokenHandler) Handle(c echo.Context) error {
	result, err := h.uc.Execute(c.Request().Context(), usecase.ExchangeInput{
		Code:          c.QueryParam("code"),
		State:         c.QueryParam("state"),
		ExpectedState: h.cookies.State(c),
	})
	if err != nil {
		return mapDomainError(err)
	}
	h.cookies.ClearState(c)

	if result.Rejected != nil {
		return relay(c, result.Rejected)
	}

	h.cookies.SetSession(c, result.SessionValue, result.Lifetime)
	return c.Redirect(http.StatusSeeOther, h.appURL)
}
