package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type healthResponse struct {
	Status string `json:"status"`
}

// HealthHandler answers liveness probes, including the healthcheck subcommand.
type HealthHandler struct {
	body healthResponse
}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{body: healthResponse{Status: "healthy"}}
}

// Handle reports the process as up. Upstream APIs are not probed.
func (h *HealthHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, h.body)
}
