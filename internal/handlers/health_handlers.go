package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check requests
type HealthHandlers struct {
	version string
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(version string) *HealthHandlers {
	return &HealthHandlers{version: version}
}

// Health handles GET /health
func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}
