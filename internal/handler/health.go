package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tweet-extractor-gateway/internal/service"
)

// HealthHandler serves the composite health endpoint.
type HealthHandler struct {
	gateway *service.Gateway
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(g *service.Gateway) *HealthHandler {
	return &HealthHandler{gateway: g}
}

// Health probes both upstreams and returns the merged report. The route
// always answers 200; upstream failures appear inside their sections.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.gateway.Health())
}
