package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, index *IndexHandler, extract *ExtractHandler, timeline *TimelineHandler, health *HealthHandler) {
	e.GET("/", index.Descriptor)
	e.GET("/health", health.Health)

	e.POST("/extract", extract.Extract)
	e.POST("/extract-batch", extract.ExtractBatch)

	e.GET("/extractT/hashtag/:hashtag", timeline.Hashtag)
	e.GET("/extractT/user/:username", timeline.User)
}
