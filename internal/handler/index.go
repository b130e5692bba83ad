package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IndexHandler serves the static service descriptor on the root path.
type IndexHandler struct{}

// NewIndexHandler creates an IndexHandler.
func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

// descriptor is the static root response. No upstream call is made for it.
var descriptor = map[string]any{
	"name":        "Tweet Extractor API Gateway",
	"description": "This service forwards requests to the Tweet Extractor API running on Railway.",
	"endpoints": []string{
		"/extract",
		"/extract-batch",
		"/extractT/hashtag/{hashtag}",
		"/extractT/user/{username}",
		"/health",
	},
}

// Descriptor returns the service name, description and supported endpoints.
func (h *IndexHandler) Descriptor(c echo.Context) error {
	return c.JSON(http.StatusOK, descriptor)
}
