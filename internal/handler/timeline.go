package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tweet-extractor-gateway/internal/model"
	"tweet-extractor-gateway/internal/service"
)

// TimelineHandler forwards the extractT passthrough routes. Responses are
// relayed byte-for-byte with the upstream's content type, not re-encoded.
type TimelineHandler struct {
	gateway *service.Gateway
	logger  *slog.Logger
}

// NewTimelineHandler creates a TimelineHandler.
func NewTimelineHandler(g *service.Gateway, logger *slog.Logger) *TimelineHandler {
	return &TimelineHandler{
		gateway: g,
		logger:  logger.With("component", "timeline_handler"),
	}
}

// Hashtag forwards a hashtag timeline request to the extractorT service.
func (h *TimelineHandler) Hashtag(c echo.Context) error {
	resp, err := h.gateway.Hashtag(c.Param("hashtag"), c.QueryParams())
	return h.relay(c, resp, err)
}

// User forwards a user timeline request to the extractorT service.
func (h *TimelineHandler) User(c echo.Context) error {
	resp, err := h.gateway.User(c.Param("username"), c.QueryParams())
	return h.relay(c, resp, err)
}

func (h *TimelineHandler) relay(c echo.Context, resp *model.UpstreamResponse, err error) error {
	if err != nil {
		h.logger.Error("upstream unreachable",
			"err", err,
			"path", c.Request().URL.Path,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": "Failed to connect to the ExtractorT service: " + err.Error(),
		})
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(resp.StatusCode, contentType, resp.Body)
}
