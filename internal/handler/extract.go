package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"tweet-extractor-gateway/internal/model"
	"tweet-extractor-gateway/internal/service"
)

// ExtractHandler forwards the JSON extraction routes to the extractor service.
type ExtractHandler struct {
	gateway *service.Gateway
	logger  *slog.Logger
}

// NewExtractHandler creates an ExtractHandler.
func NewExtractHandler(g *service.Gateway, logger *slog.Logger) *ExtractHandler {
	return &ExtractHandler{
		gateway: g,
		logger:  logger.With("component", "extract_handler"),
	}
}

// Extract forwards a single extraction request and relays the upstream's
// JSON body and status code unchanged.
func (h *ExtractHandler) Extract(c echo.Context) error {
	return h.relay(c, h.gateway.Extract)
}

// ExtractBatch forwards a batch extraction request.
func (h *ExtractHandler) ExtractBatch(c echo.Context) error {
	return h.relay(c, h.gateway.ExtractBatch)
}

func (h *ExtractHandler) relay(c echo.Context, forward func([]byte) (*model.UpstreamResponse, error)) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "Failed to read request body: " + err.Error(),
		})
	}

	// Reject malformed inbound JSON before spending an upstream call on it.
	if !json.Valid(body) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"status":  "error",
			"message": "Request body is not valid JSON",
		})
	}

	resp, err := forward(body)
	if err != nil {
		h.logger.Error("upstream unreachable",
			"err", err,
			"path", c.Request().URL.Path,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": "Failed to connect to the backend service: " + err.Error(),
		})
	}

	// Decode and re-encode so the client always receives well-formed JSON
	// with the gateway's content type, matching the upstream's status code.
	var payload any
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		h.logger.Error("invalid upstream JSON",
			"err", err,
			"path", c.Request().URL.Path,
			"upstream_status", resp.StatusCode,
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status":  "error",
			"message": "Invalid JSON from the backend service: " + err.Error(),
		})
	}

	return c.JSON(resp.StatusCode, payload)
}
