// Package client provides the HTTP clients for the upstream extraction services.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tweet-extractor-gateway/internal/config"
	"tweet-extractor-gateway/internal/metrics"
	"tweet-extractor-gateway/internal/model"
)

const (
	userAgent = "tweet-extractor-gateway/1.0"
	mimeJSON  = "application/json"
)

// Upstream sends requests to one of the extraction services.
type Upstream struct {
	name       string
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewUpstream creates an Upstream client with connection pooling. Timeouts
// are per call, not per client, because each route carries its own deadline.
// The metrics parameter is optional; pass nil to disable upstream metrics recording.
func NewUpstream(name string, cfg config.UpstreamConfig, logger *slog.Logger, m *metrics.Metrics) (*Upstream, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse %s base_url: %w", name, err)
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.IdleConnections,
		MaxIdleConnsPerHost: cfg.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &Upstream{
		name:       name,
		baseURL:    u,
		httpClient: &http.Client{Transport: transport},
		logger:     logger.With("component", name+"_client"),
		metrics:    m,
	}, nil
}

// Name returns the upstream's identifier as used in logs and metrics.
func (c *Upstream) Name() string {
	return c.name
}

// Get issues a GET to the upstream and buffers the full response.
func (c *Upstream) Get(path string, query url.Values, timeout time.Duration) (*model.UpstreamResponse, error) {
	return c.call(http.MethodGet, path, query, "", nil, timeout)
}

// PostJSON issues a POST with a JSON body to the upstream and buffers the
// full response.
func (c *Upstream) PostJSON(path string, body []byte, timeout time.Duration) (*model.UpstreamResponse, error) {
	return c.call(http.MethodPost, path, nil, mimeJSON, bytes.NewReader(body), timeout)
}

// call builds and executes one upstream request. The deadline context is
// detached from the inbound request on purpose: a client disconnect must not
// cancel the outbound call, which runs to completion or timeout.
func (c *Upstream) call(method, path string, query url.Values, contentType string, body io.Reader, timeout time.Duration) (*model.UpstreamResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("upstream request",
		"method", method,
		"path", path,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	m := metrics.NormalizeMethod(method)
	if c.metrics != nil {
		c.metrics.UpstreamDuration.WithLabelValues(c.name, m).Observe(duration)
	}

	if err != nil {
		return nil, fmt.Errorf("%s request: %w", c.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.metrics != nil {
		c.metrics.UpstreamResponses.WithLabelValues(c.name, m, strconv.Itoa(resp.StatusCode)).Inc()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s response body: %w", c.name, err)
	}

	return &model.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}
