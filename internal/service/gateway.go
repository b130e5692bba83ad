// Package service implements the forwarding and health-probing logic.
package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"tweet-extractor-gateway/internal/client"
	"tweet-extractor-gateway/internal/config"
	"tweet-extractor-gateway/internal/metrics"
	"tweet-extractor-gateway/internal/model"
)

// serviceName identifies the gateway in its own health section.
const serviceName = "tweet-extractor-proxy"

// Per-route upstream deadlines.
const (
	extractTimeout  = 15 * time.Second
	batchTimeout    = 30 * time.Second
	timelineTimeout = 30 * time.Second
	probeTimeout    = 5 * time.Second
)

// defaultTimelineParams are applied to extractT requests when the caller
// omits them. Supplied values pass through as raw strings, unvalidated.
var defaultTimelineParams = map[string]string{
	"max_tweets":  "30",
	"min_tweets":  "10",
	"max_scrolls": "10",
}

// probeWording carries the per-upstream error phrasing for health probes.
type probeWording struct {
	badStatus     string // format string taking the upstream status code
	connectPrefix string
}

var (
	backendWording = probeWording{
		badStatus:     "Backend returned status code %d",
		connectPrefix: "Failed to connect to backend: ",
	}
	extractorTWording = probeWording{
		badStatus:     "ExtractorT service returned status code %d",
		connectPrefix: "Failed to connect to ExtractorT service: ",
	}
)

// Gateway forwards requests to the two extraction services and aggregates
// their health. It holds no mutable state beyond the immutable clients.
type Gateway struct {
	extractor  *client.Upstream
	extractorT *client.Upstream
	logger     *slog.Logger
}

// NewGateway creates a Gateway with one client per configured upstream.
func NewGateway(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*Gateway, error) {
	extractor, err := client.NewUpstream("extractor", cfg.Extractor, logger, m)
	if err != nil {
		return nil, err
	}
	extractorT, err := client.NewUpstream("extractort", cfg.ExtractorT, logger, m)
	if err != nil {
		return nil, err
	}

	return &Gateway{
		extractor:  extractor,
		extractorT: extractorT,
		logger:     logger.With("component", "gateway_service"),
	}, nil
}

// Extract forwards a single extraction request to the extractor service.
func (g *Gateway) Extract(body []byte) (*model.UpstreamResponse, error) {
	return g.extractor.PostJSON("/extract", body, extractTimeout)
}

// ExtractBatch forwards a batch extraction request to the extractor service.
func (g *Gateway) ExtractBatch(body []byte) (*model.UpstreamResponse, error) {
	return g.extractor.PostJSON("/extract-batch", body, batchTimeout)
}

// Hashtag forwards a hashtag timeline request to the extractorT service.
func (g *Gateway) Hashtag(hashtag string, query url.Values) (*model.UpstreamResponse, error) {
	return g.extractorT.Get("/extract/hashtag/"+hashtag, withTimelineDefaults(query), timelineTimeout)
}

// User forwards a user timeline request to the extractorT service.
func (g *Gateway) User(username string, query url.Values) (*model.UpstreamResponse, error) {
	return g.extractorT.Get("/extract/user/"+username, withTimelineDefaults(query), timelineTimeout)
}

// withTimelineDefaults copies the caller's query values and fills in the
// default extraction parameters for any that are absent. Presence is keyed
// on the parameter name: a supplied-but-empty value (?max_tweets=) still
// counts as supplied and passes through untouched.
func withTimelineDefaults(query url.Values) url.Values {
	q := make(url.Values, len(defaultTimelineParams))
	for k, v := range query {
		q[k] = v
	}
	for k, v := range defaultTimelineParams {
		if len(q[k]) == 0 {
			q.Set(k, v)
		}
	}
	return q
}

// Health probes both upstreams sequentially and merges the results with the
// gateway's own static status. It never fails: probe errors become error
// sections in the report.
func (g *Gateway) Health() *model.HealthReport {
	return &model.HealthReport{
		Proxy: model.ProxyStatus{
			Status:    "healthy",
			Service:   serviceName,
			Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		},
		Backend:    g.probe(g.extractor, backendWording),
		ExtractorT: g.probe(g.extractorT, extractorTWording),
	}
}

// probe calls one upstream's /health endpoint. A 200 response contributes
// its decoded body as the section; anything else is synthesized into an
// error object. Reached upstreams get a response_time field in milliseconds
// rounded to two decimals; unreachable ones do not, since no round trip
// completed.
func (g *Gateway) probe(up *client.Upstream, w probeWording) model.ProbeSection {
	start := time.Now()
	resp, err := up.Get("/health", nil, probeTimeout)
	elapsed := time.Since(start)

	if err != nil {
		g.logger.Warn("health probe failed",
			"upstream", up.Name(),
			"err", err,
		)
		return model.ProbeSection{
			"status":  "error",
			"message": w.connectPrefix + err.Error(),
		}
	}

	var section model.ProbeSection
	if resp.StatusCode == http.StatusOK {
		if uerr := json.Unmarshal(resp.Body, &section); uerr != nil || section == nil {
			section = model.ProbeSection{
				"status":  "error",
				"message": fmt.Sprintf("%s health returned invalid JSON", up.Name()),
			}
		}
	} else {
		section = model.ProbeSection{
			"status":  "error",
			"message": fmt.Sprintf(w.badStatus, resp.StatusCode),
		}
	}

	section["response_time"] = roundMillis(elapsed)
	return section
}

// roundMillis converts a duration to milliseconds rounded to 2 decimal places.
func roundMillis(d time.Duration) float64 {
	ms := float64(d.Nanoseconds()) / 1e6
	return math.Round(ms*100) / 100
}
