// Package model defines shared types for the gateway.
package model

// UpstreamResponse is a fully buffered response from one of the extraction
// services. Bodies are small JSON documents, so they are read eagerly rather
// than streamed.
type UpstreamResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// ProbeSection is one upstream's part of the composite health report: the
// upstream's decoded health body (or a synthesized error object) with a
// response_time field added.
type ProbeSection map[string]any

// ProxyStatus is the gateway's own section of the health report.
type ProxyStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// HealthReport is the composite /health response body.
type HealthReport struct {
	Proxy      ProxyStatus  `json:"proxy"`
	Backend    ProbeSection `json:"backend"`
	ExtractorT ProbeSection `json:"extractorT"`
}
