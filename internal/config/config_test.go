package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// cliWithPath returns a CLI struct pointing at the given config file.
func cliWithPath(path string) *CLI {
	return &CLI{Config: path}
}

// cliWithURLs returns a CLI struct carrying only the two upstream URLs,
// simulating an env-only deployment.
func cliWithURLs() *CLI {
	return &CLI{
		ExtractorURL:  "http://extractor.example:8080",
		ExtractorTURL: "http://extractort.example:8080",
	}
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9000
body_max_bytes = 5242880

[extractor]
base_url = "https://extractor.example"
idle_connections = 50

[extractort]
base_url = "https://extractort.example"

[log]
level = "debug"
format = "text"
`)

	cfg, err := Load(cliWithPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9000)
	}
	if cfg.Extractor.BaseURL != "https://extractor.example" {
		t.Errorf("Extractor.BaseURL = %q, want %q", cfg.Extractor.BaseURL, "https://extractor.example")
	}
	if cfg.Extractor.IdleConnections != 50 {
		t.Errorf("Extractor.IdleConnections = %d, want %d", cfg.Extractor.IdleConnections, 50)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	// No config file at all; both URLs come from CLI/env bindings.
	cfg, err := Load(cliWithURLs())
	if err != nil {
		t.Fatalf("Load() error = %v; env-only config should be sufficient", err)
	}
	if cfg.Extractor.BaseURL != "http://extractor.example:8080" {
		t.Errorf("Extractor.BaseURL = %q", cfg.Extractor.BaseURL)
	}
	if cfg.ExtractorT.BaseURL != "http://extractort.example:8080" {
		t.Errorf("ExtractorT.BaseURL = %q", cfg.ExtractorT.BaseURL)
	}
}

func TestLoad_MissingExtractorURL(t *testing.T) {
	cli := &CLI{ExtractorTURL: "http://extractort.example"}
	_, err := Load(cli)
	if err == nil {
		t.Fatal("Load() expected error for missing extractor URL, got nil")
	}
	if !strings.Contains(err.Error(), "TWEET_EXTRACTOR_URL") {
		t.Errorf("error = %q, want mention of TWEET_EXTRACTOR_URL", err)
	}
}

func TestLoad_MissingExtractorTURL(t *testing.T) {
	cli := &CLI{ExtractorURL: "http://extractor.example"}
	_, err := Load(cli)
	if err == nil {
		t.Fatal("Load() expected error for missing extractorT URL, got nil")
	}
	if !strings.Contains(err.Error(), "EXTRACTORT_URL") {
		t.Errorf("error = %q, want mention of EXTRACTORT_URL", err)
	}
}

func TestLoad_BadUpstreamScheme(t *testing.T) {
	cli := &CLI{
		ExtractorURL:  "ftp://extractor.example",
		ExtractorTURL: "http://extractort.example",
	}
	_, err := Load(cli)
	if err == nil {
		t.Fatal("Load() expected error for non-http scheme, got nil")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	cli := cliWithURLs()
	cli.LogLevel = "verbose"
	_, err := Load(cli)
	if err == nil {
		t.Fatal("Load() expected error for invalid log level, got nil")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(cliWithURLs())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("default Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("default Server.Port = %d, want %d", cfg.Server.Port, 5000)
	}
	if cfg.Server.BodyMaxBytes != 10*1024*1024 {
		t.Errorf("default Server.BodyMaxBytes = %d, want %d", cfg.Server.BodyMaxBytes, 10*1024*1024)
	}
	if cfg.Extractor.IdleConnections != 100 {
		t.Errorf("default Extractor.IdleConnections = %d, want %d", cfg.Extractor.IdleConnections, 100)
	}
	if cfg.ExtractorT.IdleConnections != 100 {
		t.Errorf("default ExtractorT.IdleConnections = %d, want %d", cfg.ExtractorT.IdleConnections, 100)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("default Log.Format = %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	cli := cliWithURLs()
	cli.Config = "/nonexistent/config.toml"
	_, err := Load(cli)
	if err == nil {
		t.Fatal("Load() expected error for missing explicit config file, got nil")
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "0.0.0.0"
port = 8000

[extractor]
base_url = "https://toml-extractor.example"

[extractort]
base_url = "https://toml-extractort.example"

[log]
level = "info"
`)

	cli := &CLI{
		Config:        path,
		Host:          "127.0.0.1",
		Port:          3000,
		ExtractorURL:  "https://cli-extractor.example",
		ExtractorTURL: "https://cli-extractort.example",
		LogLevel:      "debug",
	}

	cfg, err := Load(cli)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q (CLI override)", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d (CLI override)", cfg.Server.Port, 3000)
	}
	if cfg.Extractor.BaseURL != "https://cli-extractor.example" {
		t.Errorf("Extractor.BaseURL = %q, want CLI override", cfg.Extractor.BaseURL)
	}
	if cfg.ExtractorT.BaseURL != "https://cli-extractort.example" {
		t.Errorf("ExtractorT.BaseURL = %q, want CLI override", cfg.ExtractorT.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (CLI override)", cfg.Log.Level, "debug")
	}
}

func TestLoad_NegativePort(t *testing.T) {
	cli := cliWithURLs()
	cli.Port = -1
	_, err := Load(cli)
	if err == nil {
		t.Fatal("Load() expected error for negative port, got nil")
	}
}

func TestLoad_NegativeBodyMaxBytes(t *testing.T) {
	path := writeConfig(t, `
[server]
body_max_bytes = -1

[extractor]
base_url = "https://extractor.example"

[extractort]
base_url = "https://extractort.example"
`)

	_, err := Load(cliWithPath(path))
	if err == nil {
		t.Fatal("Load() expected error for negative body_max_bytes, got nil")
	}
}

func TestLoad_RateLimitConfig_Enabled(t *testing.T) {
	path := writeConfig(t, `
[extractor]
base_url = "https://extractor.example"

[extractort]
base_url = "https://extractort.example"

[server.rate_limit]
enabled = true
requests_per_second = 50.0
`)

	cfg, err := Load(cliWithPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Server.RateLimit.Enabled {
		t.Error("expected RateLimit.Enabled = true")
	}
	if cfg.Server.RateLimit.RequestsPerSecond != 50.0 {
		t.Errorf("RateLimit.RequestsPerSecond = %v, want 50.0", cfg.Server.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_RateLimitConfig_BadValue(t *testing.T) {
	path := writeConfig(t, `
[extractor]
base_url = "https://extractor.example"

[extractort]
base_url = "https://extractort.example"

[server.rate_limit]
enabled = true
requests_per_second = 0
`)

	_, err := Load(cliWithPath(path))
	if err == nil {
		t.Fatal("Load() expected error for rate limit enabled with requests_per_second=0, got nil")
	}
	if !strings.Contains(err.Error(), "requests_per_second") {
		t.Errorf("error = %q, want mention of requests_per_second", err)
	}
}

func TestFindConfigInPaths_Found(t *testing.T) {
	path := writeConfig(t, "# test\n")
	got := findConfigInPaths([]string{path})
	if got != path {
		t.Errorf("findConfigInPaths() = %q, want %q", got, path)
	}
}

func TestFindConfigInPaths_NotFound(t *testing.T) {
	got := findConfigInPaths([]string{"/nonexistent/a.toml", "/nonexistent/b.toml"})
	if got != "" {
		t.Errorf("findConfigInPaths() = %q, want empty", got)
	}
}

func TestLoad_MetricsPathDefault(t *testing.T) {
	path := writeConfig(t, `
[extractor]
base_url = "https://extractor.example"

[extractort]
base_url = "https://extractort.example"

[metrics]
enabled = true
`)

	cfg, err := Load(cliWithPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}
}

func TestLoad_MetricsPathConflictsWithRoute(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"root", "/"},
		{"extract exact", "/extract"},
		{"extract-batch exact", "/extract-batch"},
		{"extractT sub", "/extractT/metrics"},
		{"health", "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, `
[extractor]
base_url = "https://extractor.example"

[extractort]
base_url = "https://extractort.example"

[metrics]
enabled = true
path = "`+tt.path+`"
`)

			_, err := Load(cliWithPath(path))
			if err == nil {
				t.Fatalf("Load() expected error for metrics.path=%q conflicting with route, got nil", tt.path)
			}
			if !strings.Contains(err.Error(), "conflicts") {
				t.Errorf("error = %q, want mention of conflict", err)
			}
		})
	}
}

func TestLoad_MetricsPathValid(t *testing.T) {
	path := writeConfig(t, `
[extractor]
base_url = "https://extractor.example"

[extractort]
base_url = "https://extractort.example"

[metrics]
enabled = true
path = "/custom-metrics"
`)

	cfg, err := Load(cliWithPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Metrics.Path != "/custom-metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/custom-metrics")
	}
}

func TestLoad_MetricsDisabledSkipsPathValidation(t *testing.T) {
	path := writeConfig(t, `
[extractor]
base_url = "https://extractor.example"

[extractort]
base_url = "https://extractort.example"

[metrics]
enabled = false
path = "bad-no-slash"
`)

	_, err := Load(cliWithPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v; disabled metrics should skip path validation", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	sc := &ServerConfig{Host: "127.0.0.1", Port: 3000}
	want := "127.0.0.1:3000"
	if got := sc.Addr(); got != want {
		t.Errorf("Addr() = %q, want %q", got, want)
	}
}
