package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iwvelando/toolhub/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.RequestSizeBytes() != constants.DefaultMaxRequestSizeBytes {
		t.Fatalf("expected default max request size, got %d", cfg.RequestSizeBytes())
	}
	if cfg.ShutdownTimeoutDuration() != 10*time.Second {
		t.Fatalf("expected 10s shutdown timeout, got %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.RateLimit.RequestsPerSecond != constants.DefaultRequestsPerSecond || cfg.RateLimit.Burst != constants.DefaultRateBurst {
		t.Fatalf("unexpected rate limit defaults %+v", cfg.RateLimit)
	}
	if cfg.Cache.Backend != constants.CacheBackendMemory {
		t.Fatalf("expected memory cache by default, got %q", cfg.Cache.Backend)
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxRequestSize: 2M
shutdownTimeout: 3s
rateLimit:
  requestsPerSecond: 2.5
cache:
  backend: redis
  ttl: 1h
  redis:
    address: redis:6379
    db: 2
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.RequestSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max request override, got %d", cfg.RequestSizeBytes())
	}
	if cfg.ShutdownTimeoutDuration() != 3*time.Second {
		t.Fatalf("expected 3s shutdown timeout, got %v", cfg.ShutdownTimeoutDuration())
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Fatalf("expected rate override, got %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.Burst != constants.DefaultRateBurst {
		t.Fatalf("expected burst to keep its default, got %d", cfg.RateLimit.Burst)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != time.Hour {
		t.Fatalf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.Cache.Redis.Address != "redis:6379" || cfg.Cache.Redis.DB != 2 {
		t.Fatalf("unexpected redis config %+v", cfg.Cache.Redis)
	}
	if cfg.Cache.CleanupInterval != 30*time.Minute {
		t.Fatalf("expected default cleanup interval, got %v", cfg.Cache.CleanupInterval)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected logging format console, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging output file override, got %s", cfg.Logging.OutputFile)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"invalid yaml", "address: [\n"},
		{"bad size", "maxRequestSize: 10Q\n"},
		{"bad timeout", "shutdownTimeout: soon\n"},
		{"negative rate", "rateLimit:\n  requestsPerSecond: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server-config.yaml")
			if err := os.WriteFile(path, []byte(tt.contents), 0600); err != nil {
				t.Fatalf("failed to write temp config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"", constants.DefaultMaxRequestSizeBytes, false},
		{"1024", 1024, false},
		{"512B", 512, false},
		{"256K", 256 * 1024, false},
		{"256kb", 256 * 1024, false},
		{" 10M ", 10 * 1024 * 1024, false},
		{"1G", 0, true},
		{"abc", 0, true},
		{"K", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSize(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Fatalf("ParseSize(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
