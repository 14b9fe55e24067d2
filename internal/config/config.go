// Package config resolves the console's runtime configuration once at
// process start. Base URLs come from the environment; everything else is
// flag- or preference-driven and passed in explicitly by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config captures everything the console needs to reach the backend.
type Config struct {
	// APIBaseURL is used for requests issued directly by the console.
	APIBaseURL string
	// ProxyBaseURL is used when requests should be routed through the
	// server-side proxy instead of hitting the backend directly.
	ProxyBaseURL string
	// PollInterval is the page refresh cadence.
	PollInterval time.Duration
	// LogFile receives diagnostic output; the TUI owns the terminal.
	LogFile string
	// ExportDir receives CSV exports.
	ExportDir string
}

const (
	envAPIBaseURL   = "UPWORK_DNA_API_URL"
	envProxyBaseURL = "UPWORK_DNA_PROXY_URL"

	defaultBaseURL      = "http://127.0.0.1:8000"
	defaultPollInterval = 5 * time.Second
	defaultLogFile      = "~/.local/state/dnatop/dnatop.log"
)

// Load resolves the configuration from the environment, falling back to
// the loopback defaults when unset.
func Load() Config {
	cfg := Config{
		APIBaseURL:   strings.TrimSpace(os.Getenv(envAPIBaseURL)),
		ProxyBaseURL: strings.TrimSpace(os.Getenv(envProxyBaseURL)),
		PollInterval: defaultPollInterval,
		LogFile:      mustExpand(defaultLogFile),
		ExportDir:    ".",
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultBaseURL
	}
	if cfg.ProxyBaseURL == "" {
		cfg.ProxyBaseURL = cfg.APIBaseURL
	}
	return cfg
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
