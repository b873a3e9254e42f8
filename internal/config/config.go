// Package config loads catalog-service configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"git.cscs.ch/openchami/chamicore-catalog/internal/store"
)

const (
	defaultListenAddr        = ":27780"
	defaultBodyLimit         = 1 << 20
	defaultSearchURL         = "https://www.google.com/search"
	defaultMinPasswordLength = 8
)

// Config holds all configuration values for the catalog service.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	// Env: CHAMICORE_CATALOG_LISTEN_ADDR
	ListenAddr string

	// LogLevel controls zerolog verbosity (trace, debug, info, warn, error, fatal, panic).
	// Env: CHAMICORE_CATALOG_LOG_LEVEL
	LogLevel string

	// DevMode enables human-friendly console log output.
	// Env: CHAMICORE_CATALOG_DEV_MODE
	DevMode bool

	// MetricsEnabled controls whether Prometheus metrics are collected and
	// exposed on /metrics.
	// Env: CHAMICORE_CATALOG_METRICS_ENABLED
	MetricsEnabled bool

	// Services lists the resource services to mount.
	// Env: CHAMICORE_CATALOG_SERVICES (comma separated)
	Services []string

	// BodyLimit caps request bodies, in bytes.
	// Env: CHAMICORE_CATALOG_BODY_LIMIT
	BodyLimit int64

	// SearchURL is where /fetch sends search terms.
	// Env: CHAMICORE_CATALOG_SEARCH_URL
	SearchURL string

	// MinPasswordLength is the shortest password /login reports as strong.
	// Env: CHAMICORE_CATALOG_MIN_PASSWORD_LENGTH
	MinPasswordLength int
}

// Load reads configuration from environment variables, applying defaults
// where values are not set.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:        envOrDefault("CHAMICORE_CATALOG_LISTEN_ADDR", defaultListenAddr),
		LogLevel:          strings.ToLower(envOrDefault("CHAMICORE_CATALOG_LOG_LEVEL", "info")),
		DevMode:           envBool("CHAMICORE_CATALOG_DEV_MODE", false),
		MetricsEnabled:    envBool("CHAMICORE_CATALOG_METRICS_ENABLED", true),
		BodyLimit:         int64(envPositiveInt("CHAMICORE_CATALOG_BODY_LIMIT", defaultBodyLimit)),
		SearchURL:         strings.TrimSpace(envOrDefault("CHAMICORE_CATALOG_SEARCH_URL", defaultSearchURL)),
		MinPasswordLength: envPositiveInt("CHAMICORE_CATALOG_MIN_PASSWORD_LENGTH", defaultMinPasswordLength),
	}

	services, err := ParseServices(os.Getenv("CHAMICORE_CATALOG_SERVICES"))
	if err != nil {
		return Config{}, err
	}
	cfg.Services = services

	u, err := url.Parse(cfg.SearchURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid CHAMICORE_CATALOG_SEARCH_URL %q: must be an absolute URL", cfg.SearchURL)
	}

	return cfg, nil
}

// ParseServices parses a comma-separated service list. An empty list selects
// every service. Names are case-insensitive and duplicates are dropped.
func ParseServices(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return slices.Clone(store.Resources), nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !slices.Contains(store.Resources, name) {
			return nil, fmt.Errorf("invalid service %q (allowed: %s)", name, strings.Join(store.Resources, ", "))
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return slices.Clone(store.Resources), nil
	}
	return out, nil
}

// Enabled reports whether the named service is mounted.
func (c Config) Enabled(service string) bool {
	return slices.Contains(c.Services, service)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// envBool accepts strconv.ParseBool values plus yes/on/no/off.
func envBool(key string, defaultVal bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		switch strings.ToLower(v) {
		case "yes", "on":
			return true
		case "no", "off":
			return false
		default:
			return defaultVal
		}
	}
	return b
}

func envPositiveInt(key string, defaultVal int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return defaultVal
	}
	return parsed
}
