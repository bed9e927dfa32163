package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr string

	// Remote federation API the console fronts.
	APIBaseURL string

	// StateDir holds the persisted operator session (token, user, theme).
	StateDir string

	// Redis & caching. RedisURL empty means the in-process cache store.
	RedisURL     string
	CacheTTL     time.Duration
	CacheTTLRefs time.Duration // long-lived reference data (disciplines)

	// Upstream client timeouts, split by read vs write like the downstream
	// wrapper expects.
	UpstreamReadTimeout  time.Duration
	UpstreamWriteTimeout time.Duration

	// Rate limiting on the console surface.
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8090")
	cfg.APIBaseURL = strings.TrimRight(getEnv("API_BASE_URL", ""), "/")

	cfg.StateDir = getEnv("STATE_DIR", defaultStateDir())

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTL = getDuration("CACHE_TTL", 5*time.Minute)
	cfg.CacheTTLRefs = getDuration("CACHE_TTL_REFS", 12*time.Hour)

	cfg.UpstreamReadTimeout = getDuration("UPSTREAM_READ_TIMEOUT", 2*time.Second)
	cfg.UpstreamWriteTimeout = getDuration("UPSTREAM_WRITE_TIMEOUT", 10*time.Second)

	cfg.RLEnabled = getEnv("RL_ENABLED", "true") == "true"
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("missing API_BASE_URL")
	}

	return cfg, nil
}

func defaultStateDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.fsp-console"
	}
	return ".fsp-console"
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
