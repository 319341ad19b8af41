package api

import (
	"os"
	"strconv"
	"strings"
)

// Config contains the HTTP API's tunables.
type Config struct {
	// MaxBodyBytes caps request body size for all JSON endpoints.
	MaxBodyBytes int64
}

// DefaultConfig returns production-safe defaults.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes: 1 << 20, // 1 MiB
	}
}

// LoadConfigFromEnv returns DefaultConfig with env overrides applied.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if raw := strings.TrimSpace(os.Getenv("ROLODEX_API_MAX_BODY_BYTES")); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}

	return cfg
}
