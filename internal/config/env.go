package config

import (
	"os"
	"strconv"
)

// FromEnv overlays PIZZERIA_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("PIZZERIA_KEEPALIVE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.KeepAliveSeconds = n
		}
	}
	if v := os.Getenv("PIZZERIA_SUBSCRIBER_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SubscriberBuffer = n
		}
	}
	if v := os.Getenv("PIZZERIA_MAX_FILTER_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxFilterLength = n
		}
	}
	if v := os.Getenv("PIZZERIA_STRICT_STATUS_FLOW"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StrictStatusFlow = b
		}
	}
	if v := os.Getenv("PIZZERIA_DEFAULT_LIST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultListLimit = n
		}
	}
}
