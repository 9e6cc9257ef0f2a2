package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// KeepAliveSeconds is the interval between keep-alive comment frames on
	// open notification streams.
	KeepAliveSeconds int `json:"keepAliveSeconds"`
	// SubscriberBuffer is the per-connection frame buffer; a subscriber whose
	// buffer fills is treated as dead and dropped.
	SubscriberBuffer int `json:"subscriberBuffer"`
	// MaxFilterLength bounds the CEL filter expression accepted on the admin
	// notification stream.
	MaxFilterLength int `json:"maxFilterLength"`
	// StrictStatusFlow, when true, rejects status transitions that don't
	// follow the documented forward progression. The default mirrors the
	// historical behavior: any status from the valid set is accepted.
	StrictStatusFlow bool `json:"strictStatusFlow"`
	// DefaultListLimit caps order listings when the caller doesn't pass one.
	DefaultListLimit int `json:"defaultListLimit"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		KeepAliveSeconds: 30,
		SubscriberBuffer: 64,
		MaxFilterLength:  2048,
		StrictStatusFlow: false,
		DefaultListLimit: 100,
	}
}

// KeepAliveInterval returns the keep-alive period as a duration.
func (c Config) KeepAliveInterval() time.Duration {
	if c.KeepAliveSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.KeepAliveSeconds) * time.Second
}

// Validate checks ranges that would otherwise surface as runtime misbehavior.
func (c Config) Validate() error {
	if c.SubscriberBuffer < 1 {
		return fmt.Errorf("config: subscriberBuffer must be >= 1, got %d", c.SubscriberBuffer)
	}
	if c.MaxFilterLength < 0 {
		return fmt.Errorf("config: maxFilterLength must be >= 0, got %d", c.MaxFilterLength)
	}
	if c.DefaultListLimit < 1 {
		return fmt.Errorf("config: defaultListLimit must be >= 1, got %d", c.DefaultListLimit)
	}
	return nil
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
