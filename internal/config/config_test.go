package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.KeepAliveSeconds != 30 {
		t.Fatalf("keepalive default")
	}
	if cfg.SubscriberBuffer != 64 {
		t.Fatalf("subscriber buffer default")
	}
	if cfg.StrictStatusFlow {
		t.Fatalf("strict flow should default to off")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mrpizzeria.json")
	data := []byte(`{"keepAliveSeconds":15,"subscriberBuffer":8,"strictStatusFlow":true}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.KeepAliveSeconds != 15 {
		t.Fatalf("expected 15")
	}
	if cfg.SubscriberBuffer != 8 {
		t.Fatalf("expected 8")
	}
	if !cfg.StrictStatusFlow {
		t.Fatalf("expected strict flow on")
	}
	// untouched fields keep their defaults
	if cfg.MaxFilterLength != 2048 {
		t.Fatalf("expected default filter length")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(file, []byte(`{"subscriberBuffer":0}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(file); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	t.Setenv("PIZZERIA_KEEPALIVE_SECONDS", "10")
	t.Setenv("PIZZERIA_STRICT_STATUS_FLOW", "true")
	t.Setenv("PIZZERIA_SUBSCRIBER_BUFFER", "16")
	FromEnv(&cfg)
	if cfg.KeepAliveSeconds != 10 {
		t.Fatalf("env override keepalive")
	}
	if !cfg.StrictStatusFlow {
		t.Fatalf("env override strict flow")
	}
	if cfg.SubscriberBuffer != 16 {
		t.Fatalf("env override buffer")
	}
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("PIZZERIA_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "")
	if dir := DefaultDataDir(); dir == "" {
		t.Fatalf("expected a non-empty default")
	}

	t.Setenv("PIZZERIA_DATA_DIR", "/srv/pizzeria")
	if dir := DefaultDataDir(); dir != "/srv/pizzeria" {
		t.Fatalf("PIZZERIA_DATA_DIR not honored: %q", dir)
	}
}

func TestFromEnvIgnoresInvalid(t *testing.T) {
	cfg := Default()
	t.Setenv("PIZZERIA_KEEPALIVE_SECONDS", "zero")
	FromEnv(&cfg)
	if cfg.KeepAliveSeconds != 30 {
		t.Fatalf("invalid env value should be ignored")
	}
}
