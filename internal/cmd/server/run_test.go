package serverrun

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	cfgpkg "github.com/AnshRaj112/mrpizzeria-sub000/internal/config"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
)

func TestGetenvDefault(t *testing.T) {
	_ = os.Setenv("PIZZERIA_TEST_VAR", "env_value")
	t.Cleanup(func() { _ = os.Unsetenv("PIZZERIA_TEST_VAR") })

	if got := getenvDefault("PIZZERIA_TEST_VAR", "default"); got != "env_value" {
		t.Fatalf("set var = %q", got)
	}
	if got := getenvDefault("PIZZERIA_TEST_VAR_UNSET", "default"); got != "default" {
		t.Fatalf("unset var = %q", got)
	}
}

func TestDataDirFallback(t *testing.T) {
	opts := Options{DataDir: ""}
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if opts.DataDir == "" {
		t.Fatal("DataDir empty after fallback")
	}

	opts = Options{DataDir: "/custom/data"}
	if filepath.Join(opts.DataDir, "store") != "/custom/data/store" {
		t.Fatal("store subdirectory not derived from DataDir")
	}
}

// TestRunShutdown starts a real server on an ephemeral port and verifies that
// context cancellation shuts it down cleanly.
func TestRunShutdown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping server startup in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := Run(ctx, Options{
		DataDir:  t.TempDir(),
		HTTPAddr: "127.0.0.1:0",
		Fsync:    pebblestore.FsyncModeNever,
		Config:   cfgpkg.Default(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
}
