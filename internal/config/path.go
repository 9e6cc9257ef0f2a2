package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir picks where order data lives when no --data-dir flag is
// given. PIZZERIA_DATA_DIR wins outright; otherwise the per-user application
// data directory for the host OS is used.
func DefaultDataDir() string {
	if dir := os.Getenv("PIZZERIA_DATA_DIR"); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./data"
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MrPizzeria")
	case "windows":
		if local := os.Getenv("LocalAppData"); local != "" {
			return filepath.Join(local, "MrPizzeria")
		}
		return filepath.Join(home, "AppData", "Local", "MrPizzeria")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "mrpizzeria")
		}
		return filepath.Join(home, ".local", "share", "mrpizzeria")
	}
}
