// Package config provides loading and environment overlay for mrpizzeria
// runtime configuration. It exposes a Default() baseline, a JSON file
// loader, and a PIZZERIA_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/mrpizzeria.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
