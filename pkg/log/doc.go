// Package log provides the structured logging facade used across mrpizzeria.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Output flows through a Formatter (JSON
// or text) into one or more Outputs (console by default), so every component
// logs in a consistent shape.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	)
//	l = l.With(log.Component("notify"))
//	l.Info("hub started", log.Int("topics", 0))
//
// # Configuration
//
// Use ApplyConfig to build a logger from a declarative Config, supporting
// JSON or text formatting and a level parsed with ParseLevel.
package log
