// Package serverrun boots the server process: logger, runtime, services, and
// the HTTP listener, with signal-driven shutdown.
package serverrun
