// Package client contains Cobra CLI commands that talk to a running server
// over its HTTP API.
package client
