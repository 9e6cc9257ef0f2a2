// Package httpserver exposes the REST and Server-Sent Events endpoints.
package httpserver
