// Package runtime assembles the storage, stores, and notification hub behind
// a single-node server instance.
package runtime
