// Package orderstore persists order documents as JSON under order/<id> keys,
// plus the per-day order counter that yields human-friendly daily order
// numbers for the kitchen display.
package orderstore
