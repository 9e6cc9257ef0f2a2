// Package journal persists per-order status history: an append-only log of
// accepted transitions, read back by the order history endpoint. Writes are
// best-effort from the mutation path; a journal failure never fails the
// status change itself.
package journal
