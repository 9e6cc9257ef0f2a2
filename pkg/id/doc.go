// Package id provides small, lexicographically sortable event identifiers.
//
// An EventID packs a millisecond timestamp and a per-process sequence into
// 12 bytes, so the hex form sorts chronologically. The notification hub
// stamps every pushed frame with one; clients can use it to de-duplicate
// after a reconnect.
//
// The Generator is monotonic per process: a clock regression pins to the
// last seen millisecond and bumps the sequence instead of going backwards.
package id
