// Package notify implements the in-process notification core: a topic
// registry fanning order events out to live subscriber sinks.
//
// # Model
//
// A topic key is an opaque string naming a logical channel: one order (by
// its durable id, or by a contact-number alias) or the admin-wide new-order
// feed. A Sink is one live connection's output; the Hub maps each topic key
// to the set of sinks currently subscribed to it.
//
// Publish serializes an event once, stamps it with a sortable frame id, and
// writes the frame to every sink registered under the key. A sink whose Send
// fails is removed in the same operation; a key with no subscribers is a
// silent no-op. Delivery is best-effort and at-most-once: nothing is
// persisted, nothing is replayed, and a reconnecting client re-synchronizes
// by pulling the order instead.
//
// # Concurrency
//
// One coarse mutex serializes all registry mutations and deliveries, which
// gives FIFO ordering per sink for a given topic key. Sinks must not block:
// the HTTP sink buffers frames per connection and reports a full buffer as a
// send failure, so a stalled client is dropped instead of stalling the
// publisher.
package notify
