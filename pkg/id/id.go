package id

import (
	"encoding/binary"
	"encoding/hex"
	"sync"
	"time"
)

// EventID is a 96-bit sortable identifier: [8 bytes ms timestamp][4 bytes sequence].
type EventID [12]byte

// String returns the lowercase hex form, which preserves chronological order.
func (e EventID) String() string { return hex.EncodeToString(e[:]) }

// IsZero reports whether the id is unset.
func (e EventID) IsZero() bool { return e == EventID{} }

// Time returns the embedded timestamp.
func (e EventID) Time() time.Time {
	ms := int64(binary.BigEndian.Uint64(e[0:8]))
	return time.UnixMilli(ms)
}

// Generator produces monotonically increasing EventIDs per process.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	seq    uint32
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// nowMs is overridable in tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new EventID, strictly greater than any previously returned
// by this generator.
func (g *Generator) Next() EventID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := nowMs()
	if ms <= g.lastMs {
		ms = g.lastMs
		g.seq++
	} else {
		g.seq = 0
	}
	g.lastMs = ms

	var e EventID
	binary.BigEndian.PutUint64(e[0:8], uint64(ms))
	binary.BigEndian.PutUint32(e[8:12], g.seq)
	return e
}
