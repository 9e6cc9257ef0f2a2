package notify

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/AnshRaj112/mrpizzeria-sub000/pkg/id"
	logpkg "github.com/AnshRaj112/mrpizzeria-sub000/pkg/log"
)

// ErrClosed is returned by a sink whose connection has been torn down.
var ErrClosed = errors.New("notify: sink closed")

// ErrSlowConsumer is returned by a sink whose buffer is full. The Hub treats
// it like any other send failure: the sink is dropped.
var ErrSlowConsumer = errors.New("notify: subscriber buffer full")

// Frame is one serialized wire event. ID is a sortable frame identifier
// emitted alongside the data; Data is the JSON event payload.
type Frame struct {
	ID   string
	Data []byte
}

// Sink receives frames for one live connection. Send must not block; report
// a full buffer or closed connection with an error instead.
type Sink interface {
	Send(Frame) error
}

// Hub is the process-wide topic registry. The zero value is not usable;
// construct with NewHub.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[Sink]struct{}
	gen    *id.Generator
	logger logpkg.Logger
}

// NewHub returns an empty registry.
func NewHub(logger logpkg.Logger) *Hub {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Hub{
		topics: make(map[string]map[Sink]struct{}),
		gen:    id.NewGenerator(),
		logger: logger.With(logpkg.Component("notify")),
	}
}

// Subscribe registers sink under topic and returns an unsubscribe handle.
// The handle removes exactly this sink from exactly this topic, deleting the
// topic entry when its set empties, and is safe to call more than once.
func (h *Hub) Subscribe(topic string, sink Sink) func() {
	h.mu.Lock()
	set := h.topics[topic]
	if set == nil {
		set = make(map[Sink]struct{})
		h.topics[topic] = set
	}
	set[sink] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("subscribed", logpkg.Str("topic", topic))

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.removeLocked(topic, sink)
	}
}

// removeLocked deletes sink from topic's set and drops the topic when the
// set empties. A no-op when either is already gone. Caller holds h.mu.
func (h *Hub) removeLocked(topic string, sink Sink) {
	set, ok := h.topics[topic]
	if !ok {
		return
	}
	if _, ok := set[sink]; !ok {
		return
	}
	delete(set, sink)
	if len(set) == 0 {
		delete(h.topics, topic)
	}
}

// Publish serializes ev once and delivers the frame to every sink currently
// registered under topic. Sinks whose Send fails are removed before Publish
// returns; a failure on one sink never blocks delivery to the rest. A topic
// with no subscribers is a normal no-op: a client may disconnect between
// event production and publish.
func (h *Hub) Publish(topic string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("event marshal failed", logpkg.Str("topic", topic), logpkg.Err(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.topics[topic]
	if !ok {
		return
	}

	frame := Frame{ID: h.gen.Next().String(), Data: data}

	var failed []Sink
	for sink := range set {
		if err := sink.Send(frame); err != nil {
			failed = append(failed, sink)
		}
	}
	for _, sink := range failed {
		h.removeLocked(topic, sink)
	}
	if len(failed) > 0 {
		h.logger.Debug("dropped dead subscribers",
			logpkg.Str("topic", topic), logpkg.Int("count", len(failed)))
	}
}

// SubscriberCount returns the number of sinks registered under topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

// TotalSubscribers returns the number of sinks across all topics.
func (h *Hub) TotalSubscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, set := range h.topics {
		n += len(set)
	}
	return n
}
