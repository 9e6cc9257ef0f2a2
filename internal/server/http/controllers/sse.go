package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/notify"
)

// streamSink buffers frames between the hub and one SSE connection. Send is
// called with the hub lock held, so it never blocks: a full buffer reports
// ErrSlowConsumer and the hub drops the subscriber.
type streamSink struct {
	ch     chan notify.Frame
	closed chan struct{}
	once   sync.Once
}

func newStreamSink(buffer int) *streamSink {
	if buffer < 1 {
		buffer = 1
	}
	return &streamSink{
		ch:     make(chan notify.Frame, buffer),
		closed: make(chan struct{}),
	}
}

// Send queues a frame for the writer loop.
func (s *streamSink) Send(f notify.Frame) error {
	select {
	case <-s.closed:
		return notify.ErrClosed
	default:
	}
	select {
	case s.ch <- f:
		return nil
	default:
		return notify.ErrSlowConsumer
	}
}

// Close marks the sink dead. Safe to call more than once.
func (s *streamSink) Close() {
	s.once.Do(func() { close(s.closed) })
}

// writeFrame renders one SSE event: an optional id line, the data line, and
// the blank separator.
func writeFrame(w io.Writer, f notify.Frame) error {
	var b bytes.Buffer
	if f.ID != "" {
		b.WriteString("id: ")
		b.WriteString(f.ID)
		b.WriteByte('\n')
	}
	b.WriteString("data: ")
	b.Write(f.Data)
	b.WriteString("\n\n")
	_, err := w.Write(b.Bytes())
	return err
}

// serveSSE runs one notification stream to completion: it registers a
// buffered sink under topic, writes the handshake, then relays frames and
// periodic keep-alive comments until the client goes away or a write fails.
// wrap, when non-nil, decorates the sink before registration (filtering).
func serveSSE(w http.ResponseWriter, r *http.Request, hub *notify.Hub, topic string,
	wrap func(notify.Sink) notify.Sink, handshake notify.Event, keepAlive time.Duration, buffer int) {

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sink := newStreamSink(buffer)
	defer sink.Close()

	var registered notify.Sink = sink
	if wrap != nil {
		registered = wrap(sink)
	}
	unsubscribe := hub.Subscribe(topic, registered)
	defer unsubscribe()

	// The handshake is local to this connection and carries no frame id.
	if data, err := json.Marshal(handshake); err == nil {
		if writeFrame(w, notify.Frame{Data: data}) != nil {
			return
		}
		flusher.Flush()
	}

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case f := <-sink.ch:
			if err := writeFrame(w, f); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
