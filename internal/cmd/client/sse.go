package client

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// sseEvent is one parsed Server-Sent Events frame.
type sseEvent struct {
	ID   string
	Data []byte
}

// readSSE parses events off r and hands each to fn, skipping comment lines.
// It returns when the stream ends or fn returns an error.
func readSSE(r io.Reader, fn func(sseEvent) error) error {
	rd := bufio.NewReader(r)
	var ev sseEvent
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		switch {
		case strings.HasPrefix(line, "id: "):
			ev.ID = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "data: "):
			ev.Data = []byte(strings.TrimPrefix(line, "data: "))
		case strings.HasPrefix(line, ":"):
			// keep-alive comment
		case line == "":
			if ev.Data != nil {
				if err := fn(ev); err != nil {
					return err
				}
			}
			ev = sseEvent{}
		}
	}
}

const (
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 15 * time.Second
)

// streamWithRetry keeps an SSE connection to url alive until ctx ends,
// reconnecting with capped exponential backoff. onConnect, when non-nil, runs
// after each successful connect so the caller can re-sync state the stream
// may have missed while down.
func streamWithRetry(ctx context.Context, url string, onConnect func(), fn func(sseEvent) error) error {
	backoff := initialBackoff
	for {
		// transient errors just trigger another attempt
		_ = streamOnce(ctx, url, onConnect, func(ev sseEvent) error {
			backoff = initialBackoff
			return fn(ev)
		})
		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func streamOnce(ctx context.Context, url string, onConnect func(), fn func(sseEvent) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &statusError{code: resp.StatusCode}
	}
	if onConnect != nil {
		onConnect()
	}
	return readSSE(resp.Body, fn)
}

type statusError struct{ code int }

func (e *statusError) Error() string {
	return "unexpected stream status " + http.StatusText(e.code)
}
