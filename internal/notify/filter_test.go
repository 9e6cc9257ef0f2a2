package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
)

func marshalEvent(t *testing.T, ev Event) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEmptyFilterMatchesAll(t *testing.T) {
	f, err := NewFilter("")
	if err != nil {
		t.Fatal(err)
	}
	if f.Enabled() {
		t.Fatal("empty filter should be disabled")
	}
	if !f.Match([]byte(`{"type":"new_order"}`)) {
		t.Fatal("disabled filter must match everything")
	}
}

func TestFilterByOrderTypeAndTotal(t *testing.T) {
	f, err := NewFilter(`orderType == "delivery" && total > 5000`)
	if err != nil {
		t.Fatal(err)
	}

	big := NewOrder(orders.Order{ID: "a", Type: orders.TypeDelivery, Total: 7500, CreatedAt: time.Now()})
	small := NewOrder(orders.Order{ID: "b", Type: orders.TypeDelivery, Total: 1200, CreatedAt: time.Now()})
	pickup := NewOrder(orders.Order{ID: "c", Type: orders.TypePickup, Total: 9000, CreatedAt: time.Now()})

	if !f.Match(marshalEvent(t, big)) {
		t.Fatal("big delivery order should match")
	}
	if f.Match(marshalEvent(t, small)) {
		t.Fatal("small order should not match")
	}
	if f.Match(marshalEvent(t, pickup)) {
		t.Fatal("pickup order should not match")
	}
}

func TestFilterCompileError(t *testing.T) {
	if _, err := NewFilter(`orderType ==`); err == nil {
		t.Fatal("expected compile error")
	}
	if _, err := NewFilter(`nosuchvar == 1`); err == nil {
		t.Fatal("expected unknown variable error")
	}
}

func TestFilterSinkDropsNonMatching(t *testing.T) {
	f, err := NewFilter(`type == "new_order"`)
	if err != nil {
		t.Fatal(err)
	}
	inner := &memSink{}
	sink := NewFilterSink(inner, f)

	match := marshalEvent(t, NewOrder(orders.Order{ID: "a", Type: orders.TypePickup, Total: 100, CreatedAt: time.Now()}))
	skip := marshalEvent(t, testEvent(orders.StatusPrepared))

	if err := sink.Send(Frame{ID: "1", Data: match}); err != nil {
		t.Fatal(err)
	}
	if err := sink.Send(Frame{ID: "2", Data: skip}); err != nil {
		t.Fatal(err)
	}
	if len(inner.frames) != 1 {
		t.Fatalf("inner received %d frames, want 1", len(inner.frames))
	}
}

func TestFilterSinkPassThroughWhenDisabled(t *testing.T) {
	inner := &memSink{}
	sink := NewFilterSink(inner, Filter{})
	if sink != Sink(inner) {
		t.Fatal("disabled filter should return the inner sink unchanged")
	}
}
