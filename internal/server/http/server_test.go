package httpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cfgpkg "github.com/AnshRaj112/mrpizzeria-sub000/internal/config"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/journal"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/notify"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/runtime"
	catalogsvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/catalog"
	ordersvc "github.com/AnshRaj112/mrpizzeria-sub000/internal/services/orders"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/store/catalog"
)

type env struct {
	rt     *runtime.Runtime
	orders *ordersvc.Service
	ts     *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWith(t, cfgpkg.Default())
}

func newEnvWith(t *testing.T, cfg cfgpkg.Config) *env {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
		Config:  cfg,
	})
	if err != nil {
		t.Fatalf("runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	ordersSvc := ordersvc.New(rt.OrderStore(), rt.CatalogStore(), rt.Journal(), rt.Hub(),
		ordersvc.Options{StrictStatusFlow: cfg.StrictStatusFlow, DefaultListLimit: cfg.DefaultListLimit}, rt.Logger())
	catSvc := catalogsvc.New(rt.CatalogStore(), rt.Logger())

	srv := New(rt, ordersSvc, catSvc)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &env{rt: rt, orders: ordersSvc, ts: ts}
}

func (e *env) seedItem(t *testing.T) string {
	t.Helper()
	it := &catalog.Item{Name: "Margherita", Price: 1050, Available: true}
	if err := e.rt.CatalogStore().PutItem(it); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return it.ID
}

func (e *env) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := http.Post(e.ts.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (e *env) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, rdr)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	resp, err := http.Get(e.ts.URL + "/v1/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[map[string]string](t, resp)
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)
	itemID := e.seedItem(t)

	resp := e.postJSON(t, "/v1/orders", map[string]any{
		"customerName":  "Dana",
		"contactNumber": "5550100200",
		"orderType":     "pickup",
		"items":         []map[string]any{{"itemId": itemID, "quantity": 2}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decode[orders.Order](t, resp)
	if created.ID == "" || created.Total != 2100 {
		t.Fatalf("created = %+v", created)
	}

	resp = e.do(t, http.MethodGet, "/v1/orders/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	got := decode[orders.Order](t, resp)
	if got.ID != created.ID {
		t.Fatalf("get = %+v", got)
	}

	resp = e.do(t, http.MethodGet, "/v1/orders?status=pending", nil)
	listed := decode[struct {
		Orders []orders.Order `json:"orders"`
	}](t, resp)
	if len(listed.Orders) != 1 {
		t.Fatalf("list = %d orders", len(listed.Orders))
	}

	resp = e.do(t, http.MethodPut, "/v1/orders/"+created.ID, map[string]string{"status": "being_prepared"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	updated := decode[orders.Order](t, resp)
	if updated.Status != orders.StatusBeingPrepared {
		t.Fatalf("updated = %+v", updated)
	}

	resp = e.do(t, http.MethodGet, "/v1/orders/"+created.ID+"/history", nil)
	hist := decode[struct {
		History []journal.Entry `json:"history"`
	}](t, resp)
	if len(hist.History) != 2 {
		t.Fatalf("history = %d entries", len(hist.History))
	}

	resp = e.do(t, http.MethodDelete, "/v1/orders/"+created.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = e.do(t, http.MethodGet, "/v1/orders/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestOrderErrors(t *testing.T) {
	e := newEnv(t)

	resp := e.postJSON(t, "/v1/orders", map[string]any{"customerName": "Dana"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = e.do(t, http.MethodPut, "/v1/orders/missing", map[string]string{"status": "prepared"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing order status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	itemID := e.seedItem(t)
	created := decode[orders.Order](t, e.postJSON(t, "/v1/orders", map[string]any{
		"customerName":  "Dana",
		"contactNumber": "5550100200",
		"orderType":     "pickup",
		"items":         []map[string]any{{"itemId": itemID, "quantity": 1}},
	}))
	resp = e.do(t, http.MethodPut, "/v1/orders/"+created.ID, map[string]string{"status": "vaporized"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad status update = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestStrictFlowUpdateConflicts(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.StrictStatusFlow = true
	e := newEnvWith(t, cfg)
	itemID := e.seedItem(t)

	created := decode[orders.Order](t, e.postJSON(t, "/v1/orders", map[string]any{
		"customerName":  "Dana",
		"contactNumber": "5550100200",
		"orderType":     "pickup",
		"items":         []map[string]any{{"itemId": itemID, "quantity": 1}},
	}))

	// delivered is a valid status but not reachable from pending
	resp := e.do(t, http.MethodPut, "/v1/orders/"+created.ID, map[string]string{"status": "delivered"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("skip-ahead update status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()

	// an unknown status is still a plain validation failure
	resp = e.do(t, http.MethodPut, "/v1/orders/"+created.ID, map[string]string{"status": "vaporized"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown status update = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// the legal next step goes through
	resp = e.do(t, http.MethodPut, "/v1/orders/"+created.ID, map[string]string{"status": "being_prepared"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("legal update status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCatalogEndpoints(t *testing.T) {
	e := newEnv(t)

	item := decode[catalog.Item](t, e.postJSON(t, "/v1/items", map[string]any{
		"name": "Margherita", "price": 1050, "available": true,
	}))
	if item.ID == "" {
		t.Fatal("item id not assigned")
	}

	resp := e.postJSON(t, "/v1/items", map[string]any{"price": 100})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("nameless item status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	charge := decode[catalog.Charge](t, e.postJSON(t, "/v1/charges", map[string]any{
		"name": "Delivery", "amount": 300,
	}))
	discount := decode[catalog.Discount](t, e.postJSON(t, "/v1/discounts", map[string]any{
		"name": "Launch", "percent": 10, "active": true,
	}))

	for _, path := range []string{
		"/v1/items/" + item.ID,
		"/v1/charges/" + charge.ID,
		"/v1/discounts/" + discount.ID,
	} {
		resp := e.do(t, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s = %d", path, resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp = e.do(t, http.MethodDelete, "/v1/items/"+item.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete item = %d", resp.StatusCode)
	}
	resp.Body.Close()
	resp = e.do(t, http.MethodDelete, "/v1/items/"+item.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing item = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestOrderStreamRequiresKey(t *testing.T) {
	e := newEnv(t)
	resp, err := http.Get(e.ts.URL + "/v1/orders/notifications")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if n := e.rt.Hub().TotalSubscribers(); n != 0 {
		t.Fatalf("%d subscribers registered by a rejected request", n)
	}
}

// sseEvent reads one SSE event from the stream, skipping comments.
func sseEvent(t *testing.T, rd *bufio.Reader) (id string, data []byte) {
	t.Helper()
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "id: "):
			id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "data: "):
			data = []byte(strings.TrimPrefix(line, "data: "))
		case strings.HasPrefix(line, ":"):
			// comment, keep reading
		case line == "":
			if data != nil {
				return id, data
			}
		}
	}
}

func openStream(t *testing.T, url string) (*bufio.Reader, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		t.Fatalf("open stream: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		cancel()
		t.Fatalf("stream status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		cancel()
		t.Fatalf("content type = %q", ct)
	}
	t.Cleanup(func() { cancel(); resp.Body.Close() })
	return bufio.NewReader(resp.Body), cancel
}

func TestOrderStreamDeliversStatusUpdates(t *testing.T) {
	e := newEnv(t)
	itemID := e.seedItem(t)
	o, err := e.orders.Create(ordersvc.CreateRequest{
		CustomerName:  "Dana",
		ContactNumber: "5550100200",
		Type:          orders.TypePickup,
		Items:         []ordersvc.ItemRequest{{ItemID: itemID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rd, _ := openStream(t, e.ts.URL+"/v1/orders/notifications?orderId="+o.ID)

	// handshake arrives first and proves the subscription is registered
	_, data := sseEvent(t, rd)
	var hs notify.Event
	if err := json.Unmarshal(data, &hs); err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if hs.Type != notify.EventConnected || hs.SubscriptionKey != o.ID {
		t.Fatalf("handshake = %+v", hs)
	}

	if _, err := e.orders.UpdateStatus(o.ID, orders.StatusBeingPrepared); err != nil {
		t.Fatalf("update: %v", err)
	}

	id, data := sseEvent(t, rd)
	if id == "" {
		t.Fatal("status frame missing id")
	}
	var ev notify.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("event: %v", err)
	}
	if ev.Type != notify.EventStatusUpdate || ev.Status != "being_prepared" || ev.OrderID != o.ID {
		t.Fatalf("event = %+v", ev)
	}
}

func TestContactStreamAliasesFormatting(t *testing.T) {
	e := newEnv(t)
	itemID := e.seedItem(t)
	o, err := e.orders.Create(ordersvc.CreateRequest{
		CustomerName:  "Dana",
		ContactNumber: "+1 (555) 010-0200",
		Type:          orders.TypePickup,
		Items:         []ordersvc.ItemRequest{{ItemID: itemID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rd, _ := openStream(t, e.ts.URL+"/v1/orders/notifications?contact=1-555-010-0200")
	sseEvent(t, rd) // handshake

	if _, err := e.orders.UpdateStatus(o.ID, orders.StatusBeingPrepared); err != nil {
		t.Fatalf("update: %v", err)
	}
	_, data := sseEvent(t, rd)
	var ev notify.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("event: %v", err)
	}
	if ev.OrderID != o.ID {
		t.Fatalf("event = %+v", ev)
	}
}

func TestAdminStreamWithFilter(t *testing.T) {
	e := newEnv(t)
	itemID := e.seedItem(t)

	resp, err := http.Get(e.ts.URL + "/v1/admin/notifications?filter=" + "total%20%3E%3D%3C") // broken expression
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad filter status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// total > 1500 matches only the two-item order
	rd, _ := openStream(t, e.ts.URL+"/v1/admin/notifications?filter=total+%3E+1500")
	sseEvent(t, rd) // handshake

	mk := func(qty int) {
		if _, err := e.orders.Create(ordersvc.CreateRequest{
			CustomerName:  "Dana",
			ContactNumber: "5550100200",
			Type:          orders.TypePickup,
			Items:         []ordersvc.ItemRequest{{ItemID: itemID, Quantity: qty}},
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mk(1) // 1050, filtered out
	mk(2) // 2100, passes

	done := make(chan notify.Event, 1)
	go func() {
		_, data := sseEvent(t, rd)
		var ev notify.Event
		_ = json.Unmarshal(data, &ev)
		done <- ev
	}()
	select {
	case ev := <-done:
		if ev.Type != notify.EventNewOrder || ev.Total != 2100 {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("filtered event never arrived")
	}
}

func TestKeepAliveCommentsOnIdleStream(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.KeepAliveSeconds = 1
	e := newEnvWith(t, cfg)

	rd, _ := openStream(t, e.ts.URL+"/v1/orders/notifications?orderId=quiet-order")
	sseEvent(t, rd) // handshake

	// with no status updates the only traffic is the keep-alive comment
	got := make(chan string, 1)
	go func() {
		for {
			line, err := rd.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, ":") {
				got <- strings.TrimRight(line, "\n")
				return
			}
		}
	}()
	select {
	case line := <-got:
		if line != ": keep-alive" {
			t.Fatalf("comment frame = %q", line)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no keep-alive within the configured interval")
	}
}

func TestStreamDisconnectUnsubscribes(t *testing.T) {
	e := newEnv(t)
	itemID := e.seedItem(t)
	o, err := e.orders.Create(ordersvc.CreateRequest{
		CustomerName:  "Dana",
		ContactNumber: "5550100200",
		Type:          orders.TypePickup,
		Items:         []ordersvc.ItemRequest{{ItemID: itemID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rd, cancel := openStream(t, e.ts.URL+"/v1/orders/notifications?orderId="+o.ID)
	sseEvent(t, rd) // handshake
	if n := e.rt.Hub().SubscriberCount(o.ID); n != 1 {
		t.Fatalf("subscribers = %d, want 1", n)
	}

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for e.rt.Hub().SubscriberCount(o.ID) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// publish to the now-empty topic must be a quiet no-op
	if _, err := e.orders.UpdateStatus(o.ID, orders.StatusBeingPrepared); err != nil {
		t.Fatalf("update after disconnect: %v", err)
	}
}

func TestCORSPreflight(t *testing.T) {
	e := newEnv(t)
	req, _ := http.NewRequest(http.MethodOptions, e.ts.URL+"/v1/orders", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("CORS header missing")
	}
}
