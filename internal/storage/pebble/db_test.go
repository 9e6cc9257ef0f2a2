package pebblestore

import (
	"errors"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{
		DataDir:       t.TempDir(),
		Fsync:         FsyncModeInterval,
		FsyncInterval: 2 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetGetDelete(t *testing.T) {
	db := newTestDB(t)

	key := []byte("k1")
	if err := db.Set(key, []byte("v1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := db.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("got %q want %q", got, "v1")
	}

	if err := db.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.Get(key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	db := newTestDB(t)

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := db.SetJSON([]byte("doc/1"), doc{Name: "margherita", Count: 2}); err != nil {
		t.Fatalf("setjson: %v", err)
	}
	var got doc
	if err := db.GetJSON([]byte("doc/1"), &got); err != nil {
		t.Fatalf("getjson: %v", err)
	}
	if got.Name != "margherita" || got.Count != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestScanPrefix(t *testing.T) {
	db := newTestDB(t)

	for _, k := range []string{"order/a", "order/b", "order/c", "item/x"} {
		if err := db.Set([]byte(k), []byte("v")); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	var keys []string
	err := db.ScanPrefix([]byte("order/"), func(key, _ []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("want 3 keys, got %v", keys)
	}
	if keys[0] != "order/a" || keys[2] != "order/c" {
		t.Fatalf("unexpected order: %v", keys)
	}
}

func TestScanPrefixEarlyStop(t *testing.T) {
	db := newTestDB(t)
	for _, k := range []string{"h/1", "h/2", "h/3"} {
		_ = db.Set([]byte(k), []byte("v"))
	}
	n := 0
	_ = db.ScanPrefix([]byte("h/"), func(_, _ []byte) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("scan visited %d keys, want 2", n)
	}
}
