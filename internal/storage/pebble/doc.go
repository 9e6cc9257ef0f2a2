// Package pebblestore wraps Pebble as mrpizzeria's document store: JSON
// values under prefixed keys, an fsync policy, and prefix scans.
//
// Usage:
//
//	db, err := pebblestore.Open(pebblestore.Options{
//	    DataDir: "./data",
//	    Fsync:   pebblestore.FsyncModeInterval,
//	})
//	if err != nil { /* handle */ }
//	defer db.Close()
//
//	_ = db.SetJSON([]byte("order/abc"), order)
//	var got Order
//	_ = db.GetJSON([]byte("order/abc"), &got)
package pebblestore
