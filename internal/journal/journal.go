package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
	"github.com/AnshRaj112/mrpizzeria-sub000/pkg/id"
)

const histPrefix = "hist/"

// Entry is one recorded status change.
type Entry struct {
	Status orders.Status `json:"status"`
	At     time.Time     `json:"at"`
	Note   string        `json:"note,omitempty"`
}

// Journal records per-order status history as append-only documents. Keys
// embed a sortable event id, so a prefix scan yields entries in append order.
type Journal struct {
	db  *pebblestore.DB
	gen *id.Generator
}

// New returns a Journal over db.
func New(db *pebblestore.DB) *Journal {
	return &Journal{db: db, gen: id.NewGenerator()}
}

func entryKey(orderID string, eid id.EventID) []byte {
	return []byte(histPrefix + orderID + "/" + eid.String())
}

// Append records one status change for orderID.
func (j *Journal) Append(orderID string, e Entry) error {
	if orderID == "" {
		return fmt.Errorf("journal: empty order id")
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	return j.db.SetJSON(entryKey(orderID, j.gen.Next()), e)
}

// List returns orderID's history in append order. A missing order yields an
// empty slice, not an error.
func (j *Journal) List(orderID string) ([]Entry, error) {
	prefix := []byte(histPrefix + orderID + "/")
	var out []Entry
	var scanErr error
	err := j.db.ScanPrefix(prefix, func(_, value []byte) bool {
		var e Entry
		if err := json.Unmarshal(value, &e); err != nil {
			scanErr = err
			return false
		}
		out = append(out, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return out, nil
}
