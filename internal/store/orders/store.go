package orderstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
)

// ErrNotFound is returned when no order exists for the given id.
var ErrNotFound = errors.New("orderstore: order not found")

const (
	orderPrefix = "order/"
	seqPrefix   = "ordseq/"
)

// Store persists order documents and the per-day order counter.
type Store struct {
	db *pebblestore.DB

	// mu serializes read-modify-write cycles (status updates, counter bumps).
	mu sync.Mutex

	now func() time.Time
}

// New returns a Store over db.
func New(db *pebblestore.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func orderKey(id string) []byte { return []byte(orderPrefix + id) }

// Create assigns the order a durable id, the next daily order number, and
// timestamps, then persists it. The status defaults to pending.
func (s *Store) Create(o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = orders.StatusPending
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	daily, err := s.nextDailyID(now)
	if err != nil {
		return fmt.Errorf("orderstore: daily counter: %w", err)
	}
	o.DailyOrderID = daily

	return s.db.SetJSON(orderKey(o.ID), o)
}

// nextDailyID bumps and returns the counter for the given day. Caller holds s.mu.
func (s *Store) nextDailyID(now time.Time) (int64, error) {
	key := []byte(seqPrefix + now.Format("2006-01-02"))
	var n int64
	if b, err := s.db.Get(key); err == nil && len(b) == 8 {
		n = int64(binary.BigEndian.Uint64(b))
	} else if err != nil && !errors.Is(err, pebblestore.ErrNotFound) {
		return 0, err
	}
	n++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	if err := s.db.Set(key, buf[:]); err != nil {
		return 0, err
	}
	return n, nil
}

// Get returns the order with the given id.
func (s *Store) Get(id string) (orders.Order, error) {
	var o orders.Order
	if err := s.db.GetJSON(orderKey(id), &o); err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return orders.Order{}, ErrNotFound
		}
		return orders.Order{}, err
	}
	return o, nil
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	Status orders.Status
	Type   orders.Type
	Limit  int
}

// List returns orders matching f, in id order.
func (s *Store) List(f ListFilter) ([]orders.Order, error) {
	var out []orders.Order
	var scanErr error
	err := s.db.ScanPrefix([]byte(orderPrefix), func(_, value []byte) bool {
		var o orders.Order
		if err := json.Unmarshal(value, &o); err != nil {
			scanErr = err
			return false
		}
		if f.Status != "" && o.Status != f.Status {
			return true
		}
		if f.Type != "" && o.Type != f.Type {
			return true
		}
		out = append(out, o)
		return f.Limit <= 0 || len(out) < f.Limit
	})
	if err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return out, nil
}

// UpdateStatus sets the order's status and bumps UpdatedAt, returning the
// stored document. The read-modify-write runs under the store lock so
// concurrent updates can't clobber each other.
func (s *Store) UpdateStatus(id string, status orders.Status) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.Get(id)
	if err != nil {
		return orders.Order{}, err
	}
	o.Status = status
	o.UpdatedAt = s.now().UTC()
	if err := s.db.SetJSON(orderKey(id), &o); err != nil {
		return orders.Order{}, err
	}
	return o, nil
}

// Delete removes the order document. Missing ids are a no-op.
func (s *Store) Delete(id string) error {
	return s.db.Delete(orderKey(id))
}
