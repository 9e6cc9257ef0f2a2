package catalog

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
)

// ErrNotFound is returned when a catalog document is missing.
var ErrNotFound = errors.New("catalog: not found")

const (
	itemPrefix     = "item/"
	chargePrefix   = "charge/"
	discountPrefix = "discount/"
)

// Item is one menu entry.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	Price       orders.Money `json:"price"`
	Available   bool         `json:"available"`
}

// Charge is an extra applied to an order: a flat amount, or a percentage of
// the item subtotal when Percent is set.
type Charge struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Amount  orders.Money `json:"amount,omitempty"`
	Percent float64      `json:"percent,omitempty"`
}

// Apply returns the charge value for the given subtotal.
func (c Charge) Apply(subtotal orders.Money) orders.Money {
	if c.Percent > 0 {
		return orders.Money(float64(subtotal) * c.Percent / 100)
	}
	return c.Amount
}

// Discount is a percentage off the order subtotal.
type Discount struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Code    string  `json:"code,omitempty"`
	Percent float64 `json:"percent"`
	Active  bool    `json:"active"`
}

// Apply returns the reduction for the given subtotal. Inactive discounts
// reduce nothing.
func (d Discount) Apply(subtotal orders.Money) orders.Money {
	if !d.Active || d.Percent <= 0 {
		return 0
	}
	return orders.Money(float64(subtotal) * d.Percent / 100)
}

// Store persists the menu catalog: items, charges, and discounts.
type Store struct {
	db *pebblestore.DB
}

// New returns a Store over db.
func New(db *pebblestore.DB) *Store { return &Store{db: db} }

func (s *Store) put(prefix, id string, doc any) error {
	return s.db.SetJSON([]byte(prefix+id), doc)
}

func (s *Store) get(prefix, id string, doc any) error {
	if err := s.db.GetJSON([]byte(prefix+id), doc); err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Store) list(prefix string, visit func(value []byte) error) error {
	var scanErr error
	err := s.db.ScanPrefix([]byte(prefix), func(_, value []byte) bool {
		if err := visit(value); err != nil {
			scanErr = err
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return scanErr
}

// PutItem stores item, assigning an id when absent.
func (s *Store) PutItem(item *Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return s.put(itemPrefix, item.ID, item)
}

// GetItem returns the item with the given id.
func (s *Store) GetItem(id string) (Item, error) {
	var it Item
	err := s.get(itemPrefix, id, &it)
	return it, err
}

// ListItems returns every menu item in id order.
func (s *Store) ListItems() ([]Item, error) {
	var out []Item
	err := s.list(itemPrefix, func(value []byte) error {
		var it Item
		if err := json.Unmarshal(value, &it); err != nil {
			return err
		}
		out = append(out, it)
		return nil
	})
	return out, err
}

// DeleteItem removes the item with the given id.
func (s *Store) DeleteItem(id string) error {
	return s.db.Delete([]byte(itemPrefix + id))
}

// PutCharge stores charge, assigning an id when absent.
func (s *Store) PutCharge(charge *Charge) error {
	if charge.ID == "" {
		charge.ID = uuid.NewString()
	}
	return s.put(chargePrefix, charge.ID, charge)
}

// GetCharge returns the charge with the given id.
func (s *Store) GetCharge(id string) (Charge, error) {
	var c Charge
	err := s.get(chargePrefix, id, &c)
	return c, err
}

// ListCharges returns every charge in id order.
func (s *Store) ListCharges() ([]Charge, error) {
	var out []Charge
	err := s.list(chargePrefix, func(value []byte) error {
		var c Charge
		if err := json.Unmarshal(value, &c); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// DeleteCharge removes the charge with the given id.
func (s *Store) DeleteCharge(id string) error {
	return s.db.Delete([]byte(chargePrefix + id))
}

// PutDiscount stores discount, assigning an id when absent.
func (s *Store) PutDiscount(discount *Discount) error {
	if discount.ID == "" {
		discount.ID = uuid.NewString()
	}
	return s.put(discountPrefix, discount.ID, discount)
}

// GetDiscount returns the discount with the given id.
func (s *Store) GetDiscount(id string) (Discount, error) {
	var d Discount
	err := s.get(discountPrefix, id, &d)
	return d, err
}

// ListDiscounts returns every discount in id order.
func (s *Store) ListDiscounts() ([]Discount, error) {
	var out []Discount
	err := s.list(discountPrefix, func(value []byte) error {
		var d Discount
		if err := json.Unmarshal(value, &d); err != nil {
			return err
		}
		out = append(out, d)
		return nil
	})
	return out, err
}

// DeleteDiscount removes the discount with the given id.
func (s *Store) DeleteDiscount(id string) error {
	return s.db.Delete([]byte(discountPrefix + id))
}
