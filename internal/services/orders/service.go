package ordersvc

import (
	"errors"
	"fmt"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/domain/orders"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/journal"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/notify"
	"github.com/AnshRaj112/mrpizzeria-sub000/internal/store/catalog"
	orderstore "github.com/AnshRaj112/mrpizzeria-sub000/internal/store/orders"
	logpkg "github.com/AnshRaj112/mrpizzeria-sub000/pkg/log"
)

// ErrInvalid marks requests rejected by validation. Callers map it to a
// client error.
var ErrInvalid = errors.New("invalid request")

// ErrConflict marks a status transition the strict flow disallows: the
// requested status is valid, but not reachable from the order's current one.
var ErrConflict = errors.New("conflicting status transition")

// ErrNotFound is returned when the referenced order does not exist.
var ErrNotFound = orderstore.ErrNotFound

// Options carries the behavioral knobs the service reads from configuration.
type Options struct {
	// StrictStatusFlow rejects transitions that skip the forward progression.
	StrictStatusFlow bool
	// DefaultListLimit caps listings when the caller doesn't pass a limit.
	DefaultListLimit int
}

// Service owns the order lifecycle: creation with catalog pricing, status
// updates, and the notification publishes that accompany both.
type Service struct {
	store   *orderstore.Store
	catalog *catalog.Store
	journal *journal.Journal
	hub     *notify.Hub
	opts    Options
	logger  logpkg.Logger
}

// New wires a Service.
func New(store *orderstore.Store, cat *catalog.Store, jnl *journal.Journal, hub *notify.Hub, opts Options, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Service{
		store:   store,
		catalog: cat,
		journal: jnl,
		hub:     hub,
		opts:    opts,
		logger:  logger.With(logpkg.Component("orders")),
	}
}

// ItemRequest selects a menu item and quantity on a create request.
type ItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// CreateRequest is the input for a new order.
type CreateRequest struct {
	CustomerName  string        `json:"customerName"`
	ContactNumber string        `json:"contactNumber"`
	Type          orders.Type   `json:"orderType"`
	TableNumber   int           `json:"tableNumber,omitempty"`
	Address       string        `json:"address,omitempty"`
	Items         []ItemRequest `json:"items"`
	ChargeIDs     []string      `json:"chargeIds,omitempty"`
	DiscountID    string        `json:"discountId,omitempty"`
}

func (r CreateRequest) validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalid)
	}
	if notify.NormalizeContact(r.ContactNumber) == "" {
		return fmt.Errorf("%w: contactNumber is required", ErrInvalid)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: unknown order type %q", ErrInvalid, r.Type)
	}
	if r.Type == orders.TypeDineIn && r.TableNumber <= 0 {
		return fmt.Errorf("%w: dine_in orders need a tableNumber", ErrInvalid)
	}
	if r.Type == orders.TypeDelivery && r.Address == "" {
		return fmt.Errorf("%w: delivery orders need an address", ErrInvalid)
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalid)
	}
	for i, it := range r.Items {
		if it.ItemID == "" {
			return fmt.Errorf("%w: items[%d] missing itemId", ErrInvalid, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: items[%d] quantity must be >= 1", ErrInvalid, i)
		}
	}
	return nil
}

// Create prices the requested items against the catalog, applies charges and
// discount, persists the order, and announces it on the admin feed. The
// announce is best effort: a feed with no listeners changes nothing about the
// order.
func (s *Service) Create(req CreateRequest) (orders.Order, error) {
	if err := req.validate(); err != nil {
		return orders.Order{}, err
	}

	o := orders.Order{
		CustomerName:  req.CustomerName,
		ContactNumber: req.ContactNumber,
		Type:          req.Type,
		TableNumber:   req.TableNumber,
		Address:       req.Address,
		ChargeIDs:     req.ChargeIDs,
		DiscountID:    req.DiscountID,
	}

	var subtotal orders.Money
	for i, ir := range req.Items {
		item, err := s.catalog.GetItem(ir.ItemID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return orders.Order{}, fmt.Errorf("%w: items[%d] references unknown item %q", ErrInvalid, i, ir.ItemID)
			}
			return orders.Order{}, err
		}
		if !item.Available {
			return orders.Order{}, fmt.Errorf("%w: item %q is not available", ErrInvalid, item.Name)
		}
		o.Items = append(o.Items, orders.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: ir.Quantity,
			Price:    item.Price,
		})
		subtotal += item.Price * orders.Money(ir.Quantity)
	}
	o.Subtotal = subtotal

	total := subtotal
	for _, cid := range req.ChargeIDs {
		c, err := s.catalog.GetCharge(cid)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return orders.Order{}, fmt.Errorf("%w: unknown charge %q", ErrInvalid, cid)
			}
			return orders.Order{}, err
		}
		total += c.Apply(subtotal)
	}
	if req.DiscountID != "" {
		d, err := s.catalog.GetDiscount(req.DiscountID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				return orders.Order{}, fmt.Errorf("%w: unknown discount %q", ErrInvalid, req.DiscountID)
			}
			return orders.Order{}, err
		}
		total -= d.Apply(subtotal)
	}
	if total < 0 {
		total = 0
	}
	o.Total = total

	if err := s.store.Create(&o); err != nil {
		return orders.Order{}, err
	}

	if err := s.journal.Append(o.ID, journal.Entry{Status: o.Status, At: o.CreatedAt}); err != nil {
		s.logger.Warn("history append failed",
			logpkg.Str("order_id", o.ID), logpkg.Err(err))
	}

	s.hub.Publish(notify.AdminTopic, notify.NewOrder(o))

	s.logger.Info("order created",
		logpkg.Str("order_id", o.ID),
		logpkg.Int64("daily_id", o.DailyOrderID),
		logpkg.Str("type", string(o.Type)))
	return o, nil
}

// UpdateStatus applies a status change and, once durable, publishes the
// update under both of the order's topic keys: the order id and the contact
// alias. Publish failures never fail the update.
func (s *Service) UpdateStatus(orderID string, status orders.Status) (orders.Order, error) {
	if !status.Valid() {
		return orders.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	current, err := s.store.Get(orderID)
	if err != nil {
		return orders.Order{}, err
	}
	if s.opts.StrictStatusFlow && !orders.CanTransition(current.Status, status, current.Type) {
		return orders.Order{}, fmt.Errorf("%w: cannot move %s order from %s to %s",
			ErrConflict, current.Type, current.Status, status)
	}

	updated, err := s.store.UpdateStatus(orderID, status)
	if err != nil {
		return orders.Order{}, err
	}

	if err := s.journal.Append(updated.ID, journal.Entry{Status: updated.Status, At: updated.UpdatedAt}); err != nil {
		s.logger.Warn("history append failed",
			logpkg.Str("order_id", updated.ID), logpkg.Err(err))
	}

	ev := notify.StatusUpdate(updated)
	s.hub.Publish(notify.OrderTopic(updated.ID), ev)
	if key := notify.NormalizeContact(updated.ContactNumber); key != "" {
		s.hub.Publish(notify.ContactTopic(updated.ContactNumber), ev)
	}

	s.logger.Info("order status updated",
		logpkg.Str("order_id", updated.ID),
		logpkg.Str("status", string(updated.Status)))
	return updated, nil
}

// Get returns one order by id.
func (s *Service) Get(orderID string) (orders.Order, error) {
	return s.store.Get(orderID)
}

// List returns orders matching the filter, capped by the default limit when
// the caller passes none.
func (s *Service) List(f orderstore.ListFilter) ([]orders.Order, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, f.Status)
	}
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalid, f.Type)
	}
	if f.Limit <= 0 {
		f.Limit = s.opts.DefaultListLimit
	}
	return s.store.List(f)
}

// Delete removes an order. The order must exist.
func (s *Service) Delete(orderID string) error {
	if _, err := s.store.Get(orderID); err != nil {
		return err
	}
	if err := s.store.Delete(orderID); err != nil {
		return err
	}
	s.logger.Info("order deleted", logpkg.Str("order_id", orderID))
	return nil
}

// History returns the recorded status changes for an order in append order.
func (s *Service) History(orderID string) ([]journal.Entry, error) {
	if _, err := s.store.Get(orderID); err != nil {
		return nil, err
	}
	return s.journal.List(orderID)
}
