package catalogsvc

import (
	"errors"
	"fmt"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/store/catalog"
	logpkg "github.com/AnshRaj112/mrpizzeria-sub000/pkg/log"
)

// ErrInvalid marks requests rejected by validation.
var ErrInvalid = errors.New("invalid request")

// ErrNotFound is returned when the referenced document does not exist.
var ErrNotFound = catalog.ErrNotFound

// Service validates and persists menu documents.
type Service struct {
	store  *catalog.Store
	logger logpkg.Logger
}

// New wires a Service.
func New(store *catalog.Store, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &Service{store: store, logger: logger.With(logpkg.Component("catalog"))}
}

// SaveItem validates and stores a menu item, assigning an id when absent.
func (s *Service) SaveItem(item *catalog.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalid)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: item price must be >= 0", ErrInvalid)
	}
	if err := s.store.PutItem(item); err != nil {
		return err
	}
	s.logger.Info("item saved", logpkg.Str("item_id", item.ID), logpkg.Str("name", item.Name))
	return nil
}

// GetItem returns one menu item.
func (s *Service) GetItem(id string) (catalog.Item, error) { return s.store.GetItem(id) }

// ListItems returns the whole menu.
func (s *Service) ListItems() ([]catalog.Item, error) { return s.store.ListItems() }

// DeleteItem removes a menu item. The item must exist.
func (s *Service) DeleteItem(id string) error {
	if _, err := s.store.GetItem(id); err != nil {
		return err
	}
	return s.store.DeleteItem(id)
}

// SaveCharge validates and stores a charge, assigning an id when absent.
// A charge carries either a flat amount or a percentage, not both.
func (s *Service) SaveCharge(charge *catalog.Charge) error {
	if charge.Name == "" {
		return fmt.Errorf("%w: charge name is required", ErrInvalid)
	}
	if charge.Amount < 0 || charge.Percent < 0 {
		return fmt.Errorf("%w: charge values must be >= 0", ErrInvalid)
	}
	if charge.Amount > 0 && charge.Percent > 0 {
		return fmt.Errorf("%w: charge takes an amount or a percent, not both", ErrInvalid)
	}
	if err := s.store.PutCharge(charge); err != nil {
		return err
	}
	s.logger.Info("charge saved", logpkg.Str("charge_id", charge.ID), logpkg.Str("name", charge.Name))
	return nil
}

// GetCharge returns one charge.
func (s *Service) GetCharge(id string) (catalog.Charge, error) { return s.store.GetCharge(id) }

// ListCharges returns all charges.
func (s *Service) ListCharges() ([]catalog.Charge, error) { return s.store.ListCharges() }

// DeleteCharge removes a charge. The charge must exist.
func (s *Service) DeleteCharge(id string) error {
	if _, err := s.store.GetCharge(id); err != nil {
		return err
	}
	return s.store.DeleteCharge(id)
}

// SaveDiscount validates and stores a discount, assigning an id when absent.
func (s *Service) SaveDiscount(discount *catalog.Discount) error {
	if discount.Name == "" {
		return fmt.Errorf("%w: discount name is required", ErrInvalid)
	}
	if discount.Percent <= 0 || discount.Percent > 100 {
		return fmt.Errorf("%w: discount percent must be in (0, 100]", ErrInvalid)
	}
	if err := s.store.PutDiscount(discount); err != nil {
		return err
	}
	s.logger.Info("discount saved", logpkg.Str("discount_id", discount.ID), logpkg.Str("name", discount.Name))
	return nil
}

// GetDiscount returns one discount.
func (s *Service) GetDiscount(id string) (catalog.Discount, error) { return s.store.GetDiscount(id) }

// ListDiscounts returns all discounts.
func (s *Service) ListDiscounts() ([]catalog.Discount, error) { return s.store.ListDiscounts() }

// DeleteDiscount removes a discount. The discount must exist.
func (s *Service) DeleteDiscount(id string) error {
	if _, err := s.store.GetDiscount(id); err != nil {
		return err
	}
	return s.store.DeleteDiscount(id)
}
