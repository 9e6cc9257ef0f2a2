package catalogsvc

import (
	"errors"
	"testing"

	"github.com/AnshRaj112/mrpizzeria-sub000/internal/store/catalog"
	pebblestore "github.com/AnshRaj112/mrpizzeria-sub000/internal/storage/pebble"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(catalog.New(db), nil)
}

func TestSaveItemValidation(t *testing.T) {
	s := newService(t)
	if err := s.SaveItem(&catalog.Item{Price: 100}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("nameless item: want ErrInvalid, got %v", err)
	}
	if err := s.SaveItem(&catalog.Item{Name: "Pizza", Price: -1}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("negative price: want ErrInvalid, got %v", err)
	}
	it := &catalog.Item{Name: "Pizza", Price: 1000, Available: true}
	if err := s.SaveItem(it); err != nil {
		t.Fatalf("save: %v", err)
	}
	if it.ID == "" {
		t.Fatal("id not assigned")
	}
}

func TestSaveChargeValidation(t *testing.T) {
	s := newService(t)
	if err := s.SaveCharge(&catalog.Charge{Amount: 100}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("nameless: want ErrInvalid, got %v", err)
	}
	if err := s.SaveCharge(&catalog.Charge{Name: "Both", Amount: 100, Percent: 5}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("amount and percent: want ErrInvalid, got %v", err)
	}
	if err := s.SaveCharge(&catalog.Charge{Name: "Delivery", Amount: 300}); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestSaveDiscountValidation(t *testing.T) {
	s := newService(t)
	if err := s.SaveDiscount(&catalog.Discount{Name: "Zero"}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("zero percent: want ErrInvalid, got %v", err)
	}
	if err := s.SaveDiscount(&catalog.Discount{Name: "Too much", Percent: 150}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("over 100: want ErrInvalid, got %v", err)
	}
	if err := s.SaveDiscount(&catalog.Discount{Name: "Launch", Percent: 10, Active: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestDeleteRequiresExistence(t *testing.T) {
	s := newService(t)
	if err := s.DeleteItem("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("item: want ErrNotFound, got %v", err)
	}
	if err := s.DeleteCharge("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("charge: want ErrNotFound, got %v", err)
	}
	if err := s.DeleteDiscount("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("discount: want ErrNotFound, got %v", err)
	}
}
