package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/themizzi/shopflow/internal/models"
)

func newTestBasketService() BasketService {
	return NewBasketService(NewCatalogService(&MockCatalogRepository{}))
}

func TestBasketService_Add(t *testing.T) {
	tests := []struct {
		name      string
		productID int64
		size      string
		wantErr   error
	}{
		{name: "available size", productID: 101, size: "42"},
		{name: "unknown product", productID: 999, size: "42", wantErr: models.ErrProductNotFound},
		{name: "unavailable size", productID: 101, size: "46", wantErr: ErrSizeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestBasketService()
			basketID := uuid.New()

			line, err := service.Add(basketID, tt.productID, tt.size)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
				}
				if service.Count(basketID) != 0 {
					t.Error("failed Add() should leave the basket empty")
				}
				return
			}
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if _, err := uuid.Parse(line.ID); err != nil {
				t.Errorf("line ID %q is not a uuid", line.ID)
			}
			if line.Quantity != 1 {
				t.Errorf("Quantity = %d, want 1", line.Quantity)
			}
		})
	}
}

func TestBasketService_AddSameProductAndSize(t *testing.T) {
	service := newTestBasketService()
	basketID := uuid.New()

	first, _ := service.Add(basketID, 101, "42")
	second, err := service.Add(basketID, 101, "42")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if second.ID != first.ID || second.Quantity != 2 {
		t.Errorf("second Add() = %+v, want line %s with quantity 2", second, first.ID)
	}

	if _, err := service.Add(basketID, 101, "41"); err != nil {
		t.Fatalf("Add() other size error = %v", err)
	}
	if service.Count(basketID) != 2 {
		t.Errorf("Count() = %d, want 2", service.Count(basketID))
	}
}

func TestBasketService_BasketsAreIsolated(t *testing.T) {
	service := newTestBasketService()
	a, b := uuid.New(), uuid.New()

	if _, err := service.Add(a, 101, "42"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if service.Count(b) != 0 {
		t.Errorf("Count(b) = %d, want 0", service.Count(b))
	}
}

func TestBasketService_Items(t *testing.T) {
	service := newTestBasketService()
	basketID := uuid.New()
	service.Add(basketID, 102, "41")
	line, _ := service.Add(basketID, 101, "42")
	service.Increase(basketID, line.ID)

	items, err := service.Items(basketID)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Items() returned %d items, want 2", len(items))
	}
	if items[0].Product.ID != 102 || items[1].Product.ID != 101 {
		t.Errorf("items out of insertion order: %d, %d", items[0].Product.ID, items[1].Product.ID)
	}
	if items[1].Total() != 2*2890 {
		t.Errorf("Total() = %d, want %d", items[1].Total(), 2*2890)
	}
}

func TestBasketService_QuantityAndDelete(t *testing.T) {
	service := newTestBasketService()
	basketID := uuid.New()
	first, _ := service.Add(basketID, 101, "42")
	second, _ := service.Add(basketID, 102, "41")

	steps := []struct {
		name         string
		do           func() (*models.BasketLine, error)
		wantQuantity int
	}{
		{"increase", func() (*models.BasketLine, error) { return service.Increase(basketID, first.ID) }, 2},
		{"increase again", func() (*models.BasketLine, error) { return service.Increase(basketID, first.ID) }, 3},
		{"decrease", func() (*models.BasketLine, error) { return service.Decrease(basketID, first.ID) }, 2},
		{"decrease", func() (*models.BasketLine, error) { return service.Decrease(basketID, first.ID) }, 1},
		{"decrease stops at one", func() (*models.BasketLine, error) { return service.Decrease(basketID, first.ID) }, 1},
	}
	for _, step := range steps {
		line, err := step.do()
		if err != nil {
			t.Fatalf("%s: error = %v", step.name, err)
		}
		if line.Quantity != step.wantQuantity {
			t.Errorf("%s: Quantity = %d, want %d", step.name, line.Quantity, step.wantQuantity)
		}
	}

	if err := service.Delete(basketID, second.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := service.Delete(basketID, second.ID); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("second Delete() error = %v, want ErrLineNotFound", err)
	}
	if _, err := service.Increase(basketID, second.ID); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("Increase() on a deleted line error = %v, want ErrLineNotFound", err)
	}
	if err := service.Delete(basketID, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if service.Count(basketID) != 0 {
		t.Errorf("Count() = %d, want 0", service.Count(basketID))
	}
}
