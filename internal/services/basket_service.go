package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/themizzi/shopflow/internal/models"
)

// ErrLineNotFound is returned when a basket has no line with the given id
var ErrLineNotFound = errors.New("basket line not found")

// ErrSizeUnavailable is returned when a product is not sold in the requested size
var ErrSizeUnavailable = errors.New("size not available")

// BasketItem is a basket line joined with its product
type BasketItem struct {
	Line    models.BasketLine
	Product models.Product
}

// Total returns the line price for the current quantity
func (i BasketItem) Total() int64 {
	return i.Product.Price * int64(i.Line.Quantity)
}

// BasketService handles the baskets of fixture storefront visitors
type BasketService interface {
	Items(basketID uuid.UUID) ([]BasketItem, error)
	Count(basketID uuid.UUID) int
	Add(basketID uuid.UUID, productID int64, size string) (*models.BasketLine, error)
	Delete(basketID uuid.UUID, lineID string) error
	Increase(basketID uuid.UUID, lineID string) (*models.BasketLine, error)
	Decrease(basketID uuid.UUID, lineID string) (*models.BasketLine, error)
}

// BasketServiceImpl implements BasketService in memory
type BasketServiceImpl struct {
	catalog CatalogService

	mu      sync.Mutex
	baskets map[uuid.UUID][]models.BasketLine
}

// NewBasketService creates a new basket service
func NewBasketService(catalog CatalogService) BasketService {
	return &BasketServiceImpl{
		catalog: catalog,
		baskets: make(map[uuid.UUID][]models.BasketLine),
	}
}

// Items returns the lines of a basket in the order they were added
func (s *BasketServiceImpl) Items(basketID uuid.UUID) ([]BasketItem, error) {
	s.mu.Lock()
	lines := append([]models.BasketLine(nil), s.baskets[basketID]...)
	s.mu.Unlock()

	items := make([]BasketItem, 0, len(lines))
	for _, line := range lines {
		p, err := s.catalog.GetProduct(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load basket line %s: %w", line.ID, err)
		}
		items = append(items, BasketItem{Line: line, Product: *p})
	}
	return items, nil
}

// Count returns the number of lines in a basket
func (s *BasketServiceImpl) Count(basketID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.baskets[basketID])
}

// Add puts one unit of the product in the given size into the basket.
// Adding a product and size already present raises that line's quantity.
func (s *BasketServiceImpl) Add(basketID uuid.UUID, productID int64, size string) (*models.BasketLine, error) {
	p, err := s.catalog.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if !hasSize(p, size) {
		return nil, fmt.Errorf("%w: %s for product %d", ErrSizeUnavailable, size, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.baskets[basketID]
	for i := range lines {
		if lines[i].ProductID == productID && lines[i].Size == size {
			lines[i].Quantity++
			line := lines[i]
			return &line, nil
		}
	}

	line := models.BasketLine{
		ID:        uuid.New().String(),
		ProductID: productID,
		Size:      size,
		Quantity:  1,
		AddedAt:   time.Now(),
	}
	s.baskets[basketID] = append(lines, line)
	return &line, nil
}

// Delete removes a line from a basket
func (s *BasketServiceImpl) Delete(basketID uuid.UUID, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.baskets[basketID]
	for i := range lines {
		if lines[i].ID == lineID {
			s.baskets[basketID] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
}

// Increase adds one unit to a line
func (s *BasketServiceImpl) Increase(basketID uuid.UUID, lineID string) (*models.BasketLine, error) {
	return s.adjust(basketID, lineID, 1)
}

// Decrease removes one unit from a line. A line never drops below one unit;
// removing it takes Delete.
func (s *BasketServiceImpl) Decrease(basketID uuid.UUID, lineID string) (*models.BasketLine, error) {
	return s.adjust(basketID, lineID, -1)
}

func (s *BasketServiceImpl) adjust(basketID uuid.UUID, lineID string, delta int) (*models.BasketLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.baskets[basketID]
	for i := range lines {
		if lines[i].ID != lineID {
			continue
		}
		if lines[i].Quantity+delta >= 1 {
			lines[i].Quantity += delta
		}
		line := lines[i]
		return &line, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
}

func hasSize(p *models.Product, size string) bool {
	if len(p.Sizes) == 0 {
		return size == ""
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
