package repository

import (
	"fmt"
	"sort"

	"github.com/themizzi/shopflow/internal/models"
)

// MemoryCatalogRepository serves a fixed catalog from memory
type MemoryCatalogRepository struct {
	products map[int64]models.Product
}

// NewMemoryCatalogRepository creates a repository holding products
func NewMemoryCatalogRepository(products []models.Product) *MemoryCatalogRepository {
	repo := &MemoryCatalogRepository{products: make(map[int64]models.Product, len(products))}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

// ListProducts returns every product ordered by id
func (r *MemoryCatalogRepository) ListProducts() ([]models.Product, error) {
	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// GetProductByID retrieves a product by its article number
func (r *MemoryCatalogRepository) GetProductByID(id int64) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", models.ErrProductNotFound, id)
	}
	return &p, nil
}
