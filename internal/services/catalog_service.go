package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/themizzi/shopflow/internal/models"
)

// CatalogRepository defines the interface for catalog data access
type CatalogRepository interface {
	ListProducts() ([]models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
}

// CatalogService handles search, filtering, sorting and paging of the catalog
type CatalogService interface {
	Search(query models.CatalogQuery) (*models.CatalogPage, error)
	FindByArticle(query models.CatalogQuery) (*models.Product, bool, error)
	GetProduct(id int64) (*models.Product, error)
}

// CatalogServiceImpl implements CatalogService
type CatalogServiceImpl struct {
	catalogRepo CatalogRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo CatalogRepository) CatalogService {
	return &CatalogServiceImpl{
		catalogRepo: catalogRepo,
	}
}

// Search returns the requested page of products matching query. Brand
// facets are counted before the brand filter so every brand stays selectable.
func (s *CatalogServiceImpl) Search(query models.CatalogQuery) (*models.CatalogPage, error) {
	products, err := s.catalogRepo.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var matched []models.Product
	for _, p := range products {
		if matchesText(p, query.Search) && matchesPrice(p, query) {
			matched = append(matched, p)
		}
	}

	brands := brandFacets(matched, query)

	filtered := matched[:0:0]
	for _, p := range matched {
		if len(query.BrandIDs) == 0 || query.HasBrand(p.BrandID) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, query.Sort)

	page := &models.CatalogPage{
		Query:  query,
		Brands: brands,
		Total:  len(filtered),
		Pages:  (len(filtered) + models.CatalogPageSize - 1) / models.CatalogPageSize,
	}
	if page.Pages == 0 {
		page.Pages = 1
	}

	start := (query.Page - 1) * models.CatalogPageSize
	if start < len(filtered) {
		end := start + models.CatalogPageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		page.Products = filtered[start:end]
	}

	return page, nil
}

// FindByArticle returns the product whose article number is the search text
func (s *CatalogServiceImpl) FindByArticle(query models.CatalogQuery) (*models.Product, bool, error) {
	id, ok := query.IsArticle()
	if !ok {
		return nil, false, nil
	}
	p, err := s.catalogRepo.GetProductByID(id)
	if errors.Is(err, models.ErrProductNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up article %d: %w", id, err)
	}
	return p, true, nil
}

// GetProduct retrieves a product by its article number
func (s *CatalogServiceImpl) GetProduct(id int64) (*models.Product, error) {
	p, err := s.catalogRepo.GetProductByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// matchesText checks every search word against the brand and name
func matchesText(p models.Product, search string) bool {
	haystack := strings.ToLower(p.Brand + " " + p.Name)
	for _, word := range strings.Fields(strings.ToLower(search)) {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}

func matchesPrice(p models.Product, q models.CatalogQuery) bool {
	if q.MinPrice > 0 && p.Price < q.MinPrice {
		return false
	}
	if q.MaxPrice > 0 && p.Price > q.MaxPrice {
		return false
	}
	return true
}

func brandFacets(products []models.Product, q models.CatalogQuery) []models.BrandFacet {
	index := make(map[int64]int)
	var facets []models.BrandFacet
	for _, p := range products {
		i, ok := index[p.BrandID]
		if !ok {
			i = len(facets)
			index[p.BrandID] = i
			facets = append(facets, models.BrandFacet{ID: p.BrandID, Name: p.Brand, Selected: q.HasBrand(p.BrandID)})
		}
		facets[i].Count++
	}
	sort.Slice(facets, func(i, j int) bool { return facets[i].Name < facets[j].Name })
	return facets
}

// sortProducts orders products in place. Ties keep catalog order.
func sortProducts(products []models.Product, sortType models.SortType) {
	var less func(a, b models.Product) bool
	switch sortType {
	case models.SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case models.SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case models.SortNew:
		less = func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case models.SortRating:
		less = func(a, b models.Product) bool { return a.Rating > b.Rating }
	case models.SortBenefit:
		less = func(a, b models.Product) bool { return discount(a) > discount(b) }
	default:
		less = func(a, b models.Product) bool { return a.Reviews > b.Reviews }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

// discount is the share of the old price taken off, in percent
func discount(p models.Product) int64 {
	if p.OldPrice <= p.Price || p.OldPrice == 0 {
		return 0
	}
	return (p.OldPrice - p.Price) * 100 / p.OldPrice
}
