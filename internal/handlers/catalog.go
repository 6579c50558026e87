package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/themizzi/shopflow/internal/models"
	"github.com/themizzi/shopflow/internal/services"
)

// SearchPath is the path of the search results page
const SearchPath = "/catalog/0/search.aspx"

// ProductPath returns the path of a product card
func ProductPath(id int64) string {
	return fmt.Sprintf("/catalog/%d/detail.aspx", id)
}

// SortOption is one entry of the sorter dropdown
type SortOption struct {
	Label  string
	URL    string
	Active bool
}

// PageLink is one numbered pagination link
type PageLink struct {
	Number int
	URL    string
	Active bool
}

// CatalogPageData is the data the search results template renders
type CatalogPageData struct {
	Header        Header
	Page          *models.CatalogPage
	SortLabel     string
	Sorts         []SortOption
	BrandSelected bool
	PriceMin      string
	PriceMax      string
	Tags          []string
	InBasket      map[int64]bool
	FilterBaseURL string
	ResetURL      string
	PageLinks     []PageLink
	NextURL       string
}

// CatalogHandler handles search results requests
type CatalogHandler struct {
	template       *template.Template
	catalogService services.CatalogService
	basketService  services.BasketService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(templatePath string, catalogService services.CatalogService, basketService services.BasketService) (*CatalogHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &CatalogHandler{
		template:       tmpl,
		catalogService: catalogService,
		basketService:  basketService,
	}, nil
}

// ServeHTTP handles the GET /catalog/0/search.aspx request. A search for an
// article number redirects to that product's card.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query, err := models.ParseCatalogQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, found, err := h.catalogService.FindByArticle(query)
	if err != nil {
		log.Printf("Error looking up article: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if found {
		http.Redirect(w, r, ProductPath(product.ID), http.StatusFound)
		return
	}

	page, err := h.catalogService.Search(query)
	if err != nil {
		log.Printf("Error searching catalog: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	id := basketID(w, r)
	data, err := h.pageData(page, header(h.basketService, id, query.Search), id)
	if err != nil {
		log.Printf("Error loading basket: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.template.Execute(w, data); err != nil {
		log.Printf("Error rendering search results: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

func (h *CatalogHandler) pageData(page *models.CatalogPage, hdr Header, id uuid.UUID) (*CatalogPageData, error) {
	q := page.Query
	data := &CatalogPageData{
		Header:        hdr,
		Page:          page,
		SortLabel:     q.Sort.Label(),
		BrandSelected: len(q.BrandIDs) > 0,
		InBasket:      make(map[int64]bool),
	}

	items, err := h.basketService.Items(id)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		data.InBasket[item.Product.ID] = true
	}

	for _, sortType := range models.SortTypes {
		sq := q
		sq.Sort, sq.Page = sortType, 1
		data.Sorts = append(data.Sorts, SortOption{
			Label:  sortType.Label(),
			URL:    searchURL(sq),
			Active: sortType == q.Sort,
		})
	}

	if q.MinPrice > 0 {
		data.PriceMin = strconv.FormatInt(q.MinPrice, 10)
	}
	if q.MaxPrice > 0 {
		data.PriceMax = strconv.FormatInt(q.MaxPrice, 10)
	}

	for _, brand := range page.Brands {
		if brand.Selected {
			data.Tags = append(data.Tags, brand.Name)
		}
	}
	if q.HasPriceRange() {
		data.Tags = append(data.Tags, priceTag(q))
	}

	// The filters panel replaces brands and prices but keeps the text and sort
	base := models.CatalogQuery{Search: q.Search, Sort: q.Sort, Page: 1}
	data.FilterBaseURL = searchURL(base)
	data.ResetURL = searchURL(models.CatalogQuery{Search: q.Search, Page: 1})

	for n := 1; n <= page.Pages; n++ {
		pq := q
		pq.Page = n
		data.PageLinks = append(data.PageLinks, PageLink{Number: n, URL: searchURL(pq), Active: n == q.Page})
	}
	if page.HasNext() {
		next := q
		next.Page++
		data.NextURL = searchURL(next)
	}

	return data, nil
}

func searchURL(q models.CatalogQuery) string {
	values := q.Values()
	if len(values) == 0 {
		return SearchPath
	}
	return SearchPath + "?" + values.Encode()
}

func priceTag(q models.CatalogQuery) string {
	switch {
	case q.MinPrice > 0 && q.MaxPrice > 0:
		return fmt.Sprintf("от %d до %d ₽", q.MinPrice, q.MaxPrice)
	case q.MinPrice > 0:
		return fmt.Sprintf("от %d ₽", q.MinPrice)
	default:
		return fmt.Sprintf("до %d ₽", q.MaxPrice)
	}
}
