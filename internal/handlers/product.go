package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/themizzi/shopflow/internal/models"
	"github.com/themizzi/shopflow/internal/services"
)

// Review is one customer review on a product card
type Review struct {
	Author string
	Rating int
	Text   string
	Date   string
}

// fixtureReviews are shown on every product card
var fixtureReviews = []Review{
	{Author: "Анна", Rating: 5, Text: "Сели идеально, размер в размер.", Date: "12 марта"},
	{Author: "Игорь", Rating: 3, Text: "Нормально, но доставка задержалась.", Date: "9 марта"},
	{Author: "Мария", Rating: 4, Text: "Лёгкие и удобные, беру второй раз.", Date: "2 марта"},
	{Author: "Олег", Rating: 5, Text: "Отличное качество за свои деньги.", Date: "27 февраля"},
}

// ProductPageData is the data the product card template renders
type ProductPageData struct {
	Header   Header
	Product  *models.Product
	Reviews  []Review
	InBasket bool
	BackURL  string
}

// ProductHandler handles product card requests
type ProductHandler struct {
	template       *template.Template
	catalogService services.CatalogService
	basketService  services.BasketService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(templatePath string, catalogService services.CatalogService, basketService services.BasketService) (*ProductHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &ProductHandler{
		template:       tmpl,
		catalogService: catalogService,
		basketService:  basketService,
	}, nil
}

// ServeHTTP handles the GET /catalog/{id}/detail.aspx request
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.catalogService.GetProduct(productID)
	if errors.Is(err, models.ErrProductNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error loading product %d: %v", productID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	id := basketID(w, r)
	items, err := h.basketService.Items(id)
	if err != nil {
		log.Printf("Error loading basket: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := ProductPageData{
		Header:  header(h.basketService, id, ""),
		Product: product,
		Reviews: fixtureReviews,
		BackURL: searchURL(models.CatalogQuery{Search: product.Brand, Page: 1}),
	}
	for _, item := range items {
		if item.Product.ID == product.ID {
			data.InBasket = true
		}
	}

	if err := h.template.Execute(w, data); err != nil {
		log.Printf("Error rendering product %d: %v", productID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
