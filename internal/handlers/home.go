package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/themizzi/shopflow/internal/services"
)

// PopularQueries are the searches suggested on the home page
var PopularQueries = []string{"кроссовки", "кеды", "футболка"}

// HomeHandler renders the storefront home page
type HomeHandler struct {
	template      *template.Template
	basketService services.BasketService
}

// HomePageData is the data the home template renders
type HomePageData struct {
	Header  Header
	Queries []string
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(templatePath string, basketService services.BasketService) (*HomeHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &HomeHandler{
		template:      tmpl,
		basketService: basketService,
	}, nil
}

// ServeHTTP handles the GET / request. Every other unmatched path is a 404.
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := basketID(w, r)
	data := HomePageData{
		Header:  header(h.basketService, id, ""),
		Queries: PopularQueries,
	}

	if err := h.template.Execute(w, data); err != nil {
		log.Printf("Error rendering home page: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
