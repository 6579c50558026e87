package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/themizzi/shopflow/internal/models"
)

func TestProductHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		id             string
		inBasket       bool
		expectedStatus int
		checkContent   []string
		rejectContent  []string
	}{
		{
			name:           "product card",
			method:         http.MethodGet,
			id:             "146972815",
			expectedStatus: http.StatusOK,
			checkContent: []string{
				`<span id="productNmId">146972815</span>`,
				`<h1 class="product-page__title">Кроссовки Revolution</h1>`,
				`<span class="product-page__brand">Nike</span>`,
				models.FormatRoubles(1490),
				models.FormatRoubles(2990),
				`data-size="41"`,
				`data-size="42"`,
				"general-preloader",
				"sorting__list",
				`<a class="j-go-to-basket btn-main" href="/lk/basket" hidden>`,
			},
		},
		{
			name:           "product already in basket",
			method:         http.MethodGet,
			id:             "146972815",
			inBasket:       true,
			expectedStatus: http.StatusOK,
			checkContent:   []string{`<a class="j-go-to-basket btn-main" href="/lk/basket">`},
		},
		{
			name:           "product without old price",
			method:         http.MethodGet,
			id:             "146972833",
			expectedStatus: http.StatusOK,
			checkContent:   []string{models.FormatRoubles(2190)},
			rejectContent:  []string{"price-block__old-price"},
		},
		{
			name:           "unknown product",
			method:         http.MethodGet,
			id:             "404",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed id",
			method:         http.MethodGet,
			id:             "abc",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "POST not allowed",
			method:         http.MethodPost,
			id:             "146972815",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, basket := newTestServices()
			handler, err := NewProductHandler(templateDir+"product.html", catalog, basket)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			id := uuid.New()
			if tt.inBasket {
				if _, err := basket.Add(id, 146972815, "42"); err != nil {
					t.Fatalf("Failed to seed basket: %v", err)
				}
			}

			mux := http.NewServeMux()
			mux.Handle("/catalog/{id}/detail.aspx", handler)

			req := withBasket(httptest.NewRequest(tt.method, "/catalog/"+tt.id+"/detail.aspx", nil), id)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			body := rr.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("Expected response to contain %q", content)
				}
			}
			for _, content := range tt.rejectContent {
				if strings.Contains(body, content) {
					t.Errorf("Expected response not to contain %q", content)
				}
			}
		})
	}
}

func TestProductHandler_ServiceError(t *testing.T) {
	_, basket := newTestServices()
	service := &MockCatalogService{
		GetProductFunc: func(int64) (*models.Product, error) {
			return nil, errors.New("database connection failed")
		},
	}

	handler, err := NewProductHandler(templateDir+"product.html", service, basket)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/catalog/{id}/detail.aspx", handler)

	req := httptest.NewRequest(http.MethodGet, "/catalog/146972815/detail.aspx", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
}
