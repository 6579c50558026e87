package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHomeHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		checkContent   []string
	}{
		{
			name:           "home page",
			method:         http.MethodGet,
			path:           "/",
			expectedStatus: http.StatusOK,
			checkContent:   []string{`id="searchInput"`, "кроссовки", "j-item-basket"},
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			path:           "/unknown",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "POST not allowed",
			method:         http.MethodPost,
			path:           "/",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, basket := newTestServices()
			handler, err := NewHomeHandler(templateDir+"home.html", basket)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			body := rr.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("Expected response to contain %q", content)
				}
			}
			if tt.expectedStatus == http.StatusOK && strings.Contains(body, "product-card-list") {
				t.Error("home page must not render a results list")
			}
		})
	}
}
