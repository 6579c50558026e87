package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/themizzi/shopflow/internal/models"
	"github.com/themizzi/shopflow/internal/services"
)

// Basket actions accepted by the basket API
const (
	BasketActionAdd      = "add"
	BasketActionDelete   = "delete"
	BasketActionIncrease = "increase"
	BasketActionDecrease = "decrease"
)

// BasketPageData is the data the basket template renders
type BasketPageData struct {
	Header Header
	Items  []services.BasketItem
	Total  int64
}

// BasketPageHandler renders the basket
type BasketPageHandler struct {
	template      *template.Template
	basketService services.BasketService
}

// NewBasketPageHandler creates a new BasketPageHandler
func NewBasketPageHandler(templatePath string, basketService services.BasketService) (*BasketPageHandler, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}

	return &BasketPageHandler{
		template:      tmpl,
		basketService: basketService,
	}, nil
}

// ServeHTTP handles the GET /lk/basket request
func (h *BasketPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := basketID(w, r)
	items, err := h.basketService.Items(id)
	if err != nil {
		log.Printf("Error loading basket: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := BasketPageData{
		Header: Header{BasketCount: len(items)},
		Items:  items,
	}
	for _, item := range items {
		data.Total += item.Total()
	}

	if err := h.template.Execute(w, data); err != nil {
		log.Printf("Error rendering basket: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}

// BasketRequest is the body of a basket API call
type BasketRequest struct {
	Action    string `json:"action"`
	ProductID int64  `json:"productId,omitempty"`
	LineID    string `json:"lineId,omitempty"`
	Size      string `json:"size,omitempty"`
}

// BasketResponse is the answer to a successful basket API call
type BasketResponse struct {
	Count    int    `json:"count"`
	LineID   string `json:"lineId,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BasketAPIHandler applies basket changes sent by the storefront scripts
type BasketAPIHandler struct {
	basketService services.BasketService
}

// NewBasketAPIHandler creates a new basket API handler
func NewBasketAPIHandler(basketService services.BasketService) *BasketAPIHandler {
	return &BasketAPIHandler{
		basketService: basketService,
	}
}

// ServeHTTP handles the POST /api/basket request
func (h *BasketAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BasketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id := basketID(w, r)

	var (
		line *models.BasketLine
		err  error
	)
	switch req.Action {
	case BasketActionAdd:
		line, err = h.basketService.Add(id, req.ProductID, req.Size)
	case BasketActionDelete:
		err = h.basketService.Delete(id, req.LineID)
	case BasketActionIncrease:
		line, err = h.basketService.Increase(id, req.LineID)
	case BasketActionDecrease:
		line, err = h.basketService.Decrease(id, req.LineID)
	default:
		sendErrorResponse(w, "Unknown basket action: "+req.Action, http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, services.ErrLineNotFound):
		sendErrorResponse(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, services.ErrSizeUnavailable):
		sendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		log.Printf("Error applying basket action %s: %v", req.Action, err)
		sendErrorResponse(w, "Failed to update basket", http.StatusInternalServerError)
		return
	}

	resp := BasketResponse{Count: h.basketService.Count(id)}
	if line != nil {
		resp.LineID = line.ID
		resp.Quantity = line.Quantity
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
