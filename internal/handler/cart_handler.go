package handler

import (
	"net/http"

	"megamart/internal/model"
	"megamart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/carts/{customerId} requests. A cart is created on
// first access.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parsePathID(w, r, "customerId", "customerId", h.logger)
	if !ok {
		return
	}

	resp, err := h.service.GetOrCreate(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "success", resp)
}

// AddItem handles POST /api/carts/{customerId}/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parsePathID(w, r, "customerId", "customerId", h.logger)
	if !ok {
		return
	}

	var req model.AddCartItemRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		writeAPIError(w, apiErr, h.logger)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeAPIError(w, model.InvalidIDError("productId"), h.logger)
		return
	}

	resp, err := h.service.AddItem(r.Context(), customerID, productID, req.Qty())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, "item added", resp)
}

// UpdateItem handles PATCH /api/carts/{customerId}/items/{productId} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parsePathID(w, r, "customerId", "customerId", h.logger)
	if !ok {
		return
	}
	productID, ok := parsePathID(w, r, "productId", "productId", h.logger)
	if !ok {
		return
	}

	var req model.UpdateCartItemRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		writeAPIError(w, apiErr, h.logger)
		return
	}

	resp, err := h.service.UpdateItemQuantity(r.Context(), customerID, productID, *req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "item updated", resp)
}

// RemoveItem handles DELETE /api/carts/{customerId}/items/{productId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parsePathID(w, r, "customerId", "customerId", h.logger)
	if !ok {
		return
	}
	productID, ok := parsePathID(w, r, "productId", "productId", h.logger)
	if !ok {
		return
	}

	resp, err := h.service.RemoveItem(r.Context(), customerID, productID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "item removed", resp)
}

// Clear handles DELETE /api/carts/{customerId}/clear requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parsePathID(w, r, "customerId", "customerId", h.logger)
	if !ok {
		return
	}

	resp, err := h.service.Clear(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "cart cleared", resp)
}
