package handler

import (
	"net/http"

	"megamart/internal/model"
	"megamart/internal/repository"
	"megamart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/orders/from-cart/{customerId} requests,
// converting the customer's cart into an order.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parsePathID(w, r, "customerId", "customerId", h.logger)
	if !ok {
		return
	}

	order, err := h.service.PlaceOrderFromCart(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, "order placed", order)
}

// List handles GET /api/orders requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.OrderFilter{
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
	}

	if raw := q.Get("customer"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeAPIError(w, model.InvalidIDError("customer"), h.logger)
			return
		}
		filter.CustomerID = &id
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeList(w, "success", len(orders), orders)
}

// Get handles GET /api/orders/{id} requests.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id", "order id", h.logger)
	if !ok {
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "success", order)
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(w, r, "id", "order id", h.logger)
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}
	if apiErr := req.Validate(); apiErr != nil {
		writeAPIError(w, apiErr, h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, "updated", order)
}
