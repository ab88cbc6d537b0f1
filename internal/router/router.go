package router

import (
	"net/http"

	"megamart/internal/handler"
	"megamart/internal/metrics"
	"megamart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	customerHandler *handler.CustomerHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	m *metrics.ServerMetrics,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", metrics.Handler())

	// Products
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.Get)
	mux.HandleFunc("POST /api/products", productHandler.Create)
	mux.HandleFunc("PATCH /api/products/{id}", productHandler.Update)
	mux.HandleFunc("DELETE /api/products/{id}", productHandler.Delete)

	// Customers
	mux.HandleFunc("GET /api/customers", customerHandler.List)
	mux.HandleFunc("GET /api/customers/{id}", customerHandler.Get)
	mux.HandleFunc("POST /api/customers", customerHandler.Create)
	mux.HandleFunc("PATCH /api/customers/{id}", customerHandler.Update)
	mux.HandleFunc("DELETE /api/customers/{id}", customerHandler.Delete)

	// Carts
	mux.HandleFunc("GET /api/carts/{customerId}", cartHandler.Get)
	mux.HandleFunc("POST /api/carts/{customerId}/items", cartHandler.AddItem)
	mux.HandleFunc("PATCH /api/carts/{customerId}/items/{productId}", cartHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/carts/{customerId}/items/{productId}", cartHandler.RemoveItem)
	mux.HandleFunc("DELETE /api/carts/{customerId}/clear", cartHandler.Clear)

	// Orders
	mux.HandleFunc("POST /api/orders/from-cart/{customerId}", orderHandler.Checkout)
	mux.HandleFunc("GET /api/orders", orderHandler.List)
	mux.HandleFunc("GET /api/orders/{id}", orderHandler.Get)
	mux.HandleFunc("PATCH /api/orders/{id}/status", orderHandler.UpdateStatus)

	// Catch-all JSON 404 for unmatched routes
	mux.Handle("/", handler.NotFoundHandler())

	// Apply middleware in order: Recovery -> Logging -> Metrics -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Metrics(m)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
