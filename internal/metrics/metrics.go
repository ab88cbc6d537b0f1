package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics holds the HTTP and checkout counters for the API server.
type ServerMetrics struct {
	Requests       *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
	OrdersPlaced   prometheus.Counter
	StockConflicts prometheus.Counter
}

// New registers the server metrics against reg and returns them. Pass
// prometheus.DefaultRegisterer in the server; tests use a fresh registry.
func New(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "megamart",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "megamart",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "path"})

	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "megamart",
		Name:      "orders_placed_total",
		Help:      "Total number of orders successfully placed from carts.",
	})

	stockConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "megamart",
		Name:      "checkout_stock_conflicts_total",
		Help:      "Total number of checkouts rejected for insufficient stock.",
	})

	reg.MustRegister(requests, latency, ordersPlaced, stockConflicts)

	return &ServerMetrics{
		Requests:       requests,
		LatencyMS:      latency,
		OrdersPlaced:   ordersPlaced,
		StockConflicts: stockConflicts,
	}
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
