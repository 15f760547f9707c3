package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

// BookingOutcomes counts booking submissions by operation (create, update)
// and outcome (confirmed or a rejection reason).
var BookingOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "booking_outcomes_total",
		Help: "Booking submissions by operation and outcome",
	},
	[]string{"operation", "outcome"},
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(BookingOutcomes)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
