package observability

import (
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics
)

// Metrics groups the counters exported on /metrics
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec   // HTTP requests by method, route and status
	RequestsDuration *prometheus.HistogramVec // HTTP latency by method and route
	LoginAttempts    *prometheus.CounterVec   // Login outcomes: success, invalid, throttled, error
	Registrations    *prometheus.CounterVec   // Registration outcomes: created, duplicate, invalid, error
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "car_rental",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "car_rental",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "car_rental",
				Name:      "login_attempts_total",
				Help:      "Login attempts by outcome",
			},
			[]string{"result"},
		),
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "car_rental",
				Name:      "registrations_total",
				Help:      "User registrations by outcome",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestsDuration, m.LoginAttempts, m.Registrations)
	return m
}
