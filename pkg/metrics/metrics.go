// Package metrics expone métricas Prometheus de la API con un registro propio,
// de modo que cada instancia (y cada test) registre sus colectores sin choques.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores de la API.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	MovementsRecorded *prometheus.CounterVec
	InsufficientStock prometheus.Counter
	AuthAttempts      *prometheus.CounterVec
}

// New crea los colectores con el prefijo indicado (p. ej. "inventario").
func New(prefix string) *Metrics {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), "_")
	if prefix == "" {
		prefix = "inventario"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		MovementsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_movements_recorded_total",
			Help: "Total number of stock movements committed to the ledger",
		}, []string{"type"}),
		InsufficientStock: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_insufficient_stock_total",
			Help: "Total number of out movements rejected for insufficient stock",
		}),
		AuthAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
	}
}

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

// RecordMovement incrementa el contador por tipo de movimiento.
func (m *Metrics) RecordMovement(movementType string) {
	m.MovementsRecorded.WithLabelValues(movementType).Inc()
}

// RecordAuthAttempt incrementa el contador de login con result = success | failure.
func (m *Metrics) RecordAuthAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

// Registry expone el registro (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve el formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
