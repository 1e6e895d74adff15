// Package metrics expone métricas Prometheus del API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores del servicio.
type Metrics struct {
	registry         *prometheus.Registry
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	domainErrors     *prometheus.CounterVec
}

// New crea un registro propio (evita colisiones entre tests) y registra los colectores.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facturacion_http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "facturacion_http_request_duration_seconds",
				Help:    "Duración de peticiones HTTP en segundos",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		requestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "facturacion_http_requests_in_flight",
				Help: "Peticiones HTTP en curso",
			},
		),
		domainErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facturacion_domain_errors_total",
				Help: "Errores devueltos al cliente por código",
			},
			[]string{"code"},
		),
	}
}

// RecordHTTPRequest registra una petición terminada.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncInFlight / DecInFlight controlan el gauge de peticiones en curso.
func (m *Metrics) IncInFlight() { m.requestsInFlight.Inc() }
func (m *Metrics) DecInFlight() { m.requestsInFlight.Dec() }

// RecordDomainError cuenta errores traducidos en el borde HTTP (NOT_FOUND, CONFLICT...).
func (m *Metrics) RecordDomainError(code string) {
	m.domainErrors.WithLabelValues(code).Inc()
}

// Handler devuelve el handler net/http para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer expone el registro (tests).
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
