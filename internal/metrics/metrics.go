// Package metrics holds the Prometheus collectors shared by the HTTP and gRPC
// hosts. Each Metrics owns its registry so tests can build as many as needed.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "roulette"

type Metrics struct {
	Registry *prometheus.Registry

	spins          *prometheus.CounterVec
	drawSize       prometheus.Histogram
	shares         *prometheus.CounterVec
	restores       *prometheus.CounterVec
	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	rateLimited    prometheus.Counter
	presetReloads  prometheus.Counter
	simulateTrials prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		spins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spins_total",
			Help:      "Spins served, by host surface.",
		}, []string{"surface"}),
		drawSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "spin_results",
			Help:      "Number of names returned per spin.",
			Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
		}),
		shares: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_total",
			Help:      "Share strings encoded, by host surface.",
		}, []string{"surface"}),
		restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restores_total",
			Help:      "Share strings decoded, by restore cache result.",
		}, []string{"cache"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		presetReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preset_reloads_total",
			Help:      "Preset cache invalidations triggered by file changes.",
		}),
		simulateTrials: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulate_trials_total",
			Help:      "Monte Carlo trials run by simulate requests.",
		}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.spins, m.drawSize, m.shares, m.restores,
		m.requests, m.latency, m.rateLimited, m.presetReloads, m.simulateTrials,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Observe methods are no-ops on a nil *Metrics.

func (m *Metrics) ObserveSpin(surface string, results int) {
	if m == nil {
		return
	}
	m.spins.WithLabelValues(surface).Inc()
	m.drawSize.Observe(float64(results))
}

func (m *Metrics) ObserveShare(surface string) {
	if m == nil {
		return
	}
	m.shares.WithLabelValues(surface).Inc()
}

func (m *Metrics) ObserveRestore(cacheHit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if cacheHit {
		result = "hit"
	}
	m.restores.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) ObserveRateLimited() {
	if m != nil {
		m.rateLimited.Inc()
	}
}

func (m *Metrics) ObservePresetReload() {
	if m != nil {
		m.presetReloads.Inc()
	}
}

func (m *Metrics) ObserveSimulate(trials int) {
	if m != nil {
		m.simulateTrials.Add(float64(trials))
	}
}
