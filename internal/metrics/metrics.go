package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the server. Each Collector owns
// its registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	EntriesCreated  prometheus.Counter
	EntriesAppended prometheus.Counter
	SessionsOpened  prometheus.Counter
	SessionsClosed  *prometheus.CounterVec
	ActiveSessions  prometheus.Gauge

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewCollector creates and registers metrics under namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		EntriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_created_total",
			Help:      "Total number of entries persisted",
		}),
		EntriesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_entries_appended_total",
			Help:      "Total number of entries appended to session logs",
		}),
		SessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_opened_total",
			Help:      "Total number of sessions opened",
		}),
		SessionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_closed_total",
			Help:      "Total number of sessions closed, by reason",
		}, []string{"reason"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of open sessions",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of entry cache hits",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of entry cache misses",
		}),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.EntriesCreated,
		c.EntriesAppended,
		c.SessionsOpened,
		c.SessionsClosed,
		c.ActiveSessions,
		c.CacheHits,
		c.CacheMisses,
		collectors.NewGoCollector(),
	)
	return c
}

// Registry returns the registry backing this collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// SessionOpened implements session.Observer
func (c *Collector) SessionOpened() {
	c.SessionsOpened.Inc()
	c.ActiveSessions.Inc()
}

// SessionClosed implements session.Observer
func (c *Collector) SessionClosed(reason string) {
	c.SessionsClosed.WithLabelValues(reason).Inc()
	c.ActiveSessions.Dec()
}

// EntryCreated implements session.Observer
func (c *Collector) EntryCreated() {
	c.EntriesCreated.Inc()
}

// EntryAppended implements session.Observer
func (c *Collector) EntryAppended() {
	c.EntriesAppended.Inc()
}

// CacheHit implements store.CacheObserver
func (c *Collector) CacheHit() {
	c.CacheHits.Inc()
}

// CacheMiss implements store.CacheObserver
func (c *Collector) CacheMiss() {
	c.CacheMisses.Inc()
}
