package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metric collectors for the Makerboard server.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Auth metrics.
	AuthFailuresTotal  *prometheus.CounterVec
	AuthSuccessesTotal *prometheus.CounterVec

	// Rate limiting.
	RateLimitRejectionsTotal *prometheus.CounterVec

	// Catalog metrics.
	ProjectsCreatedTotal   prometheus.Counter
	ListingEventsTotal     *prometheus.CounterVec
	CatalogQueriesTotal    *prometheus.CounterVec

	// Server lifecycle.
	ServerStartTime prometheus.Gauge
}

// New creates and registers all Prometheus metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "makerboard_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "makerboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path_pattern"}),

		HTTPRequestSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "makerboard_http_request_size_bytes",
			Help:    "HTTP request size in bytes.",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		}, []string{"method", "path_pattern"}),

		HTTPResponseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "makerboard_http_response_size_bytes",
			Help:    "HTTP response size in bytes.",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		}, []string{"method", "path_pattern"}),

		AuthFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "makerboard_auth_failures_total",
			Help: "Total number of failed registration or login attempts.",
		}, []string{"op"}),

		AuthSuccessesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "makerboard_auth_successes_total",
			Help: "Total number of successful registrations or logins.",
		}, []string{"op"}),

		RateLimitRejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "makerboard_ratelimit_rejections_total",
			Help: "Total number of rate limit rejections.",
		}, []string{"scope"}),

		ProjectsCreatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "makerboard_projects_created_total",
			Help: "Total number of project listings created.",
		}),

		ListingEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "makerboard_listing_events_total",
			Help: "Total number of listing interaction events recorded.",
		}, []string{"kind"}),

		CatalogQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "makerboard_catalog_queries_total",
			Help: "Total number of catalog browse queries by sort order.",
		}, []string{"sort"}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "makerboard_server_start_time_seconds",
			Help: "Unix timestamp when the server started.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSize,
		m.HTTPResponseSize,
		m.AuthFailuresTotal,
		m.AuthSuccessesTotal,
		m.RateLimitRejectionsTotal,
		m.ProjectsCreatedTotal,
		m.ListingEventsTotal,
		m.CatalogQueriesTotal,
		m.ServerStartTime,
	)

	m.ServerStartTime.Set(float64(time.Now().Unix()))

	// Register Go runtime and process collectors.
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the private Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDBPoolCollector registers a custom DB pool stats collector.
func (m *Metrics) RegisterDBPoolCollector(statFunc DBPoolStatFunc) {
	m.registry.MustRegister(NewDBPoolCollector(statFunc))
}

// RegisterBufferGauge exposes the activity collector's buffer size as a gauge.
func (m *Metrics) RegisterBufferGauge(lenFunc func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "makerboard_activity_buffer_size",
		Help: "Current number of buffered listing events awaiting flush.",
	}, func() float64 {
		return float64(lenFunc())
	}))
}

// IncAuthFailure increments the auth failure counter for op (register, login).
func (m *Metrics) IncAuthFailure(op string) {
	m.AuthFailuresTotal.WithLabelValues(op).Inc()
}

// IncAuthSuccess increments the auth success counter for op (register, login).
func (m *Metrics) IncAuthSuccess(op string) {
	m.AuthSuccessesTotal.WithLabelValues(op).Inc()
}

// IncRateLimitRejection increments the rate limit rejection counter.
func (m *Metrics) IncRateLimitRejection(scope string) {
	m.RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
}

// IncProjectCreated increments the listings created counter.
func (m *Metrics) IncProjectCreated() {
	m.ProjectsCreatedTotal.Inc()
}

// IncListingEvent increments the listing event counter for the given kind.
func (m *Metrics) IncListingEvent(kind string) {
	m.ListingEventsTotal.WithLabelValues(kind).Inc()
}

// IncCatalogQuery increments the browse query counter for the given sort order.
func (m *Metrics) IncCatalogQuery(sort string) {
	if sort == "" {
		sort = "relevance"
	}
	m.CatalogQueriesTotal.WithLabelValues(sort).Inc()
}
