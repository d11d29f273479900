package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/adtech-learning/internal/platform/envutil"
)

// Metrics owns its registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	pageRenders     *prometheus.CounterVec
	pageRenderTime  *prometheus.HistogramVec
	linkCheckStatus *prometheus.CounterVec
}

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adtech_http_requests_total",
			Help: "HTTP requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adtech_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds by method/route/status.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "adtech_http_inflight_requests",
			Help: "In-flight HTTP requests.",
		}),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adtech_page_renders_total",
			Help: "Page lookups by page kind and cache outcome (hit/miss/bypass/error).",
		}, []string{"page", "cache"}),
		pageRenderTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adtech_page_render_duration_seconds",
			Help:    "Template execution time per page kind.",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}, []string{"page"}),
		linkCheckStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adtech_linkcheck_results_total",
			Help: "Internal link check results by status class.",
		}, []string{"class"}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.pageRenders,
		m.pageRenderTime,
		m.linkCheckStatus,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncPageLookup(page, cache string) {
	if m == nil {
		return
	}
	m.pageRenders.WithLabelValues(page, cache).Inc()
}

func (m *Metrics) ObservePageRender(page string, dur time.Duration) {
	if m == nil {
		return
	}
	m.pageRenderTime.WithLabelValues(page).Observe(dur.Seconds())
}

func (m *Metrics) IncLinkCheck(class string) {
	if m == nil {
		return
	}
	m.linkCheckStatus.WithLabelValues(class).Inc()
}
