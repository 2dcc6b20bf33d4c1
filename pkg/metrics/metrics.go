package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, route, and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// ObserveRequest records one served request.
func (h *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	h.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
	h.duration.WithLabelValues(method, normalizeLabel(route)).Observe(elapsed.Seconds())
}

// QuotationMetrics counts submission outcomes.
type QuotationMetrics struct {
	success *prometheus.CounterVec
	failure *prometheus.CounterVec
}

// NewQuotationMetrics registers submission counters on the provided registerer.
func NewQuotationMetrics(reg prometheus.Registerer) *QuotationMetrics {
	if reg == nil {
		return &QuotationMetrics{}
	}
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_submissions_success",
		Help: "Quotation submissions acknowledged by the storefront api.",
	}, []string{"outcome"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_submissions_failure",
		Help: "Quotation submissions rejected or failed, by error code.",
	}, []string{"code"})
	reg.MustRegister(success, failure)
	return &QuotationMetrics{
		success: success,
		failure: failure,
	}
}

// IncSuccess increments the acknowledged-submission counter.
func (q *QuotationMetrics) IncSuccess() {
	if q == nil || q.success == nil {
		return
	}
	q.success.WithLabelValues("acknowledged").Inc()
}

// IncFailure increments the failed-submission counter for the given error code.
func (q *QuotationMetrics) IncFailure(code string) {
	if q == nil || q.failure == nil {
		return
	}
	q.failure.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
