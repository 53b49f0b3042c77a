package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments every request the client issues.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics registers the client metrics on reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_client_requests_total",
			Help: "Requests issued to the clinic backend, by resource and outcome.",
		}, []string{"method", "resource", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_client_request_duration_seconds",
			Help:    "Latency of clinic backend requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "resource"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

func (m *Metrics) observe(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	resource := resourceLabel(path)
	m.requests.WithLabelValues(method, resource, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, resource).Observe(elapsed.Seconds())
}

// resourceLabel keeps label cardinality bounded: only the first path
// segment identifies the resource.
func resourceLabel(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
