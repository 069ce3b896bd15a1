// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "freelancehub"

// Metrics owns a private registry so several instances (tests) never clash.
type Metrics struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	kvOps        *prometheus.CounterVec
	kvDuration   *prometheus.HistogramVec
	indexSize    *prometheus.GaugeVec
	reindexRuns  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		kvOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "kv",
			Name:      "operations_total",
			Help:      "Key-value store operations by kind and result.",
		}, []string{"op", "result"}),
		kvDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "kv",
			Name:      "operation_duration_seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"op"}),
		indexSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "entries",
			Help:      "Entries per secondary index after the last reindex.",
		}, []string{"index"}),
		reindexRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "reindex_runs_total",
		}, []string{"result"}),
	}

	m.reg.MustRegister(
		m.httpRequests, m.httpDuration,
		m.kvOps, m.kvDuration,
		m.indexSize, m.reindexRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Register adds an extra collector, e.g. a PebbleCollector.
func (m *Metrics) Register(c prometheus.Collector) error {
	return m.reg.Register(c)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method string, code int, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// ObserveKV records one store call.
func (m *Metrics) ObserveKV(op string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.kvOps.WithLabelValues(op, result).Inc()
	m.kvDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) SetIndexSize(index string, n int) {
	m.indexSize.WithLabelValues(index).Set(float64(n))
}

func (m *Metrics) ObserveReindex(err error) {
	if err != nil {
		m.reindexRuns.WithLabelValues("error").Inc()
		return
	}
	m.reindexRuns.WithLabelValues("ok").Inc()
}
