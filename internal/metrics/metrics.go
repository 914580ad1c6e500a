package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	resolutions *prometheus.CounterVec
	writeBacks  *prometheus.CounterVec
	checkouts   *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subscription_status_resolutions_total",
			Help: "Resolved subscription status views by status.",
		}, []string{"status"}),
		writeBacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subscription_expiry_writebacks_total",
			Help: "Lazy expiry write-backs by outcome.",
		}, []string{"outcome"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subscription_checkouts_total",
			Help: "Checkout sessions by plan and outcome.",
		}, []string{"plan", "outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.resolutions, m.writeBacks, m.checkouts,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route string, code int, took time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(took.Seconds())
}

func (m *Metrics) ObserveResolution(status string) {
	m.resolutions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveWriteBack(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.writeBacks.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCheckout(plan string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	m.checkouts.WithLabelValues(plan, outcome).Inc()
}
