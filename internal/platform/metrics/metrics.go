package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Collector owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Collector struct {
	registry          *prometheus.Registry
	requests          *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	jobRuns           *prometheus.CounterVec
	overdueReceivable prometheus.Gauge
	overduePayable    prometheus.Gauge
	overdueParties    *prometheus.GaugeVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agrobooks_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agrobooks_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "agrobooks_job_runs_total",
			Help: "Background job runs by type and outcome.",
		}, []string{"job_type", "status"}),
		overdueReceivable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agrobooks_overdue_receivable_rupees",
			Help: "Sale dues past the overdue threshold at the last scan.",
		}),
		overduePayable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "agrobooks_overdue_payable_rupees",
			Help: "Purchase balances past the overdue threshold at the last scan.",
		}),
		overdueParties: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "agrobooks_overdue_parties",
			Help: "Parties with overdue bills at the last scan.",
		}, []string{"side"}),
	}
	c.registry.MustRegister(
		c.requests, c.duration, c.jobRuns,
		c.overdueReceivable, c.overduePayable, c.overdueParties,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) Record(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordJob(jobType, status string) {
	c.jobRuns.WithLabelValues(jobType, status).Inc()
}

func (c *Collector) SetOverdue(receivable, payable decimal.Decimal, customers, suppliers int) {
	c.overdueReceivable.Set(receivable.InexactFloat64())
	c.overduePayable.Set(payable.InexactFloat64())
	c.overdueParties.WithLabelValues("customers").Set(float64(customers))
	c.overdueParties.WithLabelValues("suppliers").Set(float64(suppliers))
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
