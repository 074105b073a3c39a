// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	Requests       *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	SearchErrors   *prometheus.CounterVec
	ManualPages    prometheus.Gauge
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swat_chat",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "swat_chat",
			Name:      "search_duration_seconds",
			Help:      "Latency of arXiv search calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		}),
		SearchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swat_chat",
			Name:      "search_errors_total",
			Help:      "Failed arXiv searches by error kind.",
		}, []string{"kind"}),
		ManualPages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "swat_chat",
			Name:      "manual_pages_loaded",
			Help:      "Pages of the reference manual loaded at startup.",
		}),
	}
	m.Registry.MustRegister(
		m.Requests,
		m.SearchDuration,
		m.SearchErrors,
		m.ManualPages,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}

// countRequests records every request once the handler chain returns.
func (m *Metrics) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *Metrics) observeSearch(start time.Time) {
	m.SearchDuration.Observe(time.Since(start).Seconds())
}
