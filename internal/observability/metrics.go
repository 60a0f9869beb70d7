// Package observability holds the Prometheus metrics for the service.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Graph pipeline metrics
	FilterDuration   prometheus.Histogram
	GraphNodesServed prometheus.Histogram
	GraphEdgesServed prometheus.Histogram

	// Dataset metrics
	DatasetNodes prometheus.Gauge
	DatasetEdges prometheus.Gauge
}

// NewCollector creates a metrics collector with its own registry
// under the given namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		FilterDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "filter_pipeline_duration_seconds",
				Help:      "Time spent running the graph filter pipeline",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		GraphNodesServed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_nodes_served",
				Help:      "Node count of filtered graph responses",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		GraphEdgesServed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_edges_served",
				Help:      "Edge count of filtered graph responses",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		DatasetNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_nodes",
				Help:      "Node count of the most recently loaded dataset",
			},
		),
		DatasetEdges: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_edges",
				Help:      "Edge count of the most recently loaded dataset",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.FilterDuration,
		c.GraphNodesServed,
		c.GraphEdgesServed,
		c.DatasetNodes,
		c.DatasetEdges,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler exposes the collector's registry for scraping.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
