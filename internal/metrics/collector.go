// Package metrics exposes Prometheus metrics for calls dispatched through the shared transport client.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// namespace prefixes every metric name.
const namespace = "restclient"

// Collector records dispatcher lifecycle events as Prometheus metrics.
// It implements the dispatcher's CallRecorder and is safe for concurrent use.
// All methods are no-ops on a nil *Collector.
type Collector struct {
	callsQueued     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        *prometheus.GaugeVec
	errorsTotal     *prometheus.CounterVec
	canceledTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewCollector creates a collector on its own registry.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.NewRegistry())
}

// NewCollectorWithRegistry creates a collector registering its metrics on registry.
func NewCollectorWithRegistry(registry *prometheus.Registry) *Collector {
	factory := promauto.With(registry)

	return &Collector{
		callsQueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_queued_total",
				Help:      "Total number of calls registered with the dispatcher",
			},
			[]string{"method"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests that finished running",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds, until the response body is closed",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "status_code"},
		),
		inFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently holding a dispatcher slot",
			},
			[]string{"method"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of failed round trips",
			},
			[]string{"type", "method"},
		),
		canceledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_canceled_total",
				Help:      "Total number of calls cancelled through the dispatcher",
			},
			[]string{"reason"},
		),
		registry: registry,
	}
}

// RecordQueued counts a call registered with the dispatcher.
func (c *Collector) RecordQueued(method string) {
	if c == nil {
		return
	}

	c.callsQueued.WithLabelValues(method).Inc()
}

// RecordRequestStart increments the in-flight gauge.
func (c *Collector) RecordRequestStart(method string) {
	if c == nil {
		return
	}

	c.inFlight.WithLabelValues(method).Inc()
}

// RecordRequestEnd decrements the in-flight gauge and records count and duration.
// A zero status code means the round trip failed before a response arrived.
func (c *Collector) RecordRequestEnd(method string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)

	c.inFlight.WithLabelValues(method).Dec()
	c.requestsTotal.WithLabelValues(method, statusCodeStr).Inc()
	c.requestDuration.WithLabelValues(method, statusCodeStr).Observe(duration.Seconds())
}

// RecordError counts a failed round trip.
func (c *Collector) RecordError(errorType, method string) {
	if c == nil {
		return
	}

	c.errorsTotal.WithLabelValues(errorType, method).Inc()
}

// RecordCanceled adds count cancelled calls.
func (c *Collector) RecordCanceled(reason string, count int) {
	if c == nil || count <= 0 {
		return
	}

	c.canceledTotal.WithLabelValues(reason).Add(float64(count))
}

// Registry exposes the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}

	return c.registry
}
