// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the recurrence engine and HTTP middleware report
// through.
type Recorder interface {
	RecordHTTPRequest(method string, status int)
	RecordEnginePass()
	RecordTasksSpawned(count int)
	RecordEngineTaskFailure()
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	registry *prometheus.Registry

	httpRequests       *prometheus.CounterVec
	enginePasses       prometheus.Counter
	tasksSpawned       prometheus.Counter
	engineTaskFailures prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on a fresh
// registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskflow_http_requests_total",
			Help: "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		enginePasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskflow_recurrence_passes_total",
			Help: "Completed recurrence engine passes.",
		}),
		tasksSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskflow_recurrence_spawned_total",
			Help: "Task instances spawned from recurrence templates.",
		}),
		engineTaskFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskflow_recurrence_task_failures_total",
			Help: "Recurring templates that failed to process in a pass.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.enginePasses,
		c.tasksSpawned,
		c.engineTaskFailures,
	)

	return c
}

func (c *Collector) RecordHTTPRequest(method string, status int) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (c *Collector) RecordEnginePass() {
	c.enginePasses.Inc()
}

func (c *Collector) RecordTasksSpawned(count int) {
	c.tasksSpawned.Add(float64(count))
}

func (c *Collector) RecordEngineTaskFailure() {
	c.engineTaskFailures.Inc()
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
